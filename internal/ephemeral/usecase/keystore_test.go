package usecase_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	"github.com/allisson/ephemeral/internal/ephemeral/service"
	"github.com/allisson/ephemeral/internal/ephemeral/usecase"
	usecaseMocks "github.com/allisson/ephemeral/internal/ephemeral/usecase/mocks"
	apperrors "github.com/allisson/ephemeral/internal/errors"
)

func newLocalSealer(t *testing.T) service.KeySealer {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	keeper, err := service.NewKMSService().OpenKeeper(
		context.Background(),
		"base64key://"+base64.URLEncoding.EncodeToString(key),
	)
	require.NoError(t, err)

	sealer := service.NewKeeperKeySealer(keeper)
	t.Cleanup(func() { _ = sealer.Close() })
	return sealer
}

func TestKeystore_GenerateAndStore(t *testing.T) {
	ctx := context.Background()
	id := domain.TextIdentifier("alice")

	t.Run("Success_StoresEncodedHalves", func(t *testing.T) {
		// Arrange
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, service.NewBoxEngine(), nil)

		var stored *domain.StoredKeypair
		repo.On("Put", ctx, "alice", mock.AnythingOfType("*domain.StoredKeypair")).
			Run(func(args mock.Arguments) {
				stored = args.Get(2).(*domain.StoredKeypair)
			}).
			Return(nil).
			Once()

		// Act
		publicKey, err := ks.GenerateAndStore(ctx, id)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, publicKey, stored.PublicKey)
		assert.True(t, strings.HasSuffix(publicKey, ".curve25519"))
		assert.False(t, stored.Sealed)

		secret, err := domain.DecodeKey(stored.SecretKey)
		require.NoError(t, err)
		assert.Len(t, secret, domain.KeySize)
	})

	t.Run("Success_SealsSecretHalf", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, service.NewBoxEngine(), newLocalSealer(t))

		var stored *domain.StoredKeypair
		repo.On("Put", ctx, "alice", mock.AnythingOfType("*domain.StoredKeypair")).
			Run(func(args mock.Arguments) {
				stored = args.Get(2).(*domain.StoredKeypair)
			}).
			Return(nil).
			Once()

		_, err := ks.GenerateAndStore(ctx, id)

		require.NoError(t, err)
		assert.True(t, stored.Sealed)
		secret, err := domain.DecodeKey(stored.SecretKey)
		require.NoError(t, err)
		assert.Greater(t, len(secret), domain.KeySize)
	})

	t.Run("Success_StructuredIdentifierKey", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, service.NewBoxEngine(), nil)
		structured, err := domain.StructuredIdentifier(map[string]string{"feed": "@abc", "type": "dm"})
		require.NoError(t, err)

		repo.On("Put", ctx, `{"feed":"@abc","type":"dm"}`, mock.Anything).Return(nil).Once()

		_, err = ks.GenerateAndStore(ctx, structured)
		assert.NoError(t, err)
	})

	t.Run("Error_InvalidIdentifier", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, service.NewBoxEngine(), nil)

		_, err := ks.GenerateAndStore(ctx, domain.TextIdentifier(""))

		assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
		repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_StoreFailure", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, service.NewBoxEngine(), nil)
		storeErr := errors.New("disk full")

		repo.On("Put", ctx, "alice", mock.Anything).Return(storeErr).Once()

		publicKey, err := ks.GenerateAndStore(ctx, id)

		assert.Empty(t, publicKey)
		assert.ErrorIs(t, err, storeErr)
		assert.False(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestKeystore_Get(t *testing.T) {
	ctx := context.Background()
	id := domain.TextIdentifier("alice")
	engine := service.NewBoxEngine()

	validRecord := func(t *testing.T) (*domain.Keypair, *domain.StoredKeypair) {
		kp, err := engine.GenerateKeypair()
		require.NoError(t, err)
		return kp, &domain.StoredKeypair{
			PublicKey: domain.EncodeKey(kp.PublicKey[:]),
			SecretKey: domain.EncodeKey(kp.SecretKey[:]),
		}
	}

	t.Run("Success_Unsealed", func(t *testing.T) {
		// Arrange
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, engine, nil)
		expected, record := validRecord(t)
		repo.On("Get", ctx, "alice").Return(record, nil).Once()

		// Act
		kp, err := ks.Get(ctx, id)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected.PublicKey, kp.PublicKey)
		assert.Equal(t, expected.SecretKey, kp.SecretKey)
	})

	t.Run("Success_SealedRoundTrip", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, engine, newLocalSealer(t))

		var stored *domain.StoredKeypair
		repo.On("Put", ctx, "alice", mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(2).(*domain.StoredKeypair) }).
			Return(nil).
			Once()
		publicKey, err := ks.GenerateAndStore(ctx, id)
		require.NoError(t, err)

		repo.On("Get", ctx, "alice").Return(stored, nil).Once()
		kp, err := ks.Get(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, publicKey, domain.EncodeKey(kp.PublicKey[:]))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, engine, nil)
		repo.On("Get", ctx, "alice").Return(nil, domain.ErrKeypairNotFound).Once()

		kp, err := ks.Get(ctx, id)

		assert.Nil(t, kp)
		assert.ErrorIs(t, err, domain.ErrKeypairNotFound)
		assert.False(t, apperrors.Is(err, apperrors.ErrCorrupted))
	})

	corrupted := []struct {
		name   string
		record func(*domain.StoredKeypair)
	}{
		{name: "Error_PublicKeyWrongCurve", record: func(r *domain.StoredKeypair) { r.PublicKey = "AAAA.ed25519" }},
		{name: "Error_PublicKeyBadBase64", record: func(r *domain.StoredKeypair) { r.PublicKey = "!!.curve25519" }},
		{name: "Error_PublicKeyShort", record: func(r *domain.StoredKeypair) { r.PublicKey = domain.EncodeKey([]byte("x")) }},
		{name: "Error_SecretKeyShort", record: func(r *domain.StoredKeypair) { r.SecretKey = domain.EncodeKey([]byte("x")) }},
		{name: "Error_SecretKeyNoTag", record: func(r *domain.StoredKeypair) { r.SecretKey = "garbage" }},
		{name: "Error_SealedWithoutSealer", record: func(r *domain.StoredKeypair) { r.Sealed = true }},
	}

	for _, tt := range corrupted {
		t.Run(tt.name, func(t *testing.T) {
			repo := usecaseMocks.NewMockKeypairRepository(t)
			ks := usecase.NewKeystore(repo, engine, nil)
			_, record := validRecord(t)
			tt.record(record)
			repo.On("Get", ctx, "alice").Return(record, nil).Once()

			kp, err := ks.Get(ctx, id)

			assert.Nil(t, kp)
			assert.ErrorIs(t, err, domain.ErrCorruptedKeypair)
			assert.True(t, apperrors.Is(err, apperrors.ErrCorrupted))
			assert.False(t, apperrors.Is(err, apperrors.ErrNotFound))
		})
	}

	t.Run("Error_SealedByOtherKeeper", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		writer := usecase.NewKeystore(repo, engine, newLocalSealer(t))
		reader := usecase.NewKeystore(repo, engine, newLocalSealer(t))

		var stored *domain.StoredKeypair
		repo.On("Put", ctx, "alice", mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(2).(*domain.StoredKeypair) }).
			Return(nil).
			Once()
		_, err := writer.GenerateAndStore(ctx, id)
		require.NoError(t, err)
		repo.On("Get", ctx, "alice").Return(stored, nil).Once()

		_, err = reader.Get(ctx, id)

		assert.ErrorIs(t, err, domain.ErrCorruptedKeypair)
	})

	t.Run("Error_StoreFailure", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, engine, nil)
		storeErr := errors.New("connection reset")
		repo.On("Get", ctx, "alice").Return(nil, storeErr).Once()

		_, err := ks.Get(ctx, id)

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("Error_InvalidIdentifier", func(t *testing.T) {
		ks := usecase.NewKeystore(usecaseMocks.NewMockKeypairRepository(t), engine, nil)

		_, err := ks.Get(ctx, domain.TextIdentifier(""))

		assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
	})
}

func TestKeystore_Delete(t *testing.T) {
	ctx := context.Background()
	id := domain.TextIdentifier("alice")

	t.Run("Success", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, service.NewBoxEngine(), nil)
		repo.On("Delete", ctx, "alice").Return(nil).Once()

		assert.NoError(t, ks.Delete(ctx, id))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := usecaseMocks.NewMockKeypairRepository(t)
		ks := usecase.NewKeystore(repo, service.NewBoxEngine(), nil)
		repo.On("Delete", ctx, "alice").Return(domain.ErrKeypairNotFound).Once()

		assert.ErrorIs(t, ks.Delete(ctx, id), domain.ErrKeypairNotFound)
	})
}
