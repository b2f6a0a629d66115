// Package mocks provides mock implementations of the ephemeral usecase interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
)

// MockKeypairRepository is a mock implementation of KeypairRepository.
type MockKeypairRepository struct {
	mock.Mock
}

// NewMockKeypairRepository creates a MockKeypairRepository that asserts its
// expectations when the test ends.
func NewMockKeypairRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKeypairRepository {
	m := &MockKeypairRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Put mocks the Put method of KeypairRepository.
func (m *MockKeypairRepository) Put(ctx context.Context, dbKey string, keypair *domain.StoredKeypair) error {
	args := m.Called(ctx, dbKey, keypair)
	return args.Error(0)
}

// Get mocks the Get method of KeypairRepository.
func (m *MockKeypairRepository) Get(ctx context.Context, dbKey string) (*domain.StoredKeypair, error) {
	args := m.Called(ctx, dbKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredKeypair), args.Error(1)
}

// Delete mocks the Delete method of KeypairRepository.
func (m *MockKeypairRepository) Delete(ctx context.Context, dbKey string) error {
	args := m.Called(ctx, dbKey)
	return args.Error(0)
}

// MockKeystore is a mock implementation of Keystore.
type MockKeystore struct {
	mock.Mock
}

// NewMockKeystore creates a MockKeystore that asserts its expectations when the
// test ends.
func NewMockKeystore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKeystore {
	m := &MockKeystore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GenerateAndStore mocks the GenerateAndStore method of Keystore.
func (m *MockKeystore) GenerateAndStore(ctx context.Context, id domain.Identifier) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// Get mocks the Get method of Keystore.
func (m *MockKeystore) Get(ctx context.Context, id domain.Identifier) (*domain.Keypair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keypair), args.Error(1)
}

// Delete mocks the Delete method of Keystore.
func (m *MockKeystore) Delete(ctx context.Context, id domain.Identifier) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEphemeralUseCase is a mock implementation of EphemeralUseCase.
type MockEphemeralUseCase struct {
	mock.Mock
}

// NewMockEphemeralUseCase creates a MockEphemeralUseCase that asserts its
// expectations when the test ends.
func NewMockEphemeralUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEphemeralUseCase {
	m := &MockEphemeralUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GenerateAndStore mocks the GenerateAndStore method of EphemeralUseCase.
func (m *MockEphemeralUseCase) GenerateAndStore(ctx context.Context, id domain.Identifier) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// BoxMessage mocks the BoxMessage method of EphemeralUseCase.
func (m *MockEphemeralUseCase) BoxMessage(
	ctx context.Context,
	message, recipientPublicKey string,
	opts domain.BoxOptions,
) (string, error) {
	args := m.Called(ctx, message, recipientPublicKey, opts)
	return args.String(0), args.Error(1)
}

// UnboxMessage mocks the UnboxMessage method of EphemeralUseCase.
func (m *MockEphemeralUseCase) UnboxMessage(
	ctx context.Context,
	id domain.Identifier,
	ciphertext string,
	opts domain.BoxOptions,
) ([]byte, error) {
	args := m.Called(ctx, id, ciphertext, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DeleteKeyPair mocks the DeleteKeyPair method of EphemeralUseCase.
func (m *MockEphemeralUseCase) DeleteKeyPair(ctx context.Context, id domain.Identifier) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
