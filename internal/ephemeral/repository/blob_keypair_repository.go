// Package repository implements keypair persistence for the ephemeral keystore.
//
// Every adapter stores one record per canonical identifier and treats Put as an
// upsert. Absent records surface as domain.ErrKeypairNotFound; records that exist
// but cannot be decoded surface as domain.ErrCorruptedKeypair.
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	apperrors "github.com/allisson/ephemeral/internal/errors"
)

// BlobKeypairRepository stores keypairs as JSON objects in a gocloud.dev bucket.
//
// Object keys are "keypairs/<sha256(dbKey) in hex>.json" so that identifiers of
// any content map to a fixed-length, filesystem-safe name. With fileblob each
// write lands in a temporary file that is renamed into place on close, so a
// crash never leaves a half-written record.
type BlobKeypairRepository struct {
	bucket *blob.Bucket
}

// NewBlobKeypairRepository creates a repository over bucket. The caller owns the
// bucket and closes it.
func NewBlobKeypairRepository(bucket *blob.Bucket) *BlobKeypairRepository {
	return &BlobKeypairRepository{bucket: bucket}
}

// Put writes the record for dbKey, replacing any existing one.
func (b *BlobKeypairRepository) Put(ctx context.Context, dbKey string, keypair *domain.StoredKeypair) error {
	data, err := json.Marshal(keypair)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal keypair")
	}

	opts := &blob.WriterOptions{ContentType: "application/json"}
	if err := b.bucket.WriteAll(ctx, objectKey(dbKey), data, opts); err != nil {
		return apperrors.Wrap(err, "failed to write keypair")
	}
	return nil
}

// Get reads the record for dbKey.
func (b *BlobKeypairRepository) Get(ctx context.Context, dbKey string) (*domain.StoredKeypair, error) {
	data, err := b.bucket.ReadAll(ctx, objectKey(dbKey))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domain.ErrKeypairNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read keypair")
	}

	var keypair domain.StoredKeypair
	if err := json.Unmarshal(data, &keypair); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptedKeypair, err)
	}
	return &keypair, nil
}

// Delete removes the record for dbKey.
func (b *BlobKeypairRepository) Delete(ctx context.Context, dbKey string) error {
	if err := b.bucket.Delete(ctx, objectKey(dbKey)); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return domain.ErrKeypairNotFound
		}
		return apperrors.Wrap(err, "failed to delete keypair")
	}
	return nil
}

func objectKey(dbKey string) string {
	sum := sha256.Sum256([]byte(dbKey))
	return "keypairs/" + hex.EncodeToString(sum[:]) + ".json"
}
