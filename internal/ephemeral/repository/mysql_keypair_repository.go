package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/ephemeral/internal/database"
	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	apperrors "github.com/allisson/ephemeral/internal/errors"
)

// MySQLKeypairRepository implements keypair persistence for MySQL.
//
// db_key is VARBINARY(512) so identifiers compare byte-for-byte; a VARCHAR
// column would fold case under the default collation and merge "Alice" with
// "alice".
type MySQLKeypairRepository struct {
	db database.Querier
}

// NewMySQLKeypairRepository creates a new MySQL keypair repository.
func NewMySQLKeypairRepository(db database.Querier) *MySQLKeypairRepository {
	return &MySQLKeypairRepository{db: db}
}

// Put upserts the record for dbKey.
func (m *MySQLKeypairRepository) Put(ctx context.Context, dbKey string, keypair *domain.StoredKeypair) error {
	query := `INSERT INTO ephemeral_keypairs (db_key, public_key, secret_key, sealed, created_at)
			  VALUES (?, ?, ?, ?, NOW())
			  ON DUPLICATE KEY UPDATE
			  public_key = VALUES(public_key),
			  secret_key = VALUES(secret_key),
			  sealed = VALUES(sealed),
			  created_at = VALUES(created_at)`

	_, err := m.db.ExecContext(ctx, query, []byte(dbKey), keypair.PublicKey, keypair.SecretKey, keypair.Sealed)
	if err != nil {
		return apperrors.Wrap(err, "failed to store keypair")
	}
	return nil
}

// Get retrieves the record for dbKey.
func (m *MySQLKeypairRepository) Get(ctx context.Context, dbKey string) (*domain.StoredKeypair, error) {
	query := `SELECT public_key, secret_key, sealed FROM ephemeral_keypairs WHERE db_key = ?`

	var keypair domain.StoredKeypair
	err := m.db.QueryRowContext(ctx, query, []byte(dbKey)).
		Scan(&keypair.PublicKey, &keypair.SecretKey, &keypair.Sealed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeypairNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get keypair")
	}
	return &keypair, nil
}

// Delete removes the record for dbKey.
func (m *MySQLKeypairRepository) Delete(ctx context.Context, dbKey string) error {
	query := `DELETE FROM ephemeral_keypairs WHERE db_key = ?`

	result, err := m.db.ExecContext(ctx, query, []byte(dbKey))
	if err != nil {
		return apperrors.Wrap(err, "failed to delete keypair")
	}
	return checkDeleted(result)
}
