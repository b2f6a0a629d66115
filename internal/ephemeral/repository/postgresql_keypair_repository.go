package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/allisson/ephemeral/internal/database"
	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	apperrors "github.com/allisson/ephemeral/internal/errors"
)

// PostgreSQLKeypairRepository implements keypair persistence for PostgreSQL.
//
// Database schema requirements:
//   - db_key: TEXT PRIMARY KEY (canonical identifier)
//   - public_key: TEXT (serialized public half)
//   - secret_key: TEXT (serialized, possibly sealed, secret half)
//   - sealed: BOOLEAN
//   - created_at: TIMESTAMPTZ (time of the last write)
//
// Each method is a single statement, so writes and deletes are atomic without an
// explicit transaction.
type PostgreSQLKeypairRepository struct {
	db database.Querier
}

// NewPostgreSQLKeypairRepository creates a new PostgreSQL keypair repository.
func NewPostgreSQLKeypairRepository(db database.Querier) *PostgreSQLKeypairRepository {
	return &PostgreSQLKeypairRepository{db: db}
}

// Put upserts the record for dbKey. A concurrent Put for the same key is
// resolved by the database: the later statement wins.
func (p *PostgreSQLKeypairRepository) Put(ctx context.Context, dbKey string, keypair *domain.StoredKeypair) error {
	query := `INSERT INTO ephemeral_keypairs (db_key, public_key, secret_key, sealed, created_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  ON CONFLICT (db_key) DO UPDATE SET
			  public_key = EXCLUDED.public_key,
			  secret_key = EXCLUDED.secret_key,
			  sealed = EXCLUDED.sealed,
			  created_at = EXCLUDED.created_at`

	_, err := p.db.ExecContext(ctx, query, dbKey, keypair.PublicKey, keypair.SecretKey, keypair.Sealed)
	if err != nil {
		return apperrors.Wrap(err, "failed to store keypair")
	}
	return nil
}

// Get retrieves the record for dbKey.
//
// Returns:
//   - domain.ErrKeypairNotFound if no row exists
//   - A wrapped error if the query fails
func (p *PostgreSQLKeypairRepository) Get(ctx context.Context, dbKey string) (*domain.StoredKeypair, error) {
	query := `SELECT public_key, secret_key, sealed FROM ephemeral_keypairs WHERE db_key = $1`

	var keypair domain.StoredKeypair
	err := p.db.QueryRowContext(ctx, query, dbKey).Scan(&keypair.PublicKey, &keypair.SecretKey, &keypair.Sealed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeypairNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get keypair")
	}
	return &keypair, nil
}

// Delete removes the record for dbKey. The row is gone once the statement
// returns; there is no soft delete.
func (p *PostgreSQLKeypairRepository) Delete(ctx context.Context, dbKey string) error {
	query := `DELETE FROM ephemeral_keypairs WHERE db_key = $1`

	result, err := p.db.ExecContext(ctx, query, dbKey)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete keypair")
	}
	return checkDeleted(result)
}

// checkDeleted maps a zero-row delete to domain.ErrKeypairNotFound.
func checkDeleted(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrKeypairNotFound
	}
	if rows > 1 {
		return fmt.Errorf("unexpected rows affected by delete: %d", rows)
	}
	return nil
}
