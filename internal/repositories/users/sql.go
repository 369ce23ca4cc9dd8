package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/dmitrijs2005/studentverse/internal/dbx"
	"github.com/dmitrijs2005/studentverse/internal/models"
	"github.com/dmitrijs2005/studentverse/internal/storage"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect storage.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect storage.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, username, salt, hash, kdf, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, storage.Rebind(r.dialect, query),
		user.ID, user.UserName, user.Salt, user.Hash, user.KDF, models.FormatTimestamp(user.CreatedAt))
	if err != nil {
		return fmt.Errorf("db error: %w", storage.Classify(err))
	}

	return nil
}

func (r *SQLRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, salt, hash, kdf, created_at FROM users
		 WHERE username = ?`

	var (
		user    models.User
		created string
	)

	err := r.db.QueryRowContext(ctx, storage.Rebind(r.dialect, query), userName).
		Scan(&user.ID, &user.UserName, &user.Salt, &user.Hash, &user.KDF, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", storage.Classify(err))
	}

	if user.CreatedAt, err = models.ParseTimestamp(created); err != nil {
		return nil, fmt.Errorf("%w: user %s: %w", common.ErrStorageUnavailable, user.ID, err)
	}

	return &user, nil
}
