package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"CoopLink/internal/core/sysconfig"
)

type postgresSysConfigRepo struct {
	db *sql.DB
}

// NewSysConfigRepository creates a new PostgreSQL sys_config repository
func NewSysConfigRepository(db *sql.DB) sysconfig.Store {
	return &postgresSysConfigRepo{db: db}
}

func (r *postgresSysConfigRepo) Get(ctx context.Context, app, section, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM sys_config WHERE app_name = $1 AND section = $2 AND ukey = $3`,
		app, section, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", sysconfig.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read config %s/%s/%s: %w", app, section, key, err)
	}
	return value, nil
}

func (r *postgresSysConfigRepo) Set(ctx context.Context, app, section, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sys_config (app_name, section, ukey, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (app_name, section, ukey) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()`,
		app, section, key, value)
	if err != nil {
		return fmt.Errorf("failed to write config %s/%s/%s: %w", app, section, key, err)
	}
	return nil
}
