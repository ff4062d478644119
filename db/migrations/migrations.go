// Package migrations applies the embedded goose migrations at startup so a
// fresh database is usable without a separate migrate step.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedded embed.FS

func Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(embedded)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}
