package dataset

import (
	"context"
	"database/sql"
	"fmt"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// OpenSQLite opens (creating if needed) a sqlite database at `path`.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases consistent across queries
	db.SetMaxOpenConns(1)
	return db, nil
}

// ExportSQLite recreates the card_data and card_images tables in `db` and
// fills them in a single transaction.
func ExportSQLite(ctx context.Context, db *sql.DB, records []CardInclusionRecord, images []CardImageRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	insertCard, err := tx.PrepareContext(ctx, `insert into card_data(commander, date, name, inclusion, label, url, header) values (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertCard.Close()
	for _, r := range records {
		_, err = insertCard.ExecContext(ctx, r.Commander, r.Date, r.Name, r.Inclusion, r.Label, r.URL, r.Header)
		if err != nil {
			return fmt.Errorf("insert card %q: %w", r.Name, err)
		}
	}

	// card_images.csv is only unique by convention, later duplicates are ignored
	insertImage, err := tx.PrepareContext(ctx, `insert into card_images(name, image) values (?, ?) on conflict(name) do nothing`)
	if err != nil {
		return err
	}
	defer insertImage.Close()
	for _, r := range images {
		_, err = insertImage.ExecContext(ctx, r.Name, r.Image)
		if err != nil {
			return fmt.Errorf("insert image %q: %w", r.Name, err)
		}
	}

	return tx.Commit()
}
