// Package sqlite stores and loads the SSBG snapshot in a local SQLite
// database, for deployments that prefer a queryable snapshot artifact over a
// raw CSV file. The dashboard still reads the whole table into memory once.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ssbg/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the snapshot database and applies
// pending migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const selectRecords = `
SELECT year, state_name, line_num, service_category,
       ssbg_expenditures, tanf_transfer_funds, total_ssbg_expenditures,
       other_fed_state_and_local_funds, total_expenditures,
       children, adults_59_and_younger, adults_60_and_older, adults_unknown,
       total_adults, total_recipients
FROM records
ORDER BY id`

// Load implements dataset.Source: one full-table read in insertion order.
func (s *Store) Load(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecords)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var r core.Record
		if err := rows.Scan(
			&r.Year, &r.StateName, &r.LineNum, &r.ServiceCategory,
			&r.SSBGExpenditures, &r.TANFTransferFunds, &r.TotalSSBGExpenditures,
			&r.OtherFedStateLocalFunds, &r.TotalExpenditures,
			&r.Children, &r.Adults59AndYounger, &r.Adults60AndOlder, &r.AdultsUnknown,
			&r.TotalAdults, &r.TotalRecipients,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	slog.InfoContext(ctx, "Loaded SQLite snapshot", "records", len(out))
	return out, nil
}

const insertRecord = `
INSERT INTO records (
    year, state_name, line_num, service_category,
    ssbg_expenditures, tanf_transfer_funds, total_ssbg_expenditures,
    other_fed_state_and_local_funds, total_expenditures,
    children, adults_59_and_younger, adults_60_and_older, adults_unknown,
    total_adults, total_recipients
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Import replaces the stored snapshot with the given records inside a single
// transaction. Used by the importer command; the dashboard never writes.
func (s *Store) Import(ctx context.Context, records []core.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clear previous snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Year, r.StateName, r.LineNum, r.ServiceCategory,
			r.SSBGExpenditures, r.TANFTransferFunds, r.TotalSSBGExpenditures,
			r.OtherFedStateLocalFunds, r.TotalExpenditures,
			r.Children, r.Adults59AndYounger, r.Adults60AndOlder, r.AdultsUnknown,
			r.TotalAdults, r.TotalRecipients,
		); err != nil {
			return 0, fmt.Errorf("insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(records), nil
}
