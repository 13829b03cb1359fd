package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createDrugTableSQL = `
CREATE TABLE IF NOT EXISTS drug_table (
    drugname_brand   TEXT NOT NULL,
    drugname_generic TEXT NOT NULL,
    identifier       TEXT NOT NULL,
    major_class      TEXT NOT NULL,
    major_class_name TEXT NOT NULL,
    minor_class      TEXT NOT NULL,
    minor_class_name TEXT NOT NULL
)`

// pgRow flattens one resolved drug into the column values of drug_table,
// in createDrugTableSQL column order.
func pgRow(d entities.ResolvedDrug) []any {
	return []any{
		d.Brand,
		d.Generic,
		strings.Join(d.Rxcuis, "|"),
		strings.Join(d.MajorClasses, "|"),
		strings.Join(d.MajorClassNames, "|"),
		strings.Join(d.MinorClasses, "|"),
		strings.Join(d.MinorClassNames, "|"),
	}
}

// LoadPostgres bulk-loads the enriched drug table into Postgres using
// COPY, replacing any previous contents of drug_table.
func LoadPostgres(ctx context.Context, connStr string, drugs []entities.ResolvedDrug) error {
	start := time.Now()

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("parse connection: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, createDrugTableSQL); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE drug_table"); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"drug_table"},
		csvHeader,
		pgx.CopyFromSlice(len(drugs), func(i int) ([]any, error) {
			return pgRow(drugs[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logging.Info("Drug table loaded into Postgres",
		"rows", copied,
		"duration", time.Since(start).String())
	return nil
}
