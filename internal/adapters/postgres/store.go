// Package postgres implements the scan result store on a PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.trai.ch/provcache/internal/adapters/record"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "scan_results"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store implements ports.ScanResultStore with one row per record.
// Each append is a single INSERT and each load a single SELECT.
type Store struct {
	pool   *pgxpool.Pool
	table  string
	logger ports.Logger
}

// Open connects to the database at url. The schema is not touched; call
// EnsureSchema before first use.
func Open(ctx context.Context, url, table string, logger ports.Logger) (*Store, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, zerr.With(zerr.New("invalid table name"), "table", table)
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	return &Store{pool: pool, table: table, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the table and its lookup index if they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	table := pgx.Identifier{s.table}.Sanitize()
	index := pgx.Identifier{s.table + "_identifier_idx"}.Sanitize()

	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         BIGSERIAL PRIMARY KEY,
			identifier TEXT NOT NULL,
			record     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table))
	if err != nil {
		return classify("ensure_schema", err)
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (identifier, id)`, index, table))
	if err != nil {
		return classify("ensure_schema", err)
	}

	return nil
}

// Append implements ports.ScanResultStore.
func (s *Store) Append(ctx context.Context, id domain.Identifier, result domain.ScanResult) error {
	data, err := record.Encode(result)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (identifier, record) VALUES ($1, $2)`, pgx.Identifier{s.table}.Sanitize()),
		record.Path(id), string(data))
	if err != nil {
		return classify("append", err)
	}

	return nil
}

// LoadAll implements ports.ScanResultStore.
func (s *Store) LoadAll(ctx context.Context, id domain.Identifier) ([]domain.ScanResult, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT id, record::text FROM %s WHERE identifier = $1 ORDER BY id`, pgx.Identifier{s.table}.Sanitize()),
		record.Path(id))
	if err != nil {
		return nil, classify("load_all", err)
	}
	defer rows.Close()

	var entries []record.Entry
	for rows.Next() {
		var (
			rowID int64
			data  string
		)
		if err := rows.Scan(&rowID, &data); err != nil {
			return nil, classify("load_all", err)
		}
		entries = append(entries, record.Entry{
			Key:  fmt.Sprintf("%s#%d", s.table, rowID),
			Data: []byte(data),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, classify("load_all", err)
	}

	return record.DecodeAll(s.logger, entries), nil
}

// classify maps driver errors onto the backend error taxonomy. Transient
// failures become domain.BackendUnavailable; anything else is returned as a
// plain store error so that it is not retried.
func classify(op string, err error) error {
	if isTransient(err) {
		return domain.NewUnavailableError(op, err)
	}

	sentinel := domain.ErrStoreWriteFailed
	if op == "load_all" {
		sentinel = domain.ErrStoreReadFailed
	}

	return zerr.With(zerr.Wrap(err, sentinel.Error()), "op", op)
}

func isTransient(err error) bool {
	if domain.IsContextError(err) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientCode(pgErr.Code)
	}

	return false
}

// isTransientCode reports whether a SQLSTATE indicates a condition that may
// clear on retry: connection exceptions, insufficient resources, operator
// intervention and serialization failures.
func isTransientCode(code string) bool {
	switch {
	case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "53"), strings.HasPrefix(code, "57P"):
		return true
	case code == "40001", code == "40P01":
		return true
	default:
		return false
	}
}
