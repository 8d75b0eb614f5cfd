package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"Pergola/internal/calc/cost"

	_ "github.com/lib/pq"
)

// ErrNoPrices is returned by Load when nothing has been saved yet.
var ErrNoPrices = errors.New("no price table stored")

type PriceStore interface {
	Load(ctx context.Context) (cost.PriceTable, error)
	Save(ctx context.Context, t cost.PriceTable) error
}

// Current returns the stored table laid over the built-in defaults, or the
// defaults alone when s is nil or empty.
func Current(ctx context.Context, s PriceStore) (cost.PriceTable, error) {
	def := cost.DefaultPrices()
	if s == nil {
		return def, nil
	}
	t, err := s.Load(ctx)
	if errors.Is(err, ErrNoPrices) {
		return def, nil
	}
	if err != nil {
		return cost.PriceTable{}, err
	}
	return def.Merge(t), nil
}

// OpenDB connects to Postgres, requiring TLS unless the DSN says otherwise.
func OpenDB(connStr string) (*sql.DB, error) {
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			sep := "?"
			if strings.Contains(connStr, "?") {
				sep = "&"
			}
			connStr = connStr + sep + "sslmode=require"
		} else {
			connStr = connStr + " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// PostgresPriceStore keeps every saved table as a jsonb row; the newest row wins.
type PostgresPriceStore struct {
	db *sql.DB
}

func NewPostgresPriceStore(db *sql.DB) *PostgresPriceStore {
	return &PostgresPriceStore{db: db}
}

func (r *PostgresPriceStore) Migrate(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS price_tables (
		id SERIAL PRIMARY KEY,
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *PostgresPriceStore) Load(ctx context.Context) (cost.PriceTable, error) {
	var raw []byte
	query := "SELECT data FROM price_tables ORDER BY id DESC LIMIT 1"
	err := r.db.QueryRowContext(ctx, query).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cost.PriceTable{}, ErrNoPrices
		}
		return cost.PriceTable{}, err
	}
	var t cost.PriceTable
	if err := json.Unmarshal(raw, &t); err != nil {
		return cost.PriceTable{}, fmt.Errorf("decode price table: %w", err)
	}
	return t, nil
}

func (r *PostgresPriceStore) Save(ctx context.Context, t cost.PriceTable) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, "INSERT INTO price_tables (data) VALUES ($1)", raw)
	return err
}
