package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"go.uber.org/zap"
)

type Option func(*Checker)

func WithTables(tables []string) Option {
	return func(c *Checker) {
		c.tables = tables
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

type Checker struct {
	name       string
	connString string
	tables     []string
	logger     *zap.Logger
}

func NewChecker(name string, connString string, opts ...Option) *Checker {
	c := &Checker{
		name:       name,
		connString: connString,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) Name() string {
	return c.name
}

// ParseConnectionString extracts the database path from a
// sqlite:///path/to/db connection string.
func ParseConnectionString(connString string) (string, error) {
	path, ok := strings.CutPrefix(connString, "sqlite:///")
	if !ok || path == "" {
		return "", fmt.Errorf("invalid sqlite connection string: %q", connString)
	}
	return path, nil
}

func (c *Checker) Check(ctx context.Context) error {
	path, err := ParseConnectionString(c.connString)
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	for _, table := range c.tables {
		c.logger.Debug("checking table",
			zap.String("datasource", c.name),
			zap.String("table", table),
		)

		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
			table,
		).Scan(&name)
		if err == sql.ErrNoRows {
			return fmt.Errorf("table %s does not exist", table)
		}
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
	}

	return nil
}
