package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Table identifies a table asset to verify. Schema defaults to public.
type Table struct {
	Schema string
	Name   string
}

type Option func(*Checker)

func WithTables(tables []Table) Option {
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
	tables     []Table
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

// Check connects, pings, and verifies that every declared table asset
// exists.
func (c *Checker) Check(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, c.connString)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	for _, table := range c.tables {
		schema := table.Schema
		if schema == "" {
			schema = "public"
		}

		c.logger.Debug("checking table",
			zap.String("datasource", c.name),
			zap.String("schema", schema),
			zap.String("table", table.Name),
		)

		var exists bool
		err := conn.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = $1 AND table_name = $2
			)`,
			schema, table.Name,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check table %s.%s: %w", schema, table.Name, err)
		}
		if !exists {
			return fmt.Errorf("table %s.%s does not exist", schema, table.Name)
		}
	}

	return nil
}
