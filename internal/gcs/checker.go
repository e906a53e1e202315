package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

type Option func(*Checker)

func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

type Checker struct {
	name   string
	bucket string
	logger *zap.Logger
}

func NewChecker(name string, bucket string, opts ...Option) *Checker {
	c := &Checker{
		name:   name,
		bucket: bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) Name() string {
	return c.name
}

func (c *Checker) Check(ctx context.Context) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	c.logger.Debug("checking bucket",
		zap.String("datasource", c.name),
		zap.String("bucket", c.bucket),
	)

	if _, err := client.Bucket(c.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("bucket %q is not accessible: %w", c.bucket, err)
	}

	return nil
}
