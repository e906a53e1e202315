package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection identifies a collection asset to verify.
type Collection struct {
	Database string
	Name     string
}

type Option func(*Checker)

func WithCollections(collections []Collection) Option {
	return func(c *Checker) {
		c.collections = collections
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

type Checker struct {
	name        string
	uri         string
	collections []Collection
	logger      *zap.Logger
}

func NewChecker(name string, uri string, opts ...Option) *Checker {
	c := &Checker{
		name:   name,
		uri:    uri,
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
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	for _, collection := range c.collections {
		c.logger.Debug("checking collection",
			zap.String("datasource", c.name),
			zap.String("database", collection.Database),
			zap.String("collection", collection.Name),
		)

		names, err := client.Database(collection.Database).ListCollectionNames(
			ctx,
			bson.M{"name": collection.Name},
		)
		if err != nil {
			return fmt.Errorf("failed to check collection %s.%s: %w",
				collection.Database, collection.Name, err)
		}
		if len(names) == 0 {
			return fmt.Errorf("collection %s.%s does not exist",
				collection.Database, collection.Name)
		}
	}

	return nil
}
