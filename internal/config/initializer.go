package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/turbolytics/curator/internal"
	"github.com/turbolytics/curator/internal/filesystem"
	"github.com/turbolytics/curator/internal/gcs"
	"github.com/turbolytics/curator/internal/mongo"
	"github.com/turbolytics/curator/internal/postgres"
	"github.com/turbolytics/curator/internal/s3"
	"github.com/turbolytics/curator/internal/sqlite"
)

// InitializeCheckers builds a connectivity checker for every datasource in
// the catalog, in document order.
func InitializeCheckers(c *Curator, logger *zap.Logger) ([]internal.Checker, error) {
	var checkers []internal.Checker

	for _, name := range c.Datasources.Names() {
		ds, _ := c.Datasources.Get(name)

		checker, err := initializeChecker(ds, logger)
		if err != nil {
			return nil, err
		}
		checkers = append(checkers, checker)
	}

	return checkers, nil
}

func initializeChecker(ds *Datasource, logger *zap.Logger) (internal.Checker, error) {
	switch ds.Type {
	case "postgres":
		var tables []postgres.Table
		for _, name := range ds.Assets.Names() {
			asset, _ := ds.Assets.Get(name)
			if asset.Type == "table" {
				tables = append(tables, postgres.Table{
					Schema: asset.SchemaName,
					Name:   asset.TableName,
				})
			}
		}
		return postgres.NewChecker(ds.Name, ds.ConnectionString,
			postgres.WithTables(tables),
			postgres.WithLogger(logger),
		), nil

	case "sqlite":
		var tables []string
		for _, name := range ds.Assets.Names() {
			asset, _ := ds.Assets.Get(name)
			if asset.Type == "table" {
				tables = append(tables, asset.TableName)
			}
		}
		return sqlite.NewChecker(ds.Name, ds.ConnectionString,
			sqlite.WithTables(tables),
			sqlite.WithLogger(logger),
		), nil

	case "mongodb":
		var collections []mongo.Collection
		for _, name := range ds.Assets.Names() {
			asset, _ := ds.Assets.Get(name)
			if asset.Type == "collection" {
				collections = append(collections, mongo.Collection{
					Database: asset.Database,
					Name:     asset.CollectionName,
				})
			}
		}
		return mongo.NewChecker(ds.Name, ds.ConnectionString,
			mongo.WithCollections(collections),
			mongo.WithLogger(logger),
		), nil

	case "pandas_filesystem", "spark_filesystem":
		var globs []filesystem.Glob
		for _, name := range ds.Assets.Names() {
			asset, _ := ds.Assets.Get(name)
			if asset.Glob != "" {
				globs = append(globs, filesystem.Glob{
					Asset:   asset.Name,
					Pattern: asset.Glob,
				})
			}
		}
		return filesystem.NewChecker(ds.Name, ds.BaseDirectory,
			filesystem.WithGlobs(globs),
			filesystem.WithLogger(logger),
		), nil

	case "pandas_s3", "spark_s3":
		return s3.NewChecker(ds.Name, ds.Bucket,
			s3.WithCheckerRegion(ds.Region),
			s3.WithCheckerEndpoint(ds.Endpoint),
			s3.WithCheckerForcePathStyle(ds.ForcePathStyle),
			s3.WithCheckerLogger(logger),
		), nil

	case "pandas_gcs":
		return gcs.NewChecker(ds.Name, ds.BucketOrName,
			gcs.WithLogger(logger),
		), nil

	case "pandas_abs":
		return internal.UnsupportedChecker{
			Datasource: ds.Name,
			Type:       ds.Type,
		}, nil

	default:
		return nil, fmt.Errorf("no checker for datasource type: %q", ds.Type)
	}
}
