package datasources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/turbolytics/curator/internal"
	"github.com/turbolytics/curator/internal/catalog"
	"github.com/turbolytics/curator/internal/config"
	"github.com/turbolytics/curator/internal/local"
	"github.com/turbolytics/curator/internal/s3"
)

func newCheckCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Tests the connection of every datasource in the catalog and writes a report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()
			l := logger.Named("curator.datasources.check")

			c, err := config.NewCuratorFromFile(configPath)
			if err != nil {
				return err
			}

			rid := uuid.Must(uuid.NewUUID())

			l.Info("starting check run",
				zap.String("run_id", rid.String()),
				zap.Int("num_datasources", c.Datasources.Len()),
			)

			checkers, err := config.InitializeCheckers(c, l)
			if err != nil {
				return err
			}

			report := catalog.Run(ctx, rid.String(), checkers)

			bs, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}

			var repository internal.Repository
			switch c.Report.Type {
			case "local":
				repository = local.New(
					c.Report.Local.Path,
					local.WithPrefix(rid.String()),
					local.WithLogger(l),
				)
			case "s3":
				repository = s3.New(
					s3.WithLogger(l),
					s3.WithRegion(c.Report.S3.Region),
					s3.WithBucket(c.Report.S3.Bucket),
					s3.WithEndpoint(c.Report.S3.Endpoint),
					s3.WithPrefix(
						path.Join(
							c.Report.S3.Prefix,
							rid.String(),
						),
					),
					s3.WithForcePathStyle(c.Report.S3.ForcePathStyle),
				)
			default:
				fmt.Println(string(bs))
			}

			if repository != nil {
				if err := repository.Write(ctx, "report.json", bytes.NewReader(bs)); err != nil {
					return err
				}
				if err := repository.Flush(); err != nil {
					return err
				}
			}

			if !report.Success {
				return fmt.Errorf("%d of %d datasource checks failed",
					report.NumFailures, report.NumDatasources)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.MarkFlagRequired("config")

	return cmd
}
