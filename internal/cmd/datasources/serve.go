package datasources

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/turbolytics/curator/internal/catalog"
	"github.com/turbolytics/curator/internal/config"
)

func newServeCommand() *cobra.Command {
	var configPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the validated datasource catalog over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()
			l := logger.Named("curator.datasources.serve")

			c, err := config.NewCuratorFromFile(configPath)
			if err != nil {
				return err
			}

			l.Info("catalog loaded",
				zap.Int("num_datasources", c.Datasources.Len()),
			)

			s := catalog.NewServer(l, &c.Datasources)
			return s.Start(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.MarkFlagRequired("config")

	return cmd
}
