package datasources

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/turbolytics/curator/internal/config"
)

func newValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validates a datasource catalog and prints the normalized document",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()
			l := logger.Named("curator.datasources.validate")

			c, err := config.NewCuratorFromFile(configPath)
			if err != nil {
				return err
			}

			l.Info("catalog is valid",
				zap.Int("num_datasources", c.Datasources.Len()),
			)

			bs, err := yaml.Marshal(c)
			if err != nil {
				return err
			}

			fmt.Println(string(bs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.MarkFlagRequired("config")

	return cmd
}
