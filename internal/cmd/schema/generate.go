package schema

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/turbolytics/curator/internal/config"
	"github.com/turbolytics/curator/internal/ddl"
)

func newGenerateCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates a table asset config from a CREATE TABLE statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _ := zap.NewDevelopment()
			l := logger.Named("schema.generate")
			l.Info(
				"curator schema generate!",
				zap.String("db", viper.GetString("db")),
			)

			switch viper.GetString("db") {
			case "postgres":
				asset, err := ddl.TableAsset(viper.GetString("query"))
				if err != nil {
					return err
				}

				bs, err := yaml.Marshal(map[string]*config.Asset{
					asset.Name: asset,
				})
				if err != nil {
					return err
				}

				fmt.Println(string(bs))
			default:
				return fmt.Errorf("unsupported db: %q", viper.GetString("db"))
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringP("db", "", "postgres", "The database the create table statement is from")
	cmd.PersistentFlags().StringP("query", "q", "", "The query to parse to generate the asset config")
	viper.BindPFlag("db", cmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("query", cmd.PersistentFlags().Lookup("query"))
	viper.AutomaticEnv()
	viper.SetEnvPrefix("CURATOR")
	return cmd
}
