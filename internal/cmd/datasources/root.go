package datasources

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "datasources",
		Short: "Manages the datasource catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("welcome to curator datasources!")
			return nil
		},
	}
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newServeCommand())
	return cmd
}
