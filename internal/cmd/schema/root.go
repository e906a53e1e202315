package schema

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "schema",
		Short: "Derives asset configs from database schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("welcome to curator schema!")
			return nil
		},
	}
	cmd.AddCommand(newGenerateCommand())
	return cmd
}
