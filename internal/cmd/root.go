package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turbolytics/curator/internal/cmd/datasources"
	"github.com/turbolytics/curator/internal/cmd/schema"
)

func NewRootCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "curator",
		Short: "",
		Long:  ``,
		// The run function is called when the command is executed
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Welcome to curator!")
		},
	}

	cmd.AddCommand(datasources.NewCommand())
	cmd.AddCommand(schema.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
