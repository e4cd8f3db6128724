package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved chats, optionally filtered by a glob",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listMatch string

func init() {
	listCmd.Flags().StringVar(&listMatch, "match", "", "glob pattern, e.g. 'invoice-*'")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	names, err := app.Sessions.Saved(listMatch)
	if err != nil {
		return err
	}
	printSessions(cmd.OutOrStdout(), names)
	return nil
}

func printSessions(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "No saved chats found.")
		return
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}
