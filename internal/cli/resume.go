package cli

import "github.com/spf13/cobra"

var resumeCmd = &cobra.Command{
	Use:   "resume NAME",
	Short: "Continue a saved chat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Shell.ResumeSession(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}
