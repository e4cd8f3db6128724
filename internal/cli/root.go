package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"docassist/internal/config"
	"docassist/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "docassist",
	Short: "Chat with an LLM about scanned documents",
	Long: `docassist OCRs scanned images or PDFs, seeds a chat with the extracted text and
lets you save and resume those conversations as JSON files. Without a
subcommand it opens the interactive menu.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

var (
	flagEnv       string
	flagConfig    string
	flagDir       string
	flagModel     string
	flagEphemeral bool
)

// app is built once flags are parsed.
var app *App

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagEnv, "env", ".env", "dotenv file to read before the environment")
	pf.StringVar(&flagConfig, "config", "", "YAML config file (default $DOCASSIST_CONFIG)")
	pf.StringVar(&flagDir, "dir", "", "directory for saved sessions (overrides config)")
	pf.StringVar(&flagModel, "model", "", "model id (overrides config)")
	pf.BoolVar(&flagEphemeral, "ephemeral", false, "keep saved sessions in memory only")
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagEnv, flagConfig)
	if err != nil {
		return err
	}
	if flagDir != "" {
		cfg.ChatDir = flagDir
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	observability.SetLevel(cfg.LogLevel)

	app = NewApp(cfg, Options{
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
		Ephemeral: flagEphemeral,
	})
	return nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	return app.Shell.Run(cmd.Context())
}
