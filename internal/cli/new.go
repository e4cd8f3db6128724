package cli

import (
	"github.com/spf13/cobra"

	"docassist/internal/domain"
	"docassist/internal/usecase/session"
)

var newCmd = &cobra.Command{
	Use:   "new FILE...",
	Short: "OCR the given files and start a chat about them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNew,
}

var (
	newPDF  bool
	newLang string
)

func init() {
	newCmd.Flags().BoolVar(&newPDF, "pdf", false, "treat the files as PDFs")
	newCmd.Flags().StringVar(&newLang, "lang", "eng", "recognition language (eng, ita, english, italian)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	kind := domain.SourceImage
	if newPDF {
		kind = domain.SourcePDF
	}

	var paths []string
	for _, a := range args {
		paths = append(paths, session.ParsePaths(a)...)
	}

	return app.Shell.StartSession(cmd.Context(), session.StartInput{
		Paths:    paths,
		Language: domain.LookupLanguage(newLang),
		Kind:     kind,
	})
}
