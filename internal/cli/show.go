package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"docassist/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a saved chat as a rendered transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var (
	showRaw   bool
	showWidth int
)

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print markdown without rendering")
	showCmd.Flags().IntVar(&showWidth, "width", 100, "word wrap width")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	conv, err := app.Sessions.Resume(args[0])
	if err != nil {
		return err
	}

	md := transcriptMarkdown(args[0], conv)
	if showRaw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(showWidth),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

var roleHeadings = map[domain.Role]string{
	domain.RoleSystem:    "Document context",
	domain.RoleUser:      "You",
	domain.RoleAssistant: "AI",
}

// transcriptMarkdown renders the system context as a fenced block so OCR
// output is shown verbatim.
func transcriptMarkdown(name string, conv *domain.Conversation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSuffix(name, domain.SessionExt))
	for _, m := range conv.Messages() {
		fmt.Fprintf(&b, "## %s\n\n", roleHeadings[m.Role])
		if m.Role == domain.RoleSystem {
			fmt.Fprintf(&b, "```text\n%s\n```\n\n", strings.TrimRight(m.Content, "\n"))
			continue
		}
		fmt.Fprintf(&b, "%s\n\n", m.Content)
	}
	return b.String()
}
