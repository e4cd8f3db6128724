package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"docassist/internal/domain"
)

var (
	imageTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
	pdfTypes   = []string{".pdf"}
)

func allowedTypes(kind domain.SourceKind) []string {
	if kind == domain.SourcePDF {
		return pdfTypes
	}
	return imageTypes
}

// FilePicker is a full-screen browser built on bubbles/filepicker. Enter
// toggles a file, tab confirms the selection, q or ctrl+c cancels.
type FilePicker struct {
	dir string
	in  io.Reader
	out io.Writer
}

func NewFilePicker(dir string, in io.Reader, out io.Writer) *FilePicker {
	return &FilePicker{dir: dir, in: in, out: out}
}

func (p *FilePicker) Pick(kind domain.SourceKind) ([]string, error) {
	dir := p.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	m := newPickerModel(dir, kind, newStyles(p.out))
	res, err := tea.NewProgram(m, tea.WithInput(p.in), tea.WithOutput(p.out), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("file picker: %w", err)
	}
	final := res.(pickerModel)
	if final.cancelled {
		return nil, nil
	}
	return final.selected, nil
}

type pickerModel struct {
	fp        filepicker.Model
	kind      domain.SourceKind
	selected  []string
	notice    string
	cancelled bool
	styles    styles
}

func newPickerModel(dir string, kind domain.SourceKind, st styles) pickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = allowedTypes(kind)
	return pickerModel{fp: fp, kind: kind, styles: st}
}

func (m pickerModel) Init() tea.Cmd {
	return m.fp.Init()
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit
		case "tab":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.toggle(path)
	}
	if ok, path := m.fp.DidSelectDisabledFile(msg); ok {
		m.notice = filepath.Base(path) + " is not a supported " + string(m.kind) + " file"
	}
	return m, cmd
}

func (m *pickerModel) toggle(path string) {
	for i, p := range m.selected {
		if p == path {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			m.notice = "removed " + filepath.Base(path)
			return
		}
	}
	m.selected = append(m.selected, path)
	m.notice = "added " + filepath.Base(path)
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Select " + string(m.kind) + " files"))
	b.WriteString(" ")
	b.WriteString(m.styles.dim.Render("enter: toggle  tab: done  q: cancel"))
	b.WriteString("\n")
	b.WriteString(m.styles.dim.Render(m.fp.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.fp.View())
	b.WriteString("\n")
	if len(m.selected) > 0 {
		b.WriteString(fmt.Sprintf("\n%d selected:\n", len(m.selected)))
		for _, p := range m.selected {
			b.WriteString(m.styles.selected.Render("  " + filepath.Base(p)))
			b.WriteString("\n")
		}
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.dim.Render(m.notice))
		b.WriteString("\n")
	}
	return b.String()
}
