package console

import (
	"io"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"docassist/internal/domain"
)

func TestAllowedTypes(t *testing.T) {
	if got := allowedTypes(domain.SourcePDF); !reflect.DeepEqual(got, []string{".pdf"}) {
		t.Errorf("allowedTypes(pdf) = %v", got)
	}
	if got := allowedTypes(domain.SourceImage); len(got) == 0 || got[0] != ".png" {
		t.Errorf("allowedTypes(image) = %v", got)
	}
}

func TestPickerToggle(t *testing.T) {
	m := newPickerModel(t.TempDir(), domain.SourceImage, newStyles(io.Discard))
	m.toggle("/docs/a.png")
	m.toggle("/docs/b.png")
	m.toggle("/docs/a.png")

	if !reflect.DeepEqual(m.selected, []string{"/docs/b.png"}) {
		t.Fatalf("selected = %v", m.selected)
	}
	if m.notice != "removed a.png" {
		t.Fatalf("notice = %q", m.notice)
	}
	if view := m.View(); !strings.Contains(view, "1 selected") || !strings.Contains(view, "b.png") {
		t.Fatalf("view missing selection:\n%s", view)
	}
}

func TestPickerKeys(t *testing.T) {
	tests := []struct {
		name          string
		key           tea.KeyMsg
		wantCancelled bool
	}{
		{"tab confirms", tea.KeyMsg{Type: tea.KeyTab}, false},
		{"q cancels", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, true},
		{"ctrl+c cancels", tea.KeyMsg{Type: tea.KeyCtrlC}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPickerModel(t.TempDir(), domain.SourcePDF, newStyles(io.Discard))
			next, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Fatal("expected tea.QuitMsg")
			}
			if got := next.(pickerModel).cancelled; got != tt.wantCancelled {
				t.Fatalf("cancelled = %v, want %v", got, tt.wantCancelled)
			}
		})
	}
}
