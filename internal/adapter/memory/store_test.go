package memory

import (
	"errors"
	"reflect"
	"testing"

	"docassist/internal/domain"
)

func TestStoreSaveLoad(t *testing.T) {
	s := NewStore()
	conv := domain.NewConversation("ctx")
	_ = conv.Append(domain.Message{Role: domain.RoleUser, Content: "q"})

	name, err := s.Save("b", conv)
	if err != nil || name != "b.json" {
		t.Fatalf("Save() = %q, %v", name, err)
	}
	if _, err := s.Save("a.json", domain.NewConversation("other")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("b.json", conv); err != nil {
		t.Fatal(err)
	}

	names, _ := s.List()
	if !reflect.DeepEqual(names, []string{"b.json", "a.json"}) {
		t.Fatalf("List() = %v", names)
	}

	got, err := s.Load("b")
	if err != nil {
		t.Fatal(err)
	}
	_ = conv.Append(domain.Message{Role: domain.RoleAssistant, Content: "later"})
	if got.Len() != 2 {
		t.Fatalf("loaded conversation aliases the saved one: %+v", got.Messages())
	}

	if _, err := s.Load("zzz"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Load(zzz) error = %v", err)
	}
}
