package domain

import "strings"

type Language struct {
	Label string
	Code  string
}

var (
	English = Language{Label: "English", Code: "eng"}
	Italian = Language{Label: "Italian", Code: "ita"}
)

// Languages is the menu order offered to the user.
var Languages = []Language{English, Italian}

// LookupLanguage resolves a menu number, label or recognizer code. Anything
// it does not recognise falls back to English.
func LookupLanguage(input string) Language {
	input = strings.ToLower(strings.TrimSpace(input))
	for i, l := range Languages {
		switch input {
		case strings.ToLower(l.Label), l.Code, string(rune('1' + i)):
			return l
		}
	}
	return English
}

type SourceKind string

const (
	SourceImage SourceKind = "image"
	SourcePDF   SourceKind = "pdf"
)

func ParseSourceKind(input string) (SourceKind, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "image", "images", "img":
		return SourceImage, true
	case "2", "pdf":
		return SourcePDF, true
	}
	return "", false
}
