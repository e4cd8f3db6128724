package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer runs Tesseract through gosseract, one client per image.
type Recognizer struct {
	clientFactory func() *gosseract.Client
	tessdata      string
}

// NewRecognizer builds a recognizer. tessdata overrides the trained data
// directory; empty uses Tesseract's default lookup.
func NewRecognizer(tessdata string) *Recognizer {
	return &Recognizer{
		clientFactory: gosseract.NewClient,
		tessdata:      tessdata,
	}
}

// Recognize returns the text exactly as Tesseract produced it.
func (r *Recognizer) Recognize(ctx context.Context, png []byte, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := r.clientFactory()
	defer c.Close()

	if r.tessdata != "" {
		if err := c.SetTessdataPrefix(r.tessdata); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if lang != "" {
		if err := c.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("set language %s: %w", lang, err)
		}
	}
	if err := c.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
