package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docassist/internal/domain"
	"docassist/internal/observability"
)

var ErrFileNotFound = errors.New("file not found")

// Recognizer turns one PNG-encoded image into text using the given
// recognizer language code (e.g. "eng").
type Recognizer interface {
	Recognize(ctx context.Context, png []byte, lang string) (string, error)
}

// Rasterizer renders every page of a PDF, in order, as PNG.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([][]byte, error)
}

// ImageLoader decodes an image file and returns it PNG-encoded.
type ImageLoader interface {
	Load(path string) ([]byte, error)
}

type Service struct {
	recognizer Recognizer
	rasterizer Rasterizer
	images     ImageLoader
}

func NewService(recognizer Recognizer, rasterizer Rasterizer, images ImageLoader) *Service {
	return &Service{
		recognizer: recognizer,
		rasterizer: rasterizer,
		images:     images,
	}
}

// Extract runs OCR over every path. It never fails as a whole: each file (or
// PDF page) ends up as one Item in the report, successful or not.
func (s *Service) Extract(ctx context.Context, paths []string, lang domain.Language, kind domain.SourceKind) Report {
	var report Report
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			report.add(Item{Path: path, Err: err})
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				err = fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			report.add(Item{Path: path, Err: err})
			continue
		}

		switch kind {
		case domain.SourcePDF:
			s.extractPDF(ctx, &report, path, lang)
		default:
			s.extractImage(ctx, &report, path, lang)
		}
	}
	return report
}

func (s *Service) extractImage(ctx context.Context, report *Report, path string, lang domain.Language) {
	data, err := s.images.Load(path)
	if err != nil {
		report.add(Item{Path: path, Err: fmt.Errorf("load image: %w", err)})
		return
	}
	text, err := s.recognizer.Recognize(ctx, data, lang.Code)
	if err != nil {
		report.add(Item{Path: path, Err: fmt.Errorf("recognize: %w", err)})
		return
	}
	report.add(Item{Path: path, Text: text})
}

func (s *Service) extractPDF(ctx context.Context, report *Report, path string, lang domain.Language) {
	pages, err := s.rasterizer.Rasterize(ctx, path)
	if err != nil {
		report.add(Item{Path: path, Err: fmt.Errorf("rasterize: %w", err)})
		return
	}
	for i, page := range pages {
		item := Item{Path: path, Page: i + 1}
		if err := ctx.Err(); err != nil {
			item.Err = err
			report.add(item)
			continue
		}
		text, err := s.recognizer.Recognize(ctx, page, lang.Code)
		if err != nil {
			item.Err = fmt.Errorf("recognize: %w", err)
		} else {
			item.Text = text
		}
		report.add(item)
	}
}

// Item is the outcome for one image, or one page of a PDF (Page >= 1).
type Item struct {
	Path string
	Page int
	Text string
	Err  error
}

func (it Item) Header() string {
	name := filepath.Base(it.Path)
	if it.Page > 0 {
		return fmt.Sprintf("--- CONTENT FROM %s (page %d) ---", name, it.Page)
	}
	return fmt.Sprintf("--- CONTENT FROM %s ---", name)
}

type Report struct {
	Items []Item
}

func (r *Report) add(it Item) {
	if it.Err != nil {
		log := observability.WithFields("path", it.Path)
		if it.Page > 0 {
			log = log.With("page", it.Page)
		}
		log.Warn("extraction failed", "err", it.Err)
	}
	r.Items = append(r.Items, it)
}

// Text folds the successful items, in order, into one labelled blob.
func (r Report) Text() string {
	var b strings.Builder
	for _, it := range r.Items {
		if it.Err != nil {
			continue
		}
		b.WriteString("\n")
		b.WriteString(it.Header())
		b.WriteString("\n")
		b.WriteString(it.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// HasText reports whether any item contributed non-whitespace text. Headers
// alone do not count.
func (r Report) HasText() bool {
	for _, it := range r.Items {
		if it.Err == nil && strings.TrimSpace(it.Text) != "" {
			return true
		}
	}
	return false
}

func (r Report) Failures() []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}
