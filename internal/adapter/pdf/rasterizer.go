package pdf

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"docassist/internal/adapter/imagefile"
)

// Rasterizer renders PDF pages with MuPDF at a fixed DPI.
type Rasterizer struct {
	dpi float64
}

func NewRasterizer(dpi int) *Rasterizer {
	return &Rasterizer{dpi: float64(dpi)}
}

// Rasterize returns every page, in document order, as PNG.
func (r *Rasterizer) Rasterize(ctx context.Context, path string) ([][]byte, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		data, err := imagefile.EncodePNG(img)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages = append(pages, data)
	}
	return pages, nil
}
