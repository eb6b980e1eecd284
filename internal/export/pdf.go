package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"ChalkBoard/internal/render"

	"github.com/jung-kurt/gofpdf"
)

var ErrNoImage = errors.New("export: no image")

const (
	pageMargin  = 10.0 // mm
	titleHeight = 12.0 // mm
)

// PDF writes img onto a single A4 landscape page, scaled to fit inside the
// margins and centred horizontally. A non-empty title is printed above it.
func PDF(w io.Writer, img image.Image, title string) error {
	if img == nil {
		return ErrNoImage
	}
	b := img.Bounds()
	if b.Empty() {
		return ErrNoImage
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle(title, true)
	p.SetCreator("ChalkBoard", true)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	top := pageMargin
	if title != "" {
		p.SetFont("Helvetica", "B", 14)
		p.SetTextColor(17, 24, 39)
		p.Text(pageMargin, pageMargin+6, p.UnicodeTranslatorFromDescriptor("")(title))
		top += titleHeight
	}

	availW := pageW - 2*pageMargin
	availH := pageH - top - pageMargin
	iw, ih := float64(b.Dx()), float64(b.Dy())
	scale := availW / iw
	if s := availH / ih; s < scale {
		scale = s
	}
	dw, dh := iw*scale, ih*scale
	x := pageMargin + (availW-dw)/2

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opts, &buf)
	p.ImageOptions("board", x, top, dw, dh, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// PNG writes img as a PNG file.
func PNG(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	return render.EncodePNG(w, img)
}
