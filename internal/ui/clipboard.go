package ui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"ChalkBoard/internal/bitmap"

	"github.com/atotto/clipboard"
	xclip "golang.design/x/clipboard"
)

var errNothingToPaste = errors.New("clipboard holds no image or image path")

// clipboardReader is the part of the system clipboard paste needs.
type clipboardReader interface {
	// Image returns PNG bytes of a copied image, or nil.
	Image() []byte
	Text() (string, error)
}

type systemClipboard struct{}

var (
	clipInit    sync.Once
	clipInitErr error
)

func (systemClipboard) Image() []byte {
	clipInit.Do(func() {
		if clipInitErr = xclip.Init(); clipInitErr != nil {
			log.Printf("[UI] Image clipboard unavailable: %v", clipInitErr)
		}
	})
	if clipInitErr != nil {
		return nil
	}
	return xclip.Read(xclip.FmtImage)
}

func (systemClipboard) Text() (string, error) {
	return clipboard.ReadAll()
}

// readClipboard prefers copied image data, such as a screenshot, and falls
// back to clipboard text naming an image.
func readClipboard(c clipboardReader) (bitmap.Source, error) {
	if data := c.Image(); len(data) > 0 {
		return bitmap.Source{Name: "clipboard.png", Data: data}, nil
	}
	text, err := c.Text()
	if err != nil {
		return bitmap.Source{}, fmt.Errorf("reading clipboard: %w", err)
	}
	return sourceFromClipboard(text)
}

// sourceFromClipboard accepts a data: URL or the path of an image file.
func sourceFromClipboard(text string) (bitmap.Source, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return bitmap.Source{}, errNothingToPaste
	case strings.HasPrefix(text, "data:"):
		return bitmap.ParseDataURL(text)
	case strings.HasPrefix(text, "file://"):
		text = strings.TrimPrefix(text, "file://")
	}
	if strings.ContainsAny(text, "\n\r") {
		return bitmap.Source{}, errNothingToPaste
	}
	if _, err := os.Stat(text); err != nil {
		return bitmap.Source{}, errNothingToPaste
	}
	return bitmap.ReadFile(text)
}
