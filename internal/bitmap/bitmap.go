// Package bitmap decodes raster images placed on the board and caches them by
// content so that placing the same picture twice decodes it once.
package bitmap

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrDecode      = errors.New("image decode failed")
	ErrEmptySource = errors.New("empty image source")
	ErrNotDataURL  = errors.New("not an image data URL")
)

// Source is raw encoded image data, e.g. a file's bytes or a decoded data URL.
type Source struct {
	Name string
	Data []byte
}

// Key returns the content key used to cache the decoded bitmap.
func (s Source) Key() string {
	sum := sha256.Sum256(s.Data)
	return hex.EncodeToString(sum[:16])
}

// Bitmap is a decoded image ready to be drawn.
type Bitmap struct {
	Key    string
	Format string
	Image  image.Image
}

// Width returns the natural width in pixels.
func (b *Bitmap) Width() int { return b.Image.Bounds().Dx() }

// Height returns the natural height in pixels.
func (b *Bitmap) Height() int { return b.Image.Bounds().Dy() }

// AspectRatio returns naturalWidth / naturalHeight.
func (b *Bitmap) AspectRatio() float64 {
	return float64(b.Width()) / float64(b.Height())
}

// Cache holds decoded bitmaps keyed by content. It is safe for concurrent use
// so decoding can run off the UI goroutine.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Bitmap
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Bitmap)}
}

// Get returns the cached bitmap for key, if any.
func (c *Cache) Get(key string) (*Bitmap, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.entries[key]
	return b, ok
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Load returns the bitmap for src, decoding and caching it on first use.
// Failures wrap ErrDecode and leave the cache untouched.
func (c *Cache) Load(ctx context.Context, src Source) (*Bitmap, error) {
	if len(src.Data) == 0 {
		return nil, ErrEmptySource
	}
	key := src.Key()
	if b, ok := c.Get(key); ok {
		return b, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(src.Data))
	if err != nil {
		log.Printf("[BITMAP] Failed to decode %q: %v", src.Name, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, src.Name, err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s: empty %dx%d image", ErrDecode, src.Name, b.Dx(), b.Dy())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.entries[key]; ok {
		return b, nil
	}
	b := &Bitmap{Key: key, Format: format, Image: img}
	c.entries[key] = b
	log.Printf("[BITMAP] Decoded %s %q (%dx%d)", format, src.Name, b.Width(), b.Height())
	return b, nil
}

// ReadFile reads an image file into a Source.
func ReadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("reading image: %w", err)
	}
	return Source{Name: path, Data: data}, nil
}

// ParseDataURL decodes a "data:image/...;base64,..." URL.
func ParseDataURL(s string) (Source, error) {
	s = strings.TrimSpace(s)
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Source{}, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasPrefix(meta, "image/") {
		return Source{}, ErrNotDataURL
	}

	mime := meta
	isBase64 := false
	if i := strings.IndexByte(meta, ';'); i >= 0 {
		mime = meta[:i]
		for _, p := range strings.Split(meta[i+1:], ";") {
			if p == "base64" {
				isBase64 = true
			}
		}
	}

	var data []byte
	var err error
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var unescaped string
		unescaped, err = url.PathUnescape(payload)
		data = []byte(unescaped)
	}
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrNotDataURL, err)
	}
	if len(data) == 0 {
		return Source{}, ErrEmptySource
	}
	return Source{Name: mime, Data: data}, nil
}
