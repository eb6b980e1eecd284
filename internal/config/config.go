package config

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ChalkBoard/internal/state"
)

const (
	rcName      = ".chalkboardrc"
	envRC       = "CHALKBOARD_RC"
	envTutorURL = "CHALKBOARD_TUTOR_URL"
)

type Config struct {
	TutorURL          string
	Discover          bool
	Tool              state.Tool
	PenColor          string
	PenWidth          float64
	MinImageSize      float64
	RecordStrokeStart bool
	ExportDir         string
	Background        string
	RequestTimeout    time.Duration
}

func Default() *Config {
	return &Config{
		TutorURL:       "http://localhost:8000",
		PenColor:       "#ffffff",
		PenWidth:       3,
		MinImageSize:   10,
		Background:     "#111827",
		RequestTimeout: 60 * time.Second,
	}
}

// Load reads ~/.chalkboardrc (or $CHALKBOARD_RC) over the defaults. A missing
// file is not an error; bad lines are logged and skipped.
func Load() *Config {
	cfg := Default()

	path := os.Getenv(envRC)
	homeDir, err := os.UserHomeDir()
	if path == "" && err == nil {
		path = filepath.Join(homeDir, rcName)
	}
	if path != "" {
		if f, err := os.Open(path); err == nil {
			cfg.parse(f, homeDir)
			f.Close()
			log.Printf("[CONFIG] Loaded %s", path)
		}
	}

	if u := os.Getenv(envTutorURL); u != "" {
		cfg.TutorURL = u
	}
	return cfg
}

// Parse reads key = value lines from r over the defaults.
func Parse(r io.Reader) *Config {
	cfg := Default()
	home, _ := os.UserHomeDir()
	cfg.parse(r, home)
	return cfg
}

func (c *Config) parse(r io.Reader, homeDir string) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			log.Printf("[CONFIG] line %d: expected key = value", lineNo)
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch key {
		case "tutor_url", "tutorurl", "tutor":
			c.TutorURL = strings.TrimRight(value, "/")
		case "discover", "mdns":
			c.Discover = parseBool(value)
		case "tool":
			if t, err := state.ParseTool(value); err == nil {
				c.Tool = t
			} else {
				log.Printf("[CONFIG] line %d: %v", lineNo, err)
			}
		case "pen_color", "pencolor", "color":
			if norm, err := state.NormalizeColor(value); err == nil {
				c.PenColor = norm
			} else {
				log.Printf("[CONFIG] line %d: %v", lineNo, err)
			}
		case "background", "bg":
			if norm, err := state.NormalizeColor(value); err == nil {
				c.Background = norm
			} else {
				log.Printf("[CONFIG] line %d: %v", lineNo, err)
			}
		case "pen_width", "penwidth", "width":
			if f, ok := positive(value); ok {
				c.PenWidth = f
			} else {
				log.Printf("[CONFIG] line %d: invalid pen width %q", lineNo, value)
			}
		case "min_image_size", "minimagesize":
			if f, ok := positive(value); ok {
				c.MinImageSize = f
			} else {
				log.Printf("[CONFIG] line %d: invalid min image size %q", lineNo, value)
			}
		case "record_stroke_start", "recordstrokestart":
			c.RecordStrokeStart = parseBool(value)
		case "export_dir", "exportdir", "savedir":
			if strings.HasPrefix(value, "~") && homeDir != "" {
				value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
			}
			if !filepath.IsAbs(value) {
				if abs, err := filepath.Abs(value); err == nil {
					value = abs
				}
			}
			c.ExportDir = value
		case "request_timeout", "timeout":
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				c.RequestTimeout = d
			} else {
				log.Printf("[CONFIG] line %d: invalid timeout %q", lineNo, value)
			}
		default:
			log.Printf("[CONFIG] line %d: unknown key %q", lineNo, key)
		}
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}

func positive(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil && f > 0
}

// ExportPath joins filename onto the export directory, creating it if needed.
func (c *Config) ExportPath(filename string) (string, error) {
	if c.ExportDir == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDir, 0755); err != nil {
		log.Printf("[CONFIG] Cannot create export dir %s: %v", c.ExportDir, err)
		return "", fmt.Errorf("export dir: %w", err)
	}
	return filepath.Join(c.ExportDir, filename), nil
}
