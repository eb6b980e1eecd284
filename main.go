package main

import (
	"log"
	"time"

	"ChalkBoard/internal/bitmap"
	"ChalkBoard/internal/board"
	"ChalkBoard/internal/config"
	"ChalkBoard/internal/tutor"
	"ChalkBoard/internal/ui"
)

const discoverTimeout = 2 * time.Second

func main() {
	cfg := config.Load()

	engine, err := board.New(board.Options{
		Tool:              cfg.Tool,
		Color:             cfg.PenColor,
		StrokeWidth:       cfg.PenWidth,
		MinImageSize:      cfg.MinImageSize,
		RecordStrokeStart: cfg.RecordStrokeStart,
	}, bitmap.NewCache())
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}

	baseURL := cfg.TutorURL
	if cfg.Discover {
		if url, err := tutor.Discover(discoverTimeout); err == nil {
			baseURL = url
		} else {
			log.Printf("[MAIN] Tutor discovery failed, using %s: %v", baseURL, err)
		}
	}
	log.Printf("[MAIN] Tutor service at %s", baseURL)

	ui.RunApp(cfg, engine, tutor.NewClient(baseURL, cfg.RequestTimeout))
}
