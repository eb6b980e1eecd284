package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ChalkBoard/internal/bitmap"
	"ChalkBoard/internal/export"
	"ChalkBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var palette = []string{"#ffffff", "#ef4444", "#f59e0b", "#22c55e", "#3b82f6", "#a855f7", "#111827"}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	Color    color.Color
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	c, err := state.ParseColor(hex)
	if err != nil {
		log.Printf("[UI] Bad swatch colour %q: %v", hex, err)
	}
	s := &colorSwatch{Hex: hex, Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

func (s *session) newToolbar() fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			s.engine.SetTool(state.ToolPen)
		}), // Pen
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), func() {
			s.engine.SetTool(state.ToolImage)
		}), // Move and resize images
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileImageIcon(), s.openImage),
		widget.NewToolbarAction(theme.ContentPasteIcon(), s.pasteImage),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), s.exportBoard),
	)

	s.undoBtn = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { s.engine.Undo() })
	s.redoBtn = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { s.engine.Redo() })
	clearBtn := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Clear board", "Erase everything, including undo history?", func(ok bool) {
			if ok {
				s.engine.Clear()
			}
		}, s.win)
	})

	onColor := func(hex string) {
		if err := s.engine.SetColor(hex); err != nil {
			dialog.ShowError(err, s.win)
		}
	}
	colorBox := container.NewHBox()
	for _, hex := range palette {
		colorBox.Add(newColorSwatch(hex, onColor))
	}
	custom := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		picker := dialog.NewColorPicker("Pen colour", "Choose any colour", func(c color.Color) {
			onColor(state.HexOf(c))
		}, s.win)
		picker.Advanced = true
		picker.Show()
	})

	strokeSlider := widget.NewSlider(1, 20)
	strokeSlider.Step = 1
	strokeSlider.SetValue(s.engine.StrokeWidth())
	strokeSlider.OnChanged = func(val float64) {
		if err := s.engine.SetStrokeWidth(val); err != nil {
			log.Printf("[UI] %v", err)
		}
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		s.undoBtn,
		s.redoBtn,
		clearBtn,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		custom,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}

// placeAsync reads and decodes an image off the UI goroutine, then places
// and selects it. Failures leave the board untouched.
func (s *session) placeAsync(read func() (bitmap.Source, error)) {
	s.setStatus("Loading image…")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
		defer cancel()

		src, err := read()
		var bm *bitmap.Bitmap
		if err == nil {
			bm, err = s.engine.DecodeImage(ctx, src)
		}
		fyne.Do(func() {
			if err != nil {
				log.Printf("[UI] Image not added: %v", err)
				s.setStatus("Could not add image")
				dialog.ShowError(err, s.win)
				return
			}
			im := s.engine.PlaceImage(bm)
			s.engine.Select(im.ID)
			s.setStatus(fmt.Sprintf("Added %s", src.Name))
		})
	}()
}

func (s *session) openImage() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if rc == nil {
			return
		}
		s.placeAsync(func() (bitmap.Source, error) {
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return bitmap.Source{}, fmt.Errorf("reading %s: %w", rc.URI().Name(), err)
			}
			return bitmap.Source{Name: rc.URI().Name(), Data: data}, nil
		})
	}, s.win)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

func (s *session) pasteImage() {
	s.placeAsync(func() (bitmap.Source, error) {
		return readClipboard(systemClipboard{})
	})
}

func (s *session) exportBoard() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := writeExport(wc, wc.URI().Name(), s.engine.Snapshot(s.background), s.problem.Text); err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		s.setStatus("Exported " + wc.URI().Name())
	}, s.win)
	d.SetFileName("chalkboard.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".png"}))
	if s.cfg.ExportDir != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(s.cfg.ExportDir)); err == nil {
			d.SetLocation(dir)
		}
	}
	d.Show()
}

// quickExport writes a timestamped PDF to the export directory without asking.
func (s *session) quickExport() {
	path, err := s.cfg.ExportPath(fmt.Sprintf("chalkboard-%s.pdf", time.Now().Format("20060102-150405")))
	if err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	err = writeExport(f, path, s.engine.Snapshot(s.background), s.problem.Text)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	log.Printf("[UI] Exported %s", path)
	s.setStatus("Exported " + filepath.Base(path))
}

// writeExport picks the format from name's extension: PNG for .png, PDF
// otherwise.
func writeExport(w io.Writer, name string, img image.Image, title string) error {
	if strings.EqualFold(filepath.Ext(name), ".png") {
		return export.PNG(w, img)
	}
	return export.PDF(w, img, strings.TrimSpace(title))
}
