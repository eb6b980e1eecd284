package ui

import (
	"fmt"
	"image/color"
	"log"

	"ChalkBoard/internal/board"
	"ChalkBoard/internal/config"
	"ChalkBoard/internal/state"
	"ChalkBoard/internal/tutor"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// session is one window: the board, its controls and the tutor panel.
type session struct {
	win        fyne.Window
	cfg        *config.Config
	engine     *board.Engine
	tutor      *tutor.Client
	background color.Color

	board   *BoardWidget
	status  *widget.Label // messages from actions
	summary *widget.Label // tool, pen and history, kept in sync with the engine
	undoBtn *widget.Button
	redoBtn *widget.Button

	problem   *widget.Entry
	category  *widget.Select
	topic     *widget.Select
	hintBtn   *widget.Button
	submitBtn *widget.Button
}

func RunApp(cfg *config.Config, engine *board.Engine, client *tutor.Client) {
	myApp := app.New()
	s := newSession(myApp, cfg, engine, client)
	s.win.ShowAndRun()
}

func newSession(a fyne.App, cfg *config.Config, engine *board.Engine, client *tutor.Client) *session {
	s := &session{
		win:    a.NewWindow("ChalkBoard"),
		cfg:    cfg,
		engine: engine,
		tutor:  client,
		status:  widget.NewLabel("Ready"),
		summary: widget.NewLabel(""),
	}
	s.win.Resize(fyne.NewSize(1280, 800))

	bg, err := state.ParseColor(cfg.Background)
	if err != nil {
		log.Printf("[UI] Bad background %q, using default: %v", cfg.Background, err)
		bg, _ = state.ParseColor(config.Default().Background)
	}
	s.background = bg

	s.board = NewBoardWidget(engine, s.background)
	s.board.OnStateChanged = s.refreshControls

	toolbar := s.newToolbar()
	panel := s.newProblemPanel()

	split := container.NewHSplit(s.board, panel)
	split.Offset = 0.75
	statusBar := container.NewBorder(nil, nil, nil, s.summary, s.status)
	content := container.NewBorder(toolbar, statusBar, nil, nil, split)

	s.win.SetContent(content)
	s.addShortcuts()
	s.refreshControls()
	return s
}

func (s *session) addShortcuts() {
	c := s.win.Canvas()
	mod := fyne.KeyModifierShortcutDefault
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: mod}, func(fyne.Shortcut) {
		s.engine.Undo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: mod | fyne.KeyModifierShift}, func(fyne.Shortcut) {
		s.engine.Redo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: mod}, func(fyne.Shortcut) {
		s.engine.Redo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: mod}, func(fyne.Shortcut) {
		s.quickExport()
	})
	c.AddShortcut(&fyne.ShortcutPaste{}, func(fyne.Shortcut) {
		s.pasteImage()
	})
}

// refreshControls syncs the undo/redo buttons and the summary with the
// engine. Status messages are left alone.
func (s *session) refreshControls() {
	if s.undoBtn != nil {
		setEnabled(s.undoBtn, s.engine.CanUndo())
		setEnabled(s.redoBtn, s.engine.CanRedo())
	}
	s.summary.SetText(fmt.Sprintf("%s · %s · %.0fpx · history %d/%d",
		s.engine.Tool(), s.engine.Color(), s.engine.StrokeWidth(),
		s.engine.HistoryCursor(), s.engine.HistoryLen()-1))
}

func (s *session) setStatus(text string) {
	s.status.SetText(text)
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}
