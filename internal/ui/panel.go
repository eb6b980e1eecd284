package ui

import (
	"context"
	"log"
	"strings"

	"ChalkBoard/internal/tutor"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

func (s *session) newProblemPanel() fyne.CanvasObject {
	s.problem = widget.NewMultiLineEntry()
	s.problem.SetPlaceHolder("Pick a topic or type the problem you are working on")
	s.problem.Wrapping = fyne.TextWrapWord
	s.problem.SetMinRowsVisible(6)

	s.topic = widget.NewSelect(nil, func(topic string) {
		if p := topicPrompt(s.category.Selected, topic); p != "" {
			s.problem.SetText(p)
		}
	})
	s.topic.PlaceHolder = "Topic"
	s.topic.Disable()

	s.category = widget.NewSelect(categoryNames(), func(name string) {
		s.topic.ClearSelected()
		if name == customTopic {
			s.topic.Options = nil
			s.topic.Disable()
			s.problem.SetText("")
			s.win.Canvas().Focus(s.problem)
			return
		}
		s.topic.Options = topicsOf(name)
		s.topic.Enable()
		s.topic.Refresh()
	})
	s.category.PlaceHolder = "Subject"

	s.hintBtn = widget.NewButtonWithIcon("Hint", theme.HelpIcon(), s.askHint)
	s.submitBtn = widget.NewButtonWithIcon("Submit", theme.ConfirmIcon(), s.submitWork)
	s.submitBtn.Importance = widget.HighImportance
	restart := widget.NewButtonWithIcon("Restart topic", theme.ViewRefreshIcon(), s.restartTopic)

	return container.NewVBox(
		widget.NewLabelWithStyle("Problem", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		s.category,
		s.topic,
		s.problem,
		container.NewGridWithColumns(2, s.hintBtn, s.submitBtn),
		restart,
	)
}

func (s *session) restartTopic() {
	s.category.ClearSelected()
	s.topic.ClearSelected()
	s.topic.Options = nil
	s.topic.Disable()
	s.problem.SetText("")
}

// nextProblem clears the board and the problem for a fresh start.
func (s *session) nextProblem() {
	s.restartTopic()
	s.engine.Clear()
}

// tutorRequest snapshots the board on the UI goroutine, then runs call in
// the background so drawing never waits on the network. done runs back on
// the UI goroutine.
func (s *session) tutorRequest(btn *widget.Button, call func(ctx context.Context, png []byte, problem string) error, done func()) {
	problem := strings.TrimSpace(s.problem.Text)
	if problem == "" {
		dialog.ShowError(tutor.ErrNoProblem, s.win)
		return
	}
	png, err := s.engine.SnapshotPNG(s.background)
	if err != nil {
		dialog.ShowError(err, s.win)
		return
	}

	btn.Disable()
	s.setStatus("Asking the tutor…")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
		defer cancel()
		err := call(ctx, png, problem)
		fyne.Do(func() {
			btn.Enable()
			if err != nil {
				log.Printf("[UI] Tutor request failed: %v", err)
				s.setStatus("Tutor request failed")
				dialog.ShowError(err, s.win)
				return
			}
			s.setStatus("Tutor replied")
			done()
		})
	}()
}

func (s *session) askHint() {
	var hint string
	s.tutorRequest(s.hintBtn, func(ctx context.Context, png []byte, problem string) error {
		var err error
		hint, err = s.tutor.Hint(ctx, png, problem)
		return err
	}, func() {
		if strings.TrimSpace(hint) == "" {
			hint = "_No hint this time. Keep going!_"
		}
		dialog.NewCustom("Hint", "Close", markdownView(hint), s.win).Show()
	})
}

func (s *session) submitWork() {
	var ev *tutor.Evaluation
	s.tutorRequest(s.submitBtn, func(ctx context.Context, png []byte, problem string) error {
		var err error
		ev, err = s.tutor.Evaluate(ctx, png, problem)
		return err
	}, func() {
		log.Printf("[UI] Evaluation: grade %s, score %.1f", ev.LetterGrade(), ev.Score)
		dialog.NewCustomConfirm("Evaluation Results", "Next problem", "Close", markdownView(ev.Markdown()), func(next bool) {
			if next {
				s.nextProblem()
			}
		}, s.win).Show()
	})
}

func markdownView(md string) fyne.CanvasObject {
	rt := widget.NewRichTextFromMarkdown(md)
	rt.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(rt)
	scroll.SetMinSize(fyne.NewSize(520, 360))
	return scroll
}
