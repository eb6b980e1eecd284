package ui

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ChalkBoard/internal/board"
	"ChalkBoard/internal/config"
	"ChalkBoard/internal/tutor"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	a := test.NewTempApp(t)
	engine, err := board.New(board.DefaultOptions(), nil)
	require.NoError(t, err)
	s := newSession(a, config.Default(), engine, tutor.NewClient("http://127.0.0.1:1", time.Second))
	s.board.Resize(fyne.NewSize(400, 300))
	return s
}

func press(b *BoardWidget, x, y float32) {
	b.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	})
}

func release(b *BoardWidget, x, y float32) {
	b.MouseUp(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	})
}

func TestBoardWidgetDrawsAndUndoes(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, image.Pt(400, 300), s.engine.Size())
	assert.True(t, s.undoBtn.Disabled())

	press(s.board, 10, 10)
	s.board.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 40)}})
	s.board.DragEnd()
	release(s.board, 40, 40)

	require.Len(t, s.engine.Strokes(), 1)
	assert.Len(t, s.engine.Strokes()[0].Points, 2)
	assert.False(t, s.undoBtn.Disabled())
	assert.True(t, s.redoBtn.Disabled())

	test.Tap(s.undoBtn)
	assert.Empty(t, s.engine.Strokes())
	assert.True(t, s.undoBtn.Disabled())
	assert.False(t, s.redoBtn.Disabled())
}

func TestBoardWidgetMouseOutEndsStroke(t *testing.T) {
	s := newTestSession(t)
	press(s.board, 5, 5)
	assert.True(t, s.engine.Drawing())
	s.board.MouseOut()
	assert.False(t, s.engine.Drawing())
	assert.Equal(t, 1, s.engine.HistoryCursor())
}

func TestBoardWidgetPaintScales(t *testing.T) {
	s := newTestSession(t)
	img := s.board.paint(800, 600)
	assert.Equal(t, image.Pt(800, 600), img.Bounds().Size())
	// Reuses the frame for the same size.
	assert.Same(t, img, s.board.paint(800, 600))
}

func TestTopicPrompt(t *testing.T) {
	assert.Equal(t, "Algebra (Mathematics): work through a problem on the board.", topicPrompt("Mathematics", "Algebra"))
	assert.Equal(t, "Prove sqrt(2) is irrational", topicPrompt(customTopic, " Prove sqrt(2) is irrational "))
	assert.Empty(t, topicPrompt("Science", ""))
	assert.Equal(t, catalogue[1].Topics, topicsOf("Science"))
	assert.Nil(t, topicsOf("Cooking"))
	assert.Equal(t, customTopic, categoryNames()[len(catalogue)])
}

func TestRestartTopic(t *testing.T) {
	s := newTestSession(t)
	s.category.SetSelected("Mathematics")
	s.topic.SetSelected("Geometry")
	assert.Contains(t, s.problem.Text, "Geometry")

	s.restartTopic()
	assert.Empty(t, s.problem.Text)
	assert.Empty(t, s.category.Selected)
	assert.True(t, s.topic.Disabled())
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))
	return buf.Bytes()
}

func TestSourceFromClipboard(t *testing.T) {
	data := tinyPNG(t)
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	src, err := sourceFromClipboard("  " + path + "\n")
	require.NoError(t, err)
	assert.Equal(t, data, src.Data)

	src, err = sourceFromClipboard("file://" + path)
	require.NoError(t, err)
	assert.Equal(t, data, src.Data)

	src, err = sourceFromClipboard("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	require.NoError(t, err)
	assert.Equal(t, data, src.Data)

	for _, junk := range []string{"", "   ", "hello world", "line one\nline two"} {
		_, err := sourceFromClipboard(junk)
		assert.ErrorIs(t, err, errNothingToPaste, "%q", junk)
	}
}

type fakeClipboard struct {
	image []byte
	text  string
	err   error
}

func (f fakeClipboard) Image() []byte          { return f.image }
func (f fakeClipboard) Text() (string, error) { return f.text, f.err }

func TestReadClipboard(t *testing.T) {
	shot := tinyPNG(t)

	src, err := readClipboard(fakeClipboard{image: shot, text: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, shot, src.Data)

	src, err = readClipboard(fakeClipboard{text: "data:image/png;base64," + base64.StdEncoding.EncodeToString(shot)})
	require.NoError(t, err)
	assert.Equal(t, shot, src.Data)

	_, err = readClipboard(fakeClipboard{text: "just words"})
	assert.ErrorIs(t, err, errNothingToPaste)

	_, err = readClipboard(fakeClipboard{err: os.ErrPermission})
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestPastedScreenshotLandsOnBoard(t *testing.T) {
	s := newTestSession(t)
	src, err := readClipboard(fakeClipboard{image: tinyPNG(t)})
	require.NoError(t, err)
	bm, err := s.engine.DecodeImage(context.Background(), src)
	require.NoError(t, err)
	s.engine.PlaceImage(bm)
	assert.Len(t, s.engine.Images(), 1)
}

func TestStatusSurvivesEngineChanges(t *testing.T) {
	s := newTestSession(t)
	s.setStatus("Exported board.pdf")

	press(s.board, 10, 10)
	s.board.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 20)}})
	release(s.board, 20, 20)

	assert.Equal(t, "Exported board.pdf", s.status.Text)
	assert.Contains(t, s.summary.Text, "history 1/1")
}

func TestWriteExport(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	var out bytes.Buffer
	require.NoError(t, writeExport(&out, "board.PNG", img, "title"))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("\x89PNG")))

	out.Reset()
	require.NoError(t, writeExport(&out, "board.pdf", img, "title"))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
}
