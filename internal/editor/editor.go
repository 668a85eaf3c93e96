// Package editor is the Ebitengine host of the moodboard: it reads mouse,
// touch and keys, feeds them to the router and keyboard, and draws the board
// scaled to fit the window.
package editor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/moodboard"
	"github.com/phanxgames/moodboard/internal/notify"
)

// Layout constants in screen pixels.
const (
	margin        = 24
	toolbarHeight = 40
)

// Palette is cycled through with C on a selected color block.
var Palette = []string{
	"#F4D03F", "#E67E22", "#E74C3C", "#F5B7B1",
	"#9B59B6", "#3498DB", "#1ABC9C", "#2ECC71", "#34495E",
}

// Options configures an Editor.
type Options struct {
	Title         string
	Width, Height int

	Store         *moodboard.Store
	Images        moodboard.ImageSource
	Measurer      moodboard.TextMeasurer
	Exporter      *moodboard.Exporter
	ExportDir     string
	Step          float64
	PrecisionStep float64
	Debug         bool

	// Script, when set, is played one step per frame before real input.
	// Its snapshots export the board with the step label.
	Script *moodboard.ScriptRunner
	// ExitAfterScript closes the window once Script is done and its
	// exports have finished.
	ExitAfterScript bool
}

// Editor implements ebiten.Game.
type Editor struct {
	opts Options

	store    *moodboard.Store
	viewport *moodboard.Viewport
	router   *moodboard.Router
	keyboard *moodboard.Keyboard
	measurer moodboard.TextMeasurer
	exporter *moodboard.Exporter

	pointers [moodboard.MaxPointers]pointerState
	touches  touchSlots
	focused  bool

	editing    *textEdit
	paletteIdx int

	images  *imageCache
	notices notify.Stack
	face    *text.GoTextFace
	uiFace  *text.GoTextFace

	exports        chan exportResult
	pendingExports int
	sub            moodboard.CallbackHandle
}

// textEdit is the in-progress edit of one text note.
type textEdit struct {
	id  string
	buf []rune
}

type exportResult struct {
	path string
	err  error
}

// New builds an editor around opts.Store. Missing collaborators get defaults.
func New(opts Options) (*Editor, error) {
	if opts.Store == nil {
		opts.Store = moodboard.NewStore(nil)
	}
	if opts.Images == nil {
		opts.Images = moodboard.NewHTTPImageSource(nil)
	}
	if opts.Measurer == nil {
		m, err := moodboard.NewDefaultMeasurer()
		if err != nil {
			return nil, err
		}
		opts.Measurer = m
	}
	if opts.Exporter == nil {
		ex, err := moodboard.NewExporter(opts.Images)
		if err != nil {
			return nil, err
		}
		opts.Exporter = ex
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "exports"
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	state := opts.Store.State()
	e := &Editor{
		opts:     opts,
		store:    opts.Store,
		viewport: moodboard.NewViewport(state.Board.Width, state.Board.Height),
		measurer: opts.Measurer,
		exporter: opts.Exporter,
		focused:  true,
		images:   newImageCache(opts.Images),
		notices:  notify.Stack{Max: 4},
		face:     &text.GoTextFace{Source: src, Size: moodboard.DefaultFontSize},
		uiFace:   &text.GoTextFace{Source: src, Size: 13},
		exports:  make(chan exportResult, 1),
	}
	e.router = moodboard.NewRouter(e.store, e.viewport)
	e.keyboard = moodboard.NewKeyboard(e.store)
	if opts.Step > 0 {
		e.keyboard.Step = opts.Step
	}
	if opts.PrecisionStep > 0 {
		e.keyboard.PrecisionStep = opts.PrecisionStep
	}

	if opts.Script != nil && opts.Script.Snapshot == nil {
		opts.Script.Snapshot = e.exportLabeled
	}

	for _, it := range state.Board.Items {
		if img, ok := it.(moodboard.ImageItem); ok {
			e.images.request(img.Src)
		}
	}
	e.sub = e.store.Subscribe(e.onChange)
	return e, nil
}

// Router exposes the pointer router, e.g. for injected input.
func (e *Editor) Router() *moodboard.Router { return e.router }

// Run opens the window and blocks until it is closed.
func (e *Editor) Run() error {
	defer e.sub.Remove()
	ebiten.SetWindowTitle(e.opts.Title)
	if e.opts.Width > 0 && e.opts.Height > 0 {
		ebiten.SetWindowSize(e.opts.Width, e.opts.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(e)
}

// onChange reacts to state changes made by any collaborator.
func (e *Editor) onChange(prev, next *moodboard.BoardState, a moodboard.Action) {
	switch a.(type) {
	case moodboard.AddImageItem:
		if it, ok := next.Selected(); ok {
			if img, ok := it.(moodboard.ImageItem); ok {
				e.images.request(img.Src)
			}
		}
	}
	if e.editing != nil && next.Board.IndexOf(e.editing.id) < 0 {
		e.editing = nil
	}
}

// Update implements ebiten.Game.
func (e *Editor) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if focused := ebiten.IsFocused(); focused != e.focused {
		e.focused = focused
		if !focused {
			e.router.CancelAll()
		}
	}

	if sc := e.opts.Script; sc != nil {
		sc.Step(e.router, e.keyboard)
	}

	mods := readModifiers()
	e.processPointers(mods)
	e.processKeys(mods)

	e.images.poll()
	e.notices.Update(dt)
	select {
	case res := <-e.exports:
		e.pendingExports--
		if res.err != nil {
			e.notify(notify.KindError, "Export failed: "+res.err.Error())
		} else {
			e.notify(notify.KindSuccess, "Saved "+res.path)
		}
	default:
	}

	if sc := e.opts.Script; e.opts.ExitAfterScript && sc != nil && sc.Done() && e.pendingExports == 0 {
		return ebiten.Termination
	}
	return nil
}

// Layout implements ebiten.Game. The board is fitted to the window width and
// centered horizontally below the toolbar.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.viewport.Observe(float64(outsideWidth - 2*margin))
	w, _ := e.viewport.DisplaySize()
	e.viewport.SetOrigin((float64(outsideWidth)-w)/2, toolbarHeight+margin/2)
	return outsideWidth, outsideHeight
}

func (e *Editor) notify(kind notify.Kind, msg string) {
	e.notices.Push(notify.New(kind, msg))
}

// --- toolbar actions ---

// cycleColor gives the selected color block the next palette color.
func (e *Editor) cycleColor() {
	it, ok := e.store.State().Selected()
	if !ok {
		return
	}
	c, ok := it.(moodboard.ColorItem)
	if !ok {
		return
	}
	for i, hex := range Palette {
		if strings.EqualFold(hex, c.Hex) {
			e.paletteIdx = i
			break
		}
	}
	e.paletteIdx = (e.paletteIdx + 1) % len(Palette)
	e.store.Dispatch(moodboard.UpdateColor{ID: c.ID, Hex: Palette[e.paletteIdx]})
}

// pasteImage adds an image item from a URL on the clipboard.
func (e *Editor) pasteImage() {
	s, err := clipboard.ReadAll()
	if err != nil {
		e.notify(notify.KindError, "Clipboard unavailable: "+err.Error())
		return
	}
	s = strings.TrimSpace(s)
	if s == "" {
		e.notify(notify.KindInfo, "Clipboard is empty")
		return
	}
	e.store.Dispatch(moodboard.AddImageItem{Src: s})
}

// copySelected puts the selected item's hex, text or src on the clipboard.
func (e *Editor) copySelected() {
	it, ok := e.store.State().Selected()
	if !ok {
		return
	}
	var s string
	switch v := it.(type) {
	case moodboard.ColorItem:
		s = v.Hex
	case moodboard.TextItem:
		s = v.Text
	case moodboard.ImageItem:
		s = v.Src
	}
	if err := clipboard.WriteAll(s); err != nil {
		e.notify(notify.KindError, "Clipboard unavailable: "+err.Error())
		return
	}
	e.notify(notify.KindInfo, "Copied "+s)
}

// export renders the current state to PNG off the game loop.
func (e *Editor) export() {
	e.exportLabeled(e.store.State().Board.ID)
}

func (e *Editor) exportLabeled(label string) {
	state := e.store.State()
	e.notify(notify.KindInfo, "Exporting...")
	e.pendingExports++
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		path, err := e.exporter.SavePNG(ctx, e.opts.ExportDir, label, state)
		e.exports <- exportResult{path: path, err: err}
	}()
}

// --- text editing ---

func (e *Editor) beginEdit() {
	it, ok := e.store.State().Selected()
	if !ok {
		return
	}
	t, ok := it.(moodboard.TextItem)
	if !ok {
		return
	}
	e.editing = &textEdit{id: t.ID, buf: []rune(t.Text)}
}

func (e *Editor) commitEdit() {
	ed := e.editing
	e.editing = nil
	if ed == nil {
		return
	}
	e.store.Dispatch(moodboard.CommitText(e.measurer, ed.id, string(ed.buf)))
}

// processEditing handles typing into the edited note. Enter commits,
// Shift+Enter inserts a newline and Escape discards the edit.
func (e *Editor) processEditing(mods moodboard.KeyModifiers) {
	ed := e.editing
	ed.buf = ebiten.AppendInputChars(ed.buf)

	switch {
	case justPressed(ebiten.KeyEscape):
		e.editing = nil
	case justPressed(ebiten.KeyEnter) && mods.Has(moodboard.ModShift):
		ed.buf = append(ed.buf, '\n')
	case justPressed(ebiten.KeyEnter):
		e.commitEdit()
	case (justPressed(ebiten.KeyBackspace) || repeating(ebiten.KeyBackspace)) && len(ed.buf) > 0:
		ed.buf = ed.buf[:len(ed.buf)-1]
	}
}
