package editor

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/moodboard"
	"github.com/phanxgames/moodboard/internal/notify"
)

var (
	clearColor     = color.NRGBA{0xf5, 0xf5, 0xf4, 0xff}
	boardColor     = color.White
	borderColor    = color.NRGBA{0xd4, 0xd4, 0xd4, 0xff}
	selectColor    = color.Black
	handleColor    = color.NRGBA{0, 0, 0, 0xb3}
	textColor      = color.NRGBA{0x17, 0x17, 0x17, 0xff}
	placeholderCol = color.NRGBA{0xe5, 0xe5, 0xe5, 0xff}
	failedCol      = color.NRGBA{0xfe, 0xca, 0xca, 0xff}
)

const helpLine = "1 color   2 text   3 image   C recolor   Enter edit   Del remove   Ctrl+V paste URL   Ctrl+C copy   Ctrl+E export"

// Draw implements ebiten.Game.
func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	e.drawToolbar(screen)

	state := e.store.State()
	scale := e.viewport.Scale()
	rect := e.viewport.VisibleRect()
	vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), boardColor, false)
	vector.StrokeRect(screen, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), 1, borderColor, false)

	// Items are clipped to the board.
	board := screen.SubImage(image.Rect(int(rect.X), int(rect.Y), int(rect.X+rect.Width)+1, int(rect.Y+rect.Height)+1)).(*ebiten.Image)
	for _, it := range state.Board.ItemsByZ() {
		e.drawItem(board, it, scale)
	}

	if sel, ok := state.Selected(); ok {
		b := moodboard.ItemBounds(sel)
		x, y := e.viewport.BoardToScreen(b.X, b.Y)
		vector.StrokeRect(board, float32(x), float32(y), float32(b.Width*scale), float32(b.Height*scale), 2, selectColor, true)
		if moodboard.Resizable(sel) {
			h := e.router.HandleRect(sel)
			hx, hy := e.viewport.BoardToScreen(h.X, h.Y)
			vector.DrawFilledRect(board, float32(hx), float32(hy), moodboard.HandleSize, moodboard.HandleSize, handleColor, true)
		}
	}

	e.drawNotices(screen)
	if e.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  scale %.3f  gestures %d", ebiten.ActualFPS(), scale, e.router.Active()), 4, screen.Bounds().Dy()-16)
	}
}

func (e *Editor) drawItem(dst *ebiten.Image, it moodboard.Item, scale float64) {
	b := it.Base()
	w, h := moodboard.ItemSize(it)
	x, y := e.viewport.BoardToScreen(b.X, b.Y)
	sw, sh := float32(w*scale), float32(h*scale)

	switch v := it.(type) {
	case moodboard.ColorItem:
		c, ok := moodboard.ParseHexColor(v.Hex)
		if !ok {
			c = moodboard.ColorNeutral
		}
		vector.DrawFilledRect(dst, float32(x), float32(y), sw, sh, c.RGBA(), true)

	case moodboard.TextItem:
		content := v.Text
		if e.editing != nil && e.editing.id == v.ID {
			content = string(e.editing.buf) + "|"
			vector.StrokeRect(dst, float32(x), float32(y), sw, sh, 1, borderColor, true)
		}
		e.drawText(dst, content, x, y, scale)

	case moodboard.ImageItem:
		entry := e.images.get(v.Src)
		switch entry.status {
		case imageReady:
			s, ox, oy := moodboard.CoverFit(entry.w, entry.h, w, h)
			clip := dst.SubImage(image.Rect(int(x), int(y), int(x)+int(sw)+1, int(y)+int(sh)+1)).(*ebiten.Image)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(s*scale, s*scale)
			op.GeoM.Translate(x+ox*scale, y+oy*scale)
			op.Filter = ebiten.FilterLinear
			clip.DrawImage(entry.img, op)
		case imageFailed:
			vector.DrawFilledRect(dst, float32(x), float32(y), sw, sh, failedCol, true)
		default:
			vector.DrawFilledRect(dst, float32(x), float32(y), sw, sh, placeholderCol, true)
		}
	}
}

func (e *Editor) drawText(dst *ebiten.Image, s string, x, y, scale float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(moodboard.TextPaddingX, moodboard.TextPaddingY)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	m := e.face.Metrics()
	op.LineSpacing = m.HAscent + m.HDescent + m.HLineGap
	text.Draw(dst, s, e.face, op)
}

func (e *Editor) drawToolbar(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(margin, 12)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, helpLine, e.uiFace, op)
}

func (e *Editor) drawNotices(screen *ebiten.Image) {
	y := float64(screen.Bounds().Dy()) - margin
	visible := e.notices.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		n := visible[i]
		y -= 28
		bg := noticeColor(n.Kind)
		a := n.Alpha()
		msg := strings.ReplaceAll(n.Message, "\n", " ")
		w, _ := text.Measure(msg, e.uiFace, 0)
		vector.DrawFilledRect(screen, margin, float32(y), float32(w)+16, 24, scaleAlpha(bg, a), true)
		op := &text.DrawOptions{}
		op.GeoM.Translate(margin+8, y+5)
		op.ColorScale.ScaleWithColor(color.White)
		op.ColorScale.ScaleAlpha(a)
		text.Draw(screen, msg, e.uiFace, op)
	}
}

func noticeColor(k notify.Kind) color.NRGBA {
	switch k {
	case notify.KindError:
		return color.NRGBA{0xb9, 0x1c, 0x1c, 0xff}
	case notify.KindSuccess:
		return color.NRGBA{0x15, 0x80, 0x3d, 0xff}
	}
	return color.NRGBA{0x26, 0x26, 0x26, 0xff}
}

func scaleAlpha(c color.NRGBA, a float32) color.NRGBA {
	c.A = uint8(float32(c.A) * a)
	return c
}
