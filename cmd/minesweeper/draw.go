package main

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/04pril/minefield/internal/game"
	"github.com/04pril/minefield/internal/visible"
)

var helpLines = []string{
	"N: New game | 1/2/3: Beginner/Intermediate/Expert",
	"C: Custom board | Enter: Apply custom",
	"Left click: Uncover / Chord | Right click: Flag/?",
	"Touch: tap = uncover/chord | long-press = flag/?",
	"H: Hint | P: Pause | T: Theme | Q: Toggle ? marks",
	"F1: Toggle Help | Click the face to restart",
}

func (u *ui) Draw(screen *ebiten.Image) {
	th := themes[u.themeIdx]
	screen.Fill(th.Panel)
	windowW, _ := u.Layout(0, 0)
	d := u.round.Difficulty

	drawRaisedRect(screen, outerPadding-2, 10, windowW-(outerPadding-2)*2, topPanelHeight-18, th)
	fillRect(screen, outerPadding+4, 16, windowW-outerPadding*2-8, 40, th.Panel)

	drawCounter(screen, outerPadding+10, 20, u.view().MinesLeft(), 3, th)
	drawCounter(screen, windowW-outerPadding-10-58, 20, u.elapsed, 3, th)
	u.drawFace(screen, windowW, th)

	boardX, boardY := outerPadding, topPanelHeight
	drawSunkenRect(screen, boardX-2, boardY-2, d.Cols*cellSize+4, d.Rows*cellSize+4, th)
	for r := 0; r < d.Rows; r++ {
		for c := 0; c < d.Cols; c++ {
			u.drawCell(screen, r, c, th)
		}
	}

	info := fmt.Sprintf("%s  [%dx%d/%d]  Theme:%s  QMark:%v", d.Name, d.Cols, d.Rows, d.Mines, th.Name, u.allowQuestion)
	text.Draw(screen, info, u.fontMain, outerPadding, 10, th.Text)

	switch {
	case u.showCustom:
		u.drawCustomDialog(screen, th)
	case u.showHelp:
		drawOverlayPanel(screen, "HELP", helpLines, u.fontMain, th)
	case u.paused:
		drawOverlayPanel(screen, "PAUSED", []string{"Press P to resume"}, u.fontMain, th)
	}

	switch u.view().Outcome() {
	case visible.Won:
		drawBanner(screen, "YOU WIN!", u.fontMain, th)
	case visible.Lost:
		drawBanner(screen, "BOOM!", u.fontMain, th)
	}
}

func (u *ui) drawFace(screen *ebiten.Image, windowW int, th theme) {
	const size = 28
	x, y := windowW/2-size/2, 20
	u.faceRect = image.Rect(x, y, x+size, y+size)
	drawRaisedRect(screen, x, y, size, size, th)

	face := ":)"
	switch {
	case u.view().Outcome() == visible.Lost:
		face = "X("
	case u.view().Outcome() == visible.Won:
		face = "B)"
	case u.paused:
		face = ":|"
	}
	drawTextCentered(screen, face, u.fontMain, x, y+6, size, th.Text)
}

func (u *ui) drawCell(screen *ebiten.Image, row, col int, th theme) {
	px := outerPadding + col*cellSize
	py := topPanelHeight + row*cellSize
	s := u.view().Status(row, col)

	switch s {
	case visible.Covered, visible.Flagged, visible.Questioned:
		drawRaisedRect(screen, px, py, cellSize, cellSize, th)
		if s == visible.Flagged {
			drawFlag(screen, px, py, th)
		} else if s == visible.Questioned {
			drawTextCentered(screen, "?", u.fontMain, px, py+5, cellSize, th.Ink)
		}
		if u.hint != nil && *u.hint == (point{row, col}) && u.playing() {
			vector.StrokeRect(screen, float32(px+2), float32(py+2), cellSize-4, cellSize-4, 2, th.Accent, false)
		}
		return
	}

	fillRect(screen, px, py, cellSize, cellSize, th.Revealed)
	vector.StrokeRect(screen, float32(px), float32(py), cellSize, cellSize, 1, th.Grid, false)

	switch s {
	case visible.DetonatedMine:
		fillRect(screen, px, py, cellSize, cellSize, th.Detonated)
		drawMine(screen, px, py, color.Black)
	case visible.UnflaggedMine:
		drawMine(screen, px, py, th.Ink)
	case visible.WrongFlag:
		drawMine(screen, px, py, th.Ink)
		drawCross(screen, px, py, th.Alert)
	default:
		if n := s.Count(); n > 0 {
			drawTextCentered(screen, strconv.Itoa(n), u.fontMain, px, py+5, cellSize, th.Numbers[n])
		}
	}
}

func (u *ui) drawCustomDialog(screen *ebiten.Image, th theme) {
	w, h := u.Layout(0, 0)
	pw, ph := min(440, w-40), 210
	px, py := (w-pw)/2, (h-ph)/2
	fillRect(screen, 0, 0, w, h, th.Overlay)
	drawSunkenRect(screen, px, py, pw, ph, th)
	fillRect(screen, px+6, py+6, pw-12, ph-12, th.Panel)

	text.Draw(screen, "CUSTOM BOARD", u.fontMain, px+16, py+24, th.Text)
	text.Draw(screen, "Left/Right: field  Up/Down: value  Enter: start  Esc: cancel", u.fontMain, px+16, py+44, th.Text)

	labels := []string{"Width", "Height", "Mines"}
	values := []int{u.custom.Cols, u.custom.Rows, u.custom.Mines}
	for i, label := range labels {
		x, y := px+24+i*130, py+96
		if u.custom.field == i {
			label = "> " + label
		}
		text.Draw(screen, label, u.fontMain, x, y, th.Text)
		text.Draw(screen, strconv.Itoa(values[i]), u.fontMain, x+18, y+28, th.Accent)
	}

	maxM := game.MaxMines(u.custom.Rows, u.custom.Cols)
	text.Draw(screen, fmt.Sprintf("Max mines: %d", maxM), u.fontMain, px+16, py+170, th.Text)
}

func drawFlag(screen *ebiten.Image, px, py int, th theme) {
	x, y := float32(px), float32(py)
	vector.DrawFilledRect(screen, x+11, y+6, 2, 12, th.Ink, false)
	vector.StrokeLine(screen, x+11, y+6, x+5, y+10, 1.5, th.Alert, false)
	vector.StrokeLine(screen, x+5, y+10, x+11, y+14, 1.5, th.Alert, false)
	vector.DrawFilledRect(screen, x+8, y+8, 3, 4, th.Alert, false)
	vector.DrawFilledRect(screen, x+7, y+17, 9, 2, th.Ink, false)
}

func drawMine(screen *ebiten.Image, px, py int, clr color.Color) {
	vector.DrawFilledCircle(screen, float32(px+cellSize/2), float32(py+cellSize/2), 6, clr, false)
}

func drawCross(screen *ebiten.Image, px, py int, clr color.Color) {
	x0, y0 := float32(px+4), float32(py+4)
	x1, y1 := float32(px+cellSize-4), float32(py+cellSize-4)
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, false)
	vector.StrokeLine(screen, x1, y0, x0, y1, 2, clr, false)
}

func drawOverlayPanel(screen *ebiten.Image, title string, lines []string, f font.Face, th theme) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	fillRect(screen, 0, 0, w, h, th.Overlay)
	pw, ph := min(560, w-36), min(280, h-36)
	px, py := (w-pw)/2, (h-ph)/2
	drawSunkenRect(screen, px, py, pw, ph, th)
	fillRect(screen, px+6, py+6, pw-12, ph-12, th.Panel)

	text.Draw(screen, title, f, px+16, py+24, th.Text)
	y := py + 50
	for _, ln := range lines {
		if y > py+ph-18 {
			break
		}
		text.Draw(screen, ln, f, px+16, y, th.Text)
		y += 20
	}
}

func drawBanner(screen *ebiten.Image, label string, f font.Face, th theme) {
	const bw, bh = 220, 30
	x := (screen.Bounds().Dx() - bw) / 2
	fillRect(screen, x, 14, bw, bh, th.Overlay)
	drawTextCentered(screen, label, f, x, 22, bw, th.Accent)
}

func fillRect(screen *ebiten.Image, x, y, w, h int, clr color.Color) {
	ebitenutil.DrawRect(screen, float64(x), float64(y), float64(w), float64(h), clr)
}

func drawBevel(screen *ebiten.Image, x, y, w, h int, topLeft, bottomRight color.Color) {
	x0, y0, x1, y1 := float32(x), float32(y), float32(x+w), float32(y+h)
	vector.StrokeLine(screen, x0, y0, x1, y0, 2, topLeft, false)
	vector.StrokeLine(screen, x0, y0, x0, y1, 2, topLeft, false)
	vector.StrokeLine(screen, x1, y0, x1, y1, 2, bottomRight, false)
	vector.StrokeLine(screen, x0, y1, x1, y1, 2, bottomRight, false)
}

func drawRaisedRect(screen *ebiten.Image, x, y, w, h int, th theme) {
	fillRect(screen, x, y, w, h, th.Face)
	drawBevel(screen, x, y, w, h, th.Light, th.Dark)
}

func drawSunkenRect(screen *ebiten.Image, x, y, w, h int, th theme) {
	fillRect(screen, x, y, w, h, th.Panel)
	drawBevel(screen, x, y, w, h, th.Dark, th.Light)
}

func drawTextCentered(screen *ebiten.Image, s string, f font.Face, x, y, w int, clr color.Color) {
	b := text.BoundString(f, s)
	text.Draw(screen, s, f, x+(w-b.Dx())/2, y+13, clr)
}

// segments lists which of a..g are lit for each digit, a in bit 6.
var segments = [10]uint8{
	0b1111110, 0b0110000, 0b1101101, 0b1111001, 0b0110011,
	0b1011011, 0b1011111, 0b1110000, 0b1111111, 0b1111011,
}

// drawCounter draws value on a seven-segment display. Negative values
// show a leading minus; values too wide for the display are capped.
func drawCounter(screen *ebiten.Image, x, y, value, digits int, th theme) {
	fillRect(screen, x-3, y-3, digits*18+6, 28, color.RGBA{20, 20, 20, 255})

	neg := value < 0
	n := absInt(value)
	limit := 1
	for i := 0; i < digits; i++ {
		limit *= 10
	}
	if neg {
		limit /= 10
	}
	n = min(n, limit-1)

	for i := digits - 1; i >= 0; i-- {
		mask := segments[n%10]
		if neg && i == 0 {
			mask = 0b0000001
		}
		drawDigit(screen, x+i*18, y, mask, th)
		n /= 10
	}
}

func drawDigit(screen *ebiten.Image, x, y int, mask uint8, th theme) {
	rects := [7][4]int{
		{3, 0, 10, 2},  // a
		{13, 2, 2, 9},  // b
		{13, 13, 2, 9}, // c
		{3, 22, 10, 2}, // d
		{1, 13, 2, 9},  // e
		{1, 2, 2, 9},   // f
		{3, 11, 10, 2}, // g
	}
	for i, r := range rects {
		clr := th.DigitOff
		if mask&(1<<(6-i)) != 0 {
			clr = th.Alert
		}
		fillRect(screen, x+r[0], y+r[1], r[2], r[3], clr)
	}
}
