// Package ui draws the 2D layer over the room: loading screen, navigation,
// content modals, link confirmation and the screen-zoom hint.
package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colours, lilac on plum to sit with the room's background.
var (
	colorLoadingBg = rl.NewColor(234, 215, 239, 255) // #ead7ef
	colorText      = rl.NewColor(64, 29, 73, 255)    // #401d49
	colorTextMuted = rl.NewColor(64, 29, 73, 170)
	colorPanel     = rl.NewColor(250, 244, 251, 245)
	colorElement   = rl.NewColor(242, 230, 246, 255)
	colorHover     = rl.NewColor(228, 208, 235, 255)
	colorAccent    = rl.NewColor(124, 71, 138, 255)
	colorBorder    = rl.NewColor(196, 168, 206, 255)
	colorBackdrop  = rl.NewColor(40, 18, 46, 120)
	colorError     = rl.NewColor(163, 38, 56, 255)
)

const (
	textSize  = 18
	titleSize = 28
)

// initStyle applies the theme to raygui. Call once after the window exists.
func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorPanel))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorLoadingBg))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, textSize)
}

func drawText(text string, x, y int32, size float32, color rl.Color) {
	font := gui.GetFont()
	if font.Texture.ID > 0 {
		rl.DrawTextEx(font, text, rl.Vector2{X: float32(x), Y: float32(y)}, size, 1, color)
	} else {
		rl.DrawText(text, x, y, int32(size), color)
	}
}

func measureText(text string, size float32) float32 {
	font := gui.GetFont()
	if font.Texture.ID > 0 {
		return rl.MeasureTextEx(font, text, size, 1).X
	}
	return float32(rl.MeasureText(text, int32(size)))
}

func withAlpha(c rl.Color, alpha float32) rl.Color {
	return rl.ColorAlpha(c, alpha*float32(c.A)/255)
}
