package ui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 20

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached and only recomputed when sheet or nodes change to avoid per-frame allocations.
// If font is loaded (LoadFont), text is drawn with that font; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
	font         rl.Font
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded or merged CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// LoadFont loads a TTF font from path for text rendering at size px. If loading fails,
// the engine keeps using the default font. Call after the window/OpenGL context exists.
func (e *Engine) LoadFont(path string, size int32) error {
	f := rl.LoadFontEx(path, size, glyphs())
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: font %s: %w", path, os.ErrNotExist)
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// glyphs are the codepoints baked into the font atlas: printable ASCII plus the arrows the page uses.
func glyphs() []rune {
	rs := make([]rune, 0, 100)
	for r := rune(32); r < 127; r++ {
		rs = append(rs, r)
	}
	return append(rs, '←', '▲', '▼')
}

// Font returns the loaded font; its texture ID is zero when none is loaded.
func (e *Engine) Font() rl.Font { return e.font }

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
	e.cacheValid = false
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.cacheValid = false
}

// Style returns the resolved style for n. n need not be one of the engine's nodes.
func (e *Engine) Style(n *Node) ComputedStyle {
	return ResolveProps(e.resolveProps(n))
}

// resolveProps returns merged properties for a node (class and id matched; last wins).
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		sel := rule.Selector
		matches := false
		if len(sel) > 0 && sel[0] == '.' {
			matches = n.Class == sel[1:]
		} else if len(sel) > 0 && sel[0] == '#' {
			matches = n.ID == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// resolveBounds sets n.Bounds from style. Size applies when the style gives one; position
// only when the style sets left or top.
func resolveBounds(n *Node, style ComputedStyle) {
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	if style.Positioned {
		n.Bounds.X = float32(style.Left)
		n.Bounds.Y = float32(style.Top)
	}
}

// Layout resolves styles (cached) and bounds for all nodes against the screen size.
func (e *Engine) Layout(screenW, screenH int32) {
	if !e.cacheValid {
		e.cachedStyles = make([]ComputedStyle, len(e.nodes))
		for i, n := range e.nodes {
			e.cachedStyles[i] = e.Style(n)
			resolveBounds(n, e.cachedStyles[i])
		}
		e.cacheValid = true
	}
	for i, n := range e.nodes {
		style := e.cachedStyles[i]
		if style.LeftPct >= 0 {
			n.Bounds.X = float32((screenW - int32(n.Bounds.Width)) * style.LeftPct / 100)
		}
		if style.TopPct >= 0 {
			n.Bounds.Y = float32((screenH - int32(n.Bounds.Height)) * style.TopPct / 100)
		}
	}
}

// Draw lays out and draws all visible nodes: background, border, then text, each faded
// by the node's opacity times the style's.
func (e *Engine) Draw() {
	e.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	for i, n := range e.nodes {
		style := e.cachedStyles[i]
		alpha := n.Opacity * style.Opacity
		if n.Hidden || style.Hidden || alpha <= 0 {
			continue
		}
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)

		if style.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, rl.Fade(style.Background, alpha))
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, rl.Fade(style.Border, alpha))
		}
		if n.Text != "" {
			e.DrawText(n.Text, x+style.Padding, y+style.Padding, style.FontSize, rl.Fade(style.Color, alpha))
		}
	}
}

// DrawText draws text with the loaded font, or raylib's default font when none is loaded.
func (e *Engine) DrawText(text string, x, y, size int32, c rl.Color) {
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
		return
	}
	rl.DrawText(text, x, y, size, c)
}

// MeasureText returns the drawn width of text at size.
func (e *Engine) MeasureText(text string, size int32) float32 {
	if e.font.Texture.ID != 0 {
		return rl.MeasureTextEx(e.font, text, float32(size), 1).X
	}
	return float32(rl.MeasureText(text, size))
}

// Unload frees the font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// HasStylesheet returns whether a CSS file has been loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}
