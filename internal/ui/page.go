package ui

import (
	"fmt"
	"strings"

	"desk-portfolio/internal/app"
	"desk-portfolio/internal/overlay"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	navPad     = 12
	lineGap    = 6
	backWidth  = 120
	backHeight = 44
	backMargin = 20
	backSize   = 24
)

// Page is the portfolio overlay: title, subtitle, the nav that follows the monitor, the
// back button and the loading bar. It implements app.View; the view methods only change
// node state so they are safe to call before a window exists.
type Page struct {
	engine  *Engine
	content Content

	title, subtitle *Node
	nav             *Node
	back            *Node
	loading         *Node
	links           []*Node
	panels          []*Node

	selected int
	expanded []bool
	scroll   float32

	cursor    app.Cursor
	cursors   [2]rl.Texture2D
	onBack    func()
	onAnchor  func(bool)
	loaded    int
	expected  int
	ready     bool
	navPlaced bool
}

// NewPage builds the page nodes for content. onBack runs when the back button is pressed;
// onAnchor receives anchor visibility changes for the 3D scene. Either may be nil.
func NewPage(engine *Engine, content Content, onBack func(), onAnchor func(bool)) *Page {
	p := &Page{
		engine:   engine,
		content:  content,
		title:    NewNode("label", "title", "Title", content.Title),
		subtitle: NewNode("label", "subtitle", "Subtitle", content.Subtitle),
		nav:      NewNode("panel", "nav", "nav", ""),
		back:     NewNode("button", "back", "backButton", "← Back"),
		loading:  NewNode("label", "loading", "loading", ""),
		selected: -1,
		expanded: make([]bool, len(content.Sections)),
		onBack:   onBack,
		onAnchor: onAnchor,
	}
	p.nav.Opacity = 0
	p.back.Hidden = true
	nodes := []*Node{p.title, p.subtitle, p.nav, p.loading}
	for _, s := range content.Sections {
		link := NewNode("link", "nav-link", s.Link, s.Title)
		panel := NewNode("panel", "section", s.ID, "")
		panel.Hidden = true
		p.links = append(p.links, link)
		p.panels = append(p.panels, panel)
		nodes = append(nodes, panel)
	}
	engine.SetNodes(nodes)
	return p
}

// SetNavOpacity fades the nav. Hiding it also returns the nav to its link menu.
func (p *Page) SetNavOpacity(alpha float32) {
	p.nav.Opacity = min(max(alpha, 0), 1)
	for _, l := range p.links {
		l.Opacity = p.nav.Opacity
	}
	for _, s := range p.panels {
		s.Opacity = p.nav.Opacity
	}
	if p.nav.Opacity == 0 {
		p.ShowMenu()
	}
}

// SetTitleOpacity fades the title and subtitle together.
func (p *Page) SetTitleOpacity(alpha float32) {
	p.title.Opacity = alpha
	p.subtitle.Opacity = alpha
}

// SetBackVisible shows or hides the back button.
func (p *Page) SetBackVisible(visible bool) { p.back.Hidden = !visible }

// SetCursor picks the pointer image.
func (p *Page) SetCursor(c app.Cursor) {
	p.cursor = c
	if p.cursors[0].ID != 0 {
		return
	}
	if !rl.IsWindowReady() {
		return
	}
	if c == app.CursorPointer {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

// PlaceNav moves the nav box to r.
func (p *Page) PlaceNav(r overlay.Rect) {
	p.nav.Bounds = rl.NewRectangle(r.Left, r.Top, r.Width, r.Height)
	p.navPlaced = true
	p.layoutNav()
}

// SetAnchorVisible forwards to the scene.
func (p *Page) SetAnchorVisible(visible bool) {
	if p.onAnchor != nil {
		p.onAnchor(visible)
	}
}

// SetLoading updates the loading bar.
func (p *Page) SetLoading(loaded, expected int) {
	p.loaded, p.expected = loaded, expected
	p.loading.Text = fmt.Sprintf("loading %d/%d", loaded, expected)
}

// Ready hides the loading bar.
func (p *Page) Ready() {
	p.ready = true
	p.loading.Hidden = true
}

// Cursor returns the pointer image last requested.
func (p *Page) Cursor() app.Cursor { return p.cursor }

// Select opens the section behind the link with the given id: only that link stays
// listed and exactly one section panel is shown. Unknown ids are ignored.
func (p *Page) Select(linkID string) bool {
	idx := -1
	for i, s := range p.content.Sections {
		if s.Link == linkID {
			idx = i
		}
	}
	if idx < 0 {
		return false
	}
	p.selected = idx
	p.scroll = 0
	for i := range p.links {
		p.links[i].Hidden = i != idx
		p.panels[i].Hidden = i != idx
	}
	p.layoutNav()
	return true
}

// ShowMenu lists every link again and closes all panels.
func (p *Page) ShowMenu() {
	p.selected = -1
	p.scroll = 0
	for i := range p.links {
		p.links[i].Hidden = false
		p.panels[i].Hidden = true
		p.expanded[i] = false
	}
	p.layoutNav()
}

// Selected returns the open section id, or "" while the menu is shown.
func (p *Page) Selected() string {
	if p.selected < 0 {
		return ""
	}
	return p.content.Sections[p.selected].ID
}

// ToggleStory expands or collapses the open section's story and returns the new button label.
func (p *Page) ToggleStory() string {
	if p.selected < 0 {
		return ""
	}
	p.expanded[p.selected] = !p.expanded[p.selected]
	return p.content.Sections[p.selected].ToggleLabel(p.expanded[p.selected])
}

// Scroll moves the open section's text by dy lines.
func (p *Page) Scroll(dy float32) {
	if p.selected < 0 {
		return
	}
	p.scroll = max(p.scroll-dy*float32(p.textSize()+lineGap), 0)
}

// Captures reports whether a press at (x, y) belongs to the page rather than the scene.
func (p *Page) Captures(x, y float32) bool {
	pt := rl.NewVector2(x, y)
	if !p.back.Hidden && rl.CheckCollisionPointRec(pt, p.BackRect(rl.GetScreenWidth())) {
		return true
	}
	return p.navPlaced && p.nav.Opacity > 0 && rl.CheckCollisionPointRec(pt, p.nav.Bounds)
}

// BackRect is the back button's box in the top right corner.
func (p *Page) BackRect(screenW int) rl.Rectangle {
	return rl.NewRectangle(float32(screenW-backMargin-backWidth), backMargin, backWidth, backHeight)
}

func (p *Page) linkSize() int32 {
	if len(p.links) == 0 {
		return defaultFontSize
	}
	return p.engine.Style(p.links[0]).FontSize
}

func (p *Page) textSize() int32 {
	if len(p.panels) == 0 {
		return defaultFontSize
	}
	return p.engine.Style(p.panels[0]).FontSize
}

// layoutNav stacks the listed links at the top of the nav; the open panel fills the rest.
func (p *Page) layoutNav() {
	r := p.nav.Bounds
	row := float32(p.linkSize() + lineGap)
	y := r.Y + navPad
	for _, l := range p.links {
		if l.Hidden {
			continue
		}
		l.Bounds = rl.NewRectangle(r.X+navPad, y, max(r.Width-2*navPad, 0), row)
		y += row
	}
	for _, s := range p.panels {
		s.Bounds = rl.NewRectangle(r.X+navPad, y, max(r.Width-2*navPad, 0), max(r.Y+r.Height-navPad-y, 0))
	}
}

// LoadCursors loads the two pointer images and hides the OS cursor. Without them the
// system arrow and hand are used.
func (p *Page) LoadCursors(normal, pointer string) error {
	a := rl.LoadTexture(normal)
	b := rl.LoadTexture(pointer)
	if a.ID == 0 || b.ID == 0 {
		rl.UnloadTexture(a)
		rl.UnloadTexture(b)
		return fmt.Errorf("ui: cursor images %s, %s not loaded", normal, pointer)
	}
	p.cursors = [2]rl.Texture2D{a, b}
	rl.HideCursor()
	return nil
}

// ApplyTheme sets the raygui colors and font used by the back button, nav links and loading bar.
func (p *Page) ApplyTheme() {
	if f := p.engine.Font(); f.Texture.ID != 0 {
		gui.SetFont(f)
	}
	back := p.engine.Style(p.back)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, gui.PropertyValue(back.FontSize))
	gui.SetStyle(gui.BUTTON, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(back.Background))
	gui.SetStyle(gui.BUTTON, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(back.Border))
	gui.SetStyle(gui.BUTTON, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(back.Border))
	gui.SetStyle(gui.BUTTON, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(back.Border))
	gui.SetStyle(gui.BUTTON, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(back.Border))
	gui.SetStyle(gui.BUTTON, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(back.Color))
	gui.SetStyle(gui.BUTTON, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(back.Color))
	gui.SetStyle(gui.BUTTON, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(back.Color))
	gui.SetStyle(gui.BUTTON, gui.BORDER_WIDTH, 2)

	link := DefaultComputedStyle()
	if len(p.links) > 0 {
		link = p.engine.Style(p.links[0])
	}
	gui.SetStyle(gui.LABEL, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(link.Color))
	gui.SetStyle(gui.LABEL, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(link.Border))
	gui.SetStyle(gui.LABEL, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(link.Border))
}

// Draw renders the page on top of the scene.
func (p *Page) Draw() {
	p.engine.Draw()
	p.drawNav()
	if !p.back.Hidden {
		gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, backSize)
		if gui.Button(p.BackRect(rl.GetScreenWidth()), p.back.Text) && p.onBack != nil {
			p.onBack()
		}
	}
	if !p.ready && p.expected > 0 {
		w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
		bar := rl.NewRectangle(w/2-150, h-60, 300, 20)
		loaded := float32(p.loaded)
		gui.ProgressBar(bar, "", "", &loaded, 0, float32(p.expected))
	}
}

func (p *Page) drawNav() {
	alpha := p.nav.Opacity
	if alpha <= 0 || !p.navPlaced {
		return
	}
	r := p.nav.Bounds
	rl.BeginScissorMode(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
	defer rl.EndScissorMode()

	gui.SetAlpha(alpha)
	defer gui.SetAlpha(1)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, gui.PropertyValue(p.linkSize()))
	for i, l := range p.links {
		if l.Hidden {
			continue
		}
		if gui.LabelButton(l.Bounds, l.Text) {
			if p.selected == i {
				p.ShowMenu()
			} else {
				p.Select(l.ID)
			}
			return
		}
	}
	if p.selected < 0 {
		return
	}
	panel := p.panels[p.selected]
	style := p.engine.Style(panel)
	color := rl.Fade(style.Color, alpha)
	size := style.FontSize
	row := float32(size + lineGap)
	measure := func(s string) float32 { return p.engine.MeasureText(s, size) }

	y := panel.Bounds.Y - p.scroll
	sec := p.content.Sections[p.selected]
	for _, line := range Wrap(sec.Body, panel.Bounds.Width, measure) {
		p.engine.DrawText(line, int32(panel.Bounds.X), int32(y), size, color)
		y += row
	}
	if sec.Story == "" {
		return
	}
	y += lineGap
	label := sec.ToggleLabel(p.expanded[p.selected])
	if gui.LabelButton(rl.NewRectangle(panel.Bounds.X, y, panel.Bounds.Width, row), label) {
		p.ToggleStory()
	}
	y += row
	if !p.expanded[p.selected] {
		return
	}
	for _, line := range Wrap(sec.Story, panel.Bounds.Width, measure) {
		p.engine.DrawText(line, int32(panel.Bounds.X), int32(y), size, color)
		y += row
	}
}

// DrawCursor draws the pointer image at the mouse. Call last so it is on top of everything.
func (p *Page) DrawCursor() {
	tex := p.cursors[0]
	if p.cursor == app.CursorPointer {
		tex = p.cursors[1]
	}
	if tex.ID == 0 {
		return
	}
	m := rl.GetMousePosition()
	rl.DrawTexture(tex, int32(m.X), int32(m.Y), rl.White)
}

// Unload frees the cursor images.
func (p *Page) Unload() {
	for i, t := range p.cursors {
		if t.ID != 0 {
			rl.UnloadTexture(t)
			p.cursors[i] = rl.Texture2D{}
		}
	}
}

// Wrap breaks text into lines no wider than width. Blank lines in text start new paragraphs;
// a single word wider than width gets a line of its own.
func Wrap(text string, width float32, measure func(string) float32) []string {
	var out []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			next := line + " " + w
			if measure(next) > width {
				out = append(out, line)
				line = w
				continue
			}
			line = next
		}
		out = append(out, line)
	}
	return out
}
