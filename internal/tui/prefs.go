package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/modlight/internal/config/notify"
	"github.com/dshills/modlight/internal/indicator"
	"github.com/dshills/modlight/internal/modifier"
	"github.com/dshills/modlight/internal/modstate"
	"github.com/dshills/modlight/internal/reconcile"
	"github.com/dshills/modlight/internal/settings"
)

// ConfigStore is the store surface the preferences view consumes.
type ConfigStore interface {
	settings.Store
	Subscribe(observer notify.Observer) *notify.Subscription
}

// prefRow is one modifier's editable field group.
type prefRow struct {
	id       modifier.ID
	name     string
	symbol   *TextField
	iconPath *TextField
	useIcon  *Toggle
}

// Preferences is the interactive settings surface. It owns the cache,
// preset manager, and coordinator for the lifetime of the view, and it
// implements reconcile.Affordances so the coordinator can drive the
// reset/save buttons directly.
type Preferences struct {
	screen tcell.Screen
	loop   *Loop
	cache  *settings.Cache
	coord  *reconcile.Coordinator

	rows     []prefRow
	resetBtn *Button
	saveBtn  *Button
	order    []Focusable
	focus    int

	sub       *notify.Subscription
	lockState modstate.State
	format    func(string) (string, error)
	status    string
	quit      bool
}

// NewPreferences builds the surface over store. The store must already be
// loaded.
func NewPreferences(screen tcell.Screen, store ConfigStore) (*Preferences, error) {
	p := &Preferences{
		screen: screen,
		loop:   NewLoop(screen),
	}

	p.cache = settings.NewCache(store)
	if err := p.cache.Load(); err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	presets := settings.NewPresetManager(p.cache, symbolKeys())

	p.coord = reconcile.New(p.cache, presets, p, reconcile.WithErrorReporter(p.reportError))

	p.resetBtn = NewButton("Reset to defaults", p.coord.ResetToDefault)
	p.saveBtn = NewButton("Save symbols", p.coord.SaveAsPreset)

	for _, id := range modifier.All() {
		meta, _ := modifier.Metadata(id)
		row := prefRow{
			id:       id,
			name:     meta.Name,
			symbol:   NewTextField(p.cache.String(id.SymbolKey())),
			iconPath: NewTextField(p.cache.String(id.IconPathKey())),
			useIcon:  NewToggle(p.cache.Bool(id.UseIconKey())),
		}
		p.coord.Bind(id.SymbolKey(), row.symbol, p.loop)
		p.coord.Bind(id.IconPathKey(), row.iconPath, p.loop)
		p.coord.Bind(id.UseIconKey(), row.useIcon, p.loop)
		p.rows = append(p.rows, row)

		p.order = append(p.order, row.symbol, row.iconPath, row.useIcon)
	}
	p.order = append(p.order, p.resetBtn, p.saveBtn)
	p.order[0].Focus(true)

	// Store notifications arrive on the watcher goroutine; hop onto the
	// UI loop before touching any view state.
	p.sub = store.Subscribe(func(change notify.Change) {
		p.loop.Post(func() {
			p.coord.StoreChanged(change)
		})
	})

	p.coord.Refresh()
	return p, nil
}

// SetResetEnabled implements reconcile.Affordances.
func (p *Preferences) SetResetEnabled(enabled bool) {
	p.resetBtn.SetEnabled(enabled)
}

// SetSaveVisible implements reconcile.Affordances. Hiding the button while
// it holds focus advances focus so it never parks on an invisible control.
func (p *Preferences) SetSaveVisible(visible bool) {
	p.saveBtn.SetVisible(visible)
	if !visible && p.order[p.focus] == Focusable(p.saveBtn) {
		p.moveFocus(1)
	}
}

// SetLockState updates the indicator line. Callers off the UI goroutine
// must route through the loop.
func (p *Preferences) SetLockState(state modstate.State) {
	p.lockState = state
}

// SetFormatter installs a user hook that rewrites the indicator line before
// display. A hook that returns an error is skipped for that draw.
func (p *Preferences) SetFormatter(format func(string) (string, error)) {
	p.format = format
}

// Loop returns the surface's UI loop for posting external work.
func (p *Preferences) Loop() *Loop { return p.loop }

// Run drives the event loop until the user quits or the screen closes.
func (p *Preferences) Run() {
	p.draw()
	for !p.quit {
		ev := p.screen.PollEvent()
		if ev == nil {
			break
		}
		p.HandleEvent(ev)
		p.draw()
	}
	p.teardown()
}

// Quit requests loop exit on the next turn.
func (p *Preferences) Quit() {
	p.quit = true
}

// HandleEvent processes one event. Exposed for the event loop and tests.
func (p *Preferences) HandleEvent(ev tcell.Event) {
	if p.loop.Dispatch(ev) {
		return
	}

	switch ev := ev.(type) {
	case *tcell.EventResize:
		p.screen.Sync()
	case *tcell.EventKey:
		p.handleKey(ev)
	}
}

func (p *Preferences) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		p.quit = true
		return
	case tcell.KeyTab, tcell.KeyDown:
		p.moveFocus(1)
		return
	case tcell.KeyBacktab, tcell.KeyUp:
		p.moveFocus(-1)
		return
	}

	p.status = ""
	p.order[p.focus].HandleKey(ev)
}

// moveFocus advances focus by delta, skipping hidden buttons.
func (p *Preferences) moveFocus(delta int) {
	p.order[p.focus].Focus(false)
	for {
		p.focus = (p.focus + delta + len(p.order)) % len(p.order)
		if b, ok := p.order[p.focus].(*Button); ok && !b.Visible() {
			continue
		}
		break
	}
	p.order[p.focus].Focus(true)
}

func (p *Preferences) reportError(key string, err error) {
	if key == "" {
		p.status = err.Error()
		return
	}
	p.status = fmt.Sprintf("%s: %v", key, err)
}

func (p *Preferences) teardown() {
	if p.sub != nil {
		p.sub.Unsubscribe()
	}
	for _, row := range p.rows {
		row.symbol.Destroy()
		row.iconPath.Destroy()
		row.useIcon.Destroy()
	}
}

// Row geometry.
const (
	colName     = 1
	colSymbol   = 14
	symbolWidth = 8
	colIcon     = 24
	iconWidth   = 28
	colToggle   = 54
)

func (p *Preferences) draw() {
	p.screen.Clear()

	p.drawIndicator(0)

	header := tcell.StyleDefault.Attributes(tcell.AttrUnderline)
	drawText(p.screen, colName, 2, header, "Modifier")
	drawText(p.screen, colSymbol, 2, header, "Symbol")
	drawText(p.screen, colIcon, 2, header, "Icon path")
	drawText(p.screen, colToggle, 2, header, "Use icon")

	for i, row := range p.rows {
		y := 3 + i
		drawText(p.screen, colName, y, tcell.StyleDefault, row.name)
		p.drawField(colSymbol, y, symbolWidth, row.symbol)
		p.drawField(colIcon, y, iconWidth, row.iconPath)
		p.drawToggle(colToggle, y, row.useIcon)
	}

	y := 4 + len(p.rows)
	x := p.drawButton(colName, y, p.resetBtn)
	if p.saveBtn.Visible() {
		p.drawButton(x+2, y, p.saveBtn)
	}

	width, height := p.screen.Size()
	hint := "tab: next  esc: quit"
	if p.status != "" {
		hint = p.status
	}
	drawText(p.screen, 1, height-1, tcell.StyleDefault.Dim(true), truncate(hint, width-2))

	p.screen.Show()
}

func (p *Preferences) drawIndicator(y int) {
	segments := indicator.Compose(p.cache, p.lockState)

	if p.format != nil {
		if line, err := p.format(indicator.Line(segments)); err == nil {
			drawText(p.screen, colName, y, tcell.StyleDefault, line)
			return
		}
	}

	x := colName
	for _, seg := range segments {
		style := tcell.StyleDefault.Dim(true)
		if seg.Active {
			style = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorGreen)
		}
		drawText(p.screen, x, y, style, seg.Text)
		x += seg.Width + 1
	}
}

func (p *Preferences) drawField(x, y, width int, f *TextField) {
	style := tcell.StyleDefault
	if f.Focused() {
		style = style.Reverse(true)
	}
	drawText(p.screen, x, y, style, pad(truncate(f.Value(), width), width))
}

func (p *Preferences) drawToggle(x, y int, t *Toggle) {
	style := tcell.StyleDefault
	if t.focused {
		style = style.Reverse(true)
	}
	mark := "[ ]"
	if t.On() {
		mark = "[x]"
	}
	drawText(p.screen, x, y, style, mark)
}

// drawButton renders b and returns the x position past its right edge.
func (p *Preferences) drawButton(x, y int, b *Button) int {
	style := tcell.StyleDefault
	if !b.Enabled() {
		style = style.Dim(true)
	}
	if b.focused {
		style = style.Reverse(true)
	}
	label := "< " + b.label + " >"
	drawText(p.screen, x, y, style, label)
	return x + uniseg.StringWidth(label)
}

// symbolKeys lists the keys the saved preset covers: symbols and icon paths,
// not the use-icon flags.
func symbolKeys() []string {
	var keys []string
	for _, id := range modifier.All() {
		keys = append(keys, id.SymbolKey(), id.IconPathKey())
	}
	return keys
}

// drawText writes s starting at (x, y), advancing by grapheme cluster width.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
}

func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var out []rune
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if w+g.Width() > width {
			break
		}
		out = append(out, g.Runes()...)
		w += g.Width()
	}
	return string(out)
}

func pad(s string, width int) string {
	for uniseg.StringWidth(s) < width {
		s += " "
	}
	return s
}
