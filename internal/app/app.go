// Package app contains the root application model.
//
// The model is the parent of the stage selector: it owns the active
// selection and the deal counts, passes them to the selector on every
// render, and applies the selector's SelectMsg requests.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/dealboard/internal/config"
	"github.com/zjrosen/dealboard/internal/flags"
	"github.com/zjrosen/dealboard/internal/keys"
	"github.com/zjrosen/dealboard/internal/log"
	"github.com/zjrosen/dealboard/internal/pipeline"
	"github.com/zjrosen/dealboard/internal/pubsub"
	"github.com/zjrosen/dealboard/internal/ui/colorpicker"
	"github.com/zjrosen/dealboard/internal/ui/deallist"
	"github.com/zjrosen/dealboard/internal/ui/logpanel"
	"github.com/zjrosen/dealboard/internal/ui/markdown"
	"github.com/zjrosen/dealboard/internal/ui/stageselector"
	"github.com/zjrosen/dealboard/internal/ui/styles"
	"github.com/zjrosen/dealboard/internal/ui/toaster"
	"github.com/zjrosen/dealboard/internal/watcher"
)

// loadTimeout bounds a single counts+deals load.
const loadTimeout = 5 * time.Second

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// DealService is the part of dealsvc.Service the dashboard uses.
type DealService interface {
	Snapshot(ctx context.Context, sel pipeline.Selection) (pipeline.DealCounts, []pipeline.Deal, error)
	Move(ctx context.Context, id string, to pipeline.Stage) error
	Invalidate(ctx context.Context)
}

// Options configures New.
type Options struct {
	Service DealService
	Config  config.Config
	// DBPath is watched for changes when Config.AutoRefresh is set.
	DBPath string
	Debug  bool
	// ConfigPath receives stage color changes. Empty keeps them in memory.
	ConfigPath string
	// Flags gates optional features. Nil uses the flag defaults.
	Flags *flags.Registry
	// Initial is the selection shown on start.
	Initial pipeline.Selection
}

// loadedMsg carries the result of a load. seq lets late results from an
// older selection be dropped.
type loadedMsg struct {
	seq    int
	sel    pipeline.Selection
	counts pipeline.DealCounts
	deals  []pipeline.Deal
	err    error
}

// movedMsg reports the result of moving a deal to another stage.
type movedMsg struct {
	title string
	to    pipeline.Stage
	err   error
}

// colorSavedMsg reports the result of persisting a stage color change.
// An empty hex means the override was cleared.
type colorSavedMsg struct {
	stage pipeline.Stage
	hex   string
	err   error
}

// Model is the root application state.
type Model struct {
	svc   DealService
	cfg   config.Config
	flags *flags.Registry
	keys  keys.KeyMap
	help  help.Model

	// Selection and counts are owned here and handed to the selector.
	selection pipeline.Selection
	counts    pipeline.DealCounts
	deals     deallist.Model
	loadSeq   int
	loaded    bool
	err       error

	showDetails bool
	md          *markdown.Renderer

	configPath string
	picker     colorpicker.Model
	showPicker bool

	toast      toaster.Model
	debug      bool
	logs       logpanel.Model
	logsListen tea.Cmd
	logsCancel context.CancelFunc

	width  int
	height int

	// File watcher for auto-refresh (pubsub-based)
	watcherHandle *watcher.Watcher
	watcherCtx    context.Context
	watcherCancel context.CancelFunc
	watcherCh     <-chan pubsub.Event[watcher.WatcherEvent]
}

// New creates the dashboard model. A watcher that fails to start is logged
// and the dashboard runs without auto-refresh.
func New(opts Options) Model {
	m := Model{
		svc:        opts.Service,
		cfg:        opts.Config,
		flags:      opts.Flags,
		configPath: opts.ConfigPath,
		picker:     colorpicker.New(),
		keys:       keys.DefaultKeyMap(),
		help:       help.New(),
		selection:  opts.Initial,
		counts:     pipeline.NewDealCounts(),
		deals:      deallist.New(),
		toast:      toaster.New(),
		debug:      opts.Debug,
		logs:       logpanel.New(),
	}

	if opts.Debug {
		var ctx context.Context
		ctx, m.logsCancel = context.WithCancel(context.Background())
		m.logs, m.logsListen = m.logs.Listen(ctx)
	}

	if opts.Config.AutoRefresh && opts.DBPath != "" {
		w, err := watcher.New(watcher.Config{DBPath: opts.DBPath, DebounceDur: opts.Config.RefreshDebounce})
		if err == nil {
			err = w.Start()
			if err != nil {
				_ = w.Stop()
			}
		}
		if err != nil {
			log.ErrorErr(log.CatWatcher, "Auto-refresh disabled", err, "path", opts.DBPath)
		} else {
			m.watcherHandle = w
			m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
			m.watcherCh = w.Broker().Subscribe(m.watcherCtx)
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd(m.loadSeq, m.selection)}
	if m.watcherCh != nil {
		cmds = append(cmds, pubsub.ListenCmd(m.watcherCtx, m.watcherCh))
	}
	if m.logsListen != nil {
		cmds = append(cmds, m.logsListen)
	}
	return tea.Batch(cmds...)
}

// Selection returns the active selection.
func (m Model) Selection() pipeline.Selection {
	return m.selection
}

// Counts returns the last loaded counts.
func (m Model) Counts() pipeline.DealCounts {
	return m.counts
}

// Err returns the last load error, if any.
func (m Model) Err() error {
	return m.err
}

// selectorProps builds the selector input from the state this model owns.
// OnSelect is left nil; input handling goes through runSelector.
func (m Model) selectorProps() stageselector.Props {
	return stageselector.Props{Active: m.selection, Counts: m.counts}
}

// runSelector runs a selector handler with an OnSelect that records the
// next selection, and applies it before Update returns. A second stage key
// read before the reload lands therefore toggles against the first.
func (m Model) runSelector(handle func(stageselector.Props) tea.Cmd) (Model, tea.Cmd, bool) {
	var (
		next    pipeline.Selection
		clicked bool
	)
	props := m.selectorProps()
	props.OnSelect = func(sel pipeline.Selection) tea.Cmd {
		next, clicked = sel, true
		return nil
	}
	handle(props)
	if !clicked {
		return m, nil, false
	}
	m, cmd := m.applySelection(next)
	return m, cmd, true
}

// applySelection stores next, closes details and reloads for the new filter.
func (m Model) applySelection(next pipeline.Selection) (Model, tea.Cmd) {
	log.Info(log.CatUI, "Stage selection changed", "from", m.selection, "to", next)
	m.selection = next
	m.showDetails = false
	m = m.layout()
	return m.reloadModel()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m = m.layout()
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		m.picker = m.picker.SetSize(msg.Width, msg.Height)
		m.md = m.newRenderer()
		return m, nil

	case tea.MouseMsg:
		if !m.flags.Enabled(flags.FlagMouse) {
			return m, nil
		}
		if m.logs.Visible() {
			var cmd tea.Cmd
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}
		if m.showPicker {
			return m, nil
		}
		next, cmd, clicked := m.runSelector(func(p stageselector.Props) tea.Cmd {
			return stageselector.HandleMouse(p, msg)
		})
		if clicked {
			return next, cmd
		}
		m.deals, _ = m.deals.HandleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stageselector.SelectMsg:
		var cmd tea.Cmd
		m, cmd = m.applySelection(msg.Next)
		return m, cmd

	case loadedMsg:
		if msg.seq != m.loadSeq {
			log.Debug(log.CatUI, "Dropping stale load", "seq", msg.seq, "current", m.loadSeq)
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			log.ErrorErr(log.CatDB, "Failed to load deals", msg.err, "selection", msg.sel)
			return m.layout(), nil
		}
		m.err = nil
		m.loaded = true
		m.counts = msg.counts
		m.deals = m.deals.SetDeals(msg.deals)
		return m.layout(), nil

	case movedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatDB, "Failed to move deal", msg.err, "deal", msg.title, "to", msg.to)
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show("Move failed: "+msg.err.Error(), toaster.StyleError)
			return m, cmd
		}
		var toastCmd, loadCmd tea.Cmd
		m.toast, toastCmd = m.toast.Show(fmt.Sprintf("Moved %s to %s", msg.title, pipeline.Info(msg.to).Label), toaster.StyleSuccess)
		m, loadCmd = m.reloadModel()
		return m, tea.Batch(toastCmd, loadCmd)

	case pubsub.Event[watcher.WatcherEvent]:
		log.Debug(log.CatWatcher, "Database changed, reloading", "path", msg.Payload.Path)
		m.svc.Invalidate(context.Background())
		var cmd tea.Cmd
		m, cmd = m.reloadModel()
		return m, tea.Batch(cmd, pubsub.ListenCmd(m.watcherCtx, m.watcherCh))

	case colorpicker.SelectMsg:
		m.showPicker = false
		if err := styles.ApplyStageColors(map[string]string{msg.Stage.String(): msg.Hex}); err != nil {
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show(err.Error(), toaster.StyleError)
			return m, cmd
		}
		return m, m.saveColorCmd(msg.Stage, msg.Hex)

	case colorpicker.ResetMsg:
		m.showPicker = false
		styles.ResetStageColor(msg.Stage)
		return m, m.saveColorCmd(msg.Stage, "")

	case colorpicker.CancelMsg:
		m.showPicker = false
		return m, nil

	case colorSavedMsg:
		var cmd tea.Cmd
		label := pipeline.Info(msg.stage).Label
		switch {
		case msg.err != nil:
			log.ErrorErr(log.CatConfig, "Failed to save stage color", msg.err, "stage", msg.stage, "path", m.configPath)
			m.toast, cmd = m.toast.Show("Color not saved: "+msg.err.Error(), toaster.StyleError)
		case msg.hex == "":
			m.toast, cmd = m.toast.Show(label+" color reset", toaster.StyleSuccess)
		default:
			m.toast, cmd = m.toast.Show(label+" color set to "+msg.hex, toaster.StyleSuccess)
		}
		return m, cmd

	case log.LogEvent:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd

	case toaster.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil
	}

	// Cursor blink and similar messages belong to the picker's input.
	if m.showPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debug && msg.String() == "ctrl+x" {
		m.logs = m.logs.Toggle()
		return m, nil
	}
	if m.logs.Visible() {
		if key.Matches(msg, m.keys.Escape) {
			m.logs = m.logs.Toggle()
			return m, nil
		}
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	if m.showPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.layout(), nil
	case key.Matches(msg, m.keys.Escape):
		m.showDetails = false
		return m.layout(), nil
	case key.Matches(msg, m.keys.Up):
		m.deals = m.deals.MoveUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.deals = m.deals.MoveDown()
		return m, nil
	case key.Matches(msg, m.keys.Details):
		if _, ok := m.deals.Selected(); ok {
			m.showDetails = !m.showDetails
		}
		return m.layout(), nil
	case key.Matches(msg, m.keys.Refresh):
		m.svc.Invalidate(context.Background())
		return m.reload()
	case key.Matches(msg, m.keys.Advance):
		return m, m.moveSelected(+1)
	case key.Matches(msg, m.keys.MoveBack):
		return m, m.moveSelected(-1)
	case key.Matches(msg, m.keys.Color):
		s, ok := m.selection.Stage()
		if !ok {
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show("Select a stage to change its color", toaster.StyleError)
			return m, cmd
		}
		m.picker = m.picker.Open(s, styles.StageColor(s).Dark)
		m.showPicker = true
		return m, nil
	case key.Matches(msg, m.keys.Yank):
		d, ok := m.deals.Selected()
		if !ok {
			return m, nil
		}
		var cmd tea.Cmd
		if err := writeClipboard(d.ID); err != nil {
			log.ErrorErr(log.CatUI, "clipboard write failed", err)
			m.toast, cmd = m.toast.Show("Clipboard unavailable", toaster.StyleError)
			return m, cmd
		}
		m.toast, cmd = m.toast.Show("Copied "+d.ID, toaster.StyleSuccess)
		return m, cmd
	}

	next, cmd, _ := m.runSelector(func(p stageselector.Props) tea.Cmd {
		return stageselector.HandleKey(p, msg, m.keys.StageKeys)
	})
	return next, cmd
}

// moveSelected moves the deal under the cursor by delta stages. Moving past
// either end of the pipeline does nothing.
func (m Model) moveSelected(delta int) tea.Cmd {
	if !m.flags.Enabled(flags.FlagDealMove) {
		return nil
	}
	d, ok := m.deals.Selected()
	if !ok {
		return nil
	}
	stages := pipeline.Stages()
	idx := d.Stage.Index() + delta
	if idx < 0 || idx >= len(stages) {
		return nil
	}
	to := stages[idx]
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return movedMsg{title: d.Title, to: to, err: svc.Move(ctx, d.ID, to)}
	}
}

// saveColorCmd writes the stage color to the config file, or clears it
// when hex is empty.
func (m Model) saveColorCmd(stage pipeline.Stage, hex string) tea.Cmd {
	path := m.configPath
	return func() tea.Msg {
		if path == "" {
			return colorSavedMsg{stage: stage, hex: hex}
		}
		var err error
		if hex == "" {
			err = config.ClearStageColor(path, stage)
		} else {
			err = config.SaveStageColor(path, stage, hex)
		}
		return colorSavedMsg{stage: stage, hex: hex, err: err}
	}
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	return m.reloadModel()
}

func (m Model) reloadModel() (Model, tea.Cmd) {
	m.loadSeq++
	return m, m.loadCmd(m.loadSeq, m.selection)
}

func (m Model) loadCmd(seq int, sel pipeline.Selection) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		counts, deals, err := svc.Snapshot(ctx, sel)
		return loadedMsg{seq: seq, sel: sel, counts: counts, deals: deals, err: err}
	}
}

func (m Model) newRenderer() *markdown.Renderer {
	width := max(m.width-4, 20)
	r, err := markdown.New(width, m.cfg.UI.MarkdownStyle)
	if err != nil {
		log.ErrorErr(log.CatUI, "Markdown renderer unavailable", err)
		return nil
	}
	return r
}

// layout sizes the deal list for the rows the rest of the view takes. It
// runs whenever one of the inputs of fixedRows or showDetails changes.
func (m Model) layout() Model {
	m.deals = m.deals.SetSize(m.width, m.listHeight())
	return m
}

// fixedRows counts the view lines outside the deal list and details panel.
func (m Model) fixedRows() int {
	// title, selector, blank, help
	fixed := 4
	if m.cfg.UI.ShowStatusBar {
		fixed++
	}
	if m.help.ShowAll {
		rows := 0
		for _, group := range m.keys.FullHelp() {
			rows = max(rows, len(group))
		}
		fixed += rows - 1
	}
	if m.err != nil {
		fixed++
	}
	return fixed
}

// listHeight is the height left for the deal list after the fixed rows.
// With details open the list gets half of it.
func (m Model) listHeight() int {
	free := m.height - m.fixedRows()
	if m.showDetails {
		return max(free/2, 3)
	}
	return max(free, 3)
}

// detailsHeight is what is left for the details panel, borders included.
func (m Model) detailsHeight() int {
	return max(m.height-m.fixedRows()-m.listHeight(), 3)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.logs.Visible() {
		return zone.Scan(m.logs.View())
	}

	var b strings.Builder
	b.WriteString(m.titleLine())
	b.WriteString("\n")
	b.WriteString(stageselector.Render(m.selectorProps()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	if !m.loaded && m.err == nil {
		b.WriteString(styles.DealEmptyStyle.Render("Loading deals…"))
	} else {
		b.WriteString(m.deals.View())
	}

	if m.showDetails {
		if d, ok := m.deals.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(m.detailsView(d))
		}
	}

	if m.cfg.UI.ShowStatusBar {
		b.WriteString("\n")
		b.WriteString(m.statusBar())
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	view := b.String()
	if m.showPicker {
		view = m.picker.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) titleLine() string {
	filter := "all deals"
	if s, ok := m.selection.Stage(); ok {
		filter = styles.StageLabelStyle(styles.StageColor(s)).Render(pipeline.Info(s).Label)
	}
	return lipgloss.NewStyle().Bold(true).Render("Pipeline") + styles.HelpSectionStyle.Render("  showing ") + filter
}

func (m Model) detailsView(d pipeline.Deal) string {
	var body strings.Builder
	fmt.Fprintf(&body, "%s · %s · %s\n", d.Company, pipeline.FormatAmount(d.Amount), pipeline.Info(d.Stage).Label)
	if !d.UpdatedAt.IsZero() {
		fmt.Fprintf(&body, "Updated %s\n", d.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	if strings.TrimSpace(d.Notes) != "" {
		body.WriteString("\n")
		body.WriteString(m.md.RenderOrPlain(d.Notes, max(m.width-4, 20)))
	}
	lines := strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
	if limit := m.detailsHeight() - 2; len(lines) > limit {
		lines = lines[:limit]
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return styles.RenderPanel(strings.Join(lines, "\n"), d.Title, width, true)
}

func (m Model) statusBar() string {
	left := fmt.Sprintf("%d deals", m.counts.Total())
	if m.watcherHandle != nil {
		left += " · auto-refresh"
	}
	if t := m.toast.View(); t != "" {
		left += "  " + t
	}
	return styles.StatusBarStyle.Render(left)
}

// Close stops the watcher and the log subscription. Safe to call more
// than once.
func (m *Model) Close() error {
	if m.logsCancel != nil {
		m.logsCancel()
	}
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		err := m.watcherHandle.Stop()
		m.watcherHandle = nil
		return err
	}
	return nil
}
