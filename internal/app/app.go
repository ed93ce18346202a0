// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/govalues/decimal"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/currencybox/internal/config"
	"github.com/zjrosen/currencybox/internal/keys"
	"github.com/zjrosen/currencybox/internal/log"
	"github.com/zjrosen/currencybox/internal/numedit"
	"github.com/zjrosen/currencybox/internal/pubsub"
	"github.com/zjrosen/currencybox/internal/ui/numberbox"
	"github.com/zjrosen/currencybox/internal/ui/overlay"
	"github.com/zjrosen/currencybox/internal/ui/styles"
	"github.com/zjrosen/currencybox/internal/watcher"
)

const (
	boxWidth    = 24
	panelIndent = 2
)

// Options configures the application model.
type Options struct {
	Config     config.Config
	ConfigPath string // target of ctrl+s and of --watch
	Clipboard  numedit.Clipboard

	// Reload re-reads the configuration after the watched file changed.
	// Watching is off when it is nil.
	Reload func() (config.Config, error)
	Watch  bool
}

// ConfigChangedMsg carries configuration re-read from disk. The running
// editor adopts its editor section; the value is kept.
type ConfigChangedMsg struct {
	Config config.Config
}

type configErrorMsg struct{ err error }

type savedMsg struct {
	path string
	err  error
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	reload     func() (config.Config, error)

	ctrl     *numedit.Controller
	box      numberbox.Model
	panel    *numedit.AddPanel
	panelBox numberbox.Model

	help      help.Model
	notice    string
	noticeErr bool
	lastLog   string
	submitted bool

	width  int
	height int

	// Log listener feeding the status line (nil unless logging is on)
	logCancel   context.CancelFunc
	logListener *log.LogListener

	// Config watcher (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Event]
}

// New creates the application model. An invalid editor configuration is
// returned as an error.
func New(opts Options) (Model, error) {
	ctrlCfg, err := opts.Config.Editor.ControllerConfig()
	if err != nil {
		return Model{}, err
	}
	ctrlCfg.Clipboard = opts.Clipboard

	ctrl, err := numedit.New(ctrlCfg)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		reload:     opts.Reload,
		ctrl:       ctrl,
		box:        numberbox.New(ctrl, numberbox.Config{Label: editorLabel(ctrl), Width: boxWidth}).Focus(),
		help:       help.New(),
	}

	logCtx, logCancel := context.WithCancel(context.Background())
	if l := log.NewListener(logCtx); l != nil {
		m.logListener = l
		m.logCancel = logCancel
	} else {
		logCancel()
	}

	if opts.Watch && opts.Reload != nil && opts.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err == nil {
			if err := w.Start(); err == nil {
				watchCtx, watchCancel := context.WithCancel(context.Background())
				m.watcherHandle = w
				m.watcherCancel = watchCancel
				m.watcherListener = pubsub.NewContinuousListener(watchCtx, w.Broker())
			} else {
				_ = w.Stop()
				log.Warn(log.CatConfig, "config watch disabled", "path", opts.ConfigPath, "error", err)
			}
		}
	}

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Value returns the edited value.
func (m Model) Value() decimal.Decimal { return m.ctrl.Value() }

// Submitted reports whether the program ended with Enter rather than quit.
func (m Model) Submitted() bool { return m.submitted }

// Controller returns the editor's controller.
func (m Model) Controller() *numedit.Controller { return m.ctrl }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case log.LogEvent:
		m.lastLog = logMessage(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case pubsub.Event[watcher.Event]:
		if m.watcherListener == nil {
			return m, nil
		}
		switch msg.Type {
		case pubsub.ConfigChangedEvent:
			log.Debug(log.CatConfig, "config file changed", "path", msg.Payload.Path)
			return m, tea.Batch(m.reloadCmd(), m.watcherListener.Listen())
		case pubsub.WatchErrorEvent:
			m.setNotice(fmt.Sprintf("watch: %v", msg.Payload.Error), true)
		}
		return m, m.watcherListener.Listen()

	case ConfigChangedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case configErrorMsg:
		log.ErrorErr(log.CatConfig, "config reload failed", msg.err)
		m.setNotice(fmt.Sprintf("config: %v", msg.err), true)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "saving settings failed", msg.err, "path", msg.path)
			m.setNotice(fmt.Sprintf("save failed: %v", msg.err), true)
			return m, nil
		}
		log.Info(log.CatConfig, "settings saved", "path", msg.path)
		m.setNotice("saved to "+msg.path, false)
		return m, nil

	case numberbox.PanelOpenedMsg:
		m.panel = msg.Panel
		m.panelBox = numberbox.New(msg.Panel.Child(), numberbox.Config{Width: boxWidth}).Focus()
		return m, nil

	case numberbox.PanelClosedMsg:
		m.panel = nil
		m.setNotice("total "+m.ctrl.Text(), false)
		return m, nil

	case numberbox.SubmitMsg:
		m.submitted = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.box, cmd = m.box.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := keys.Editor

	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit

	case key.Matches(msg, km.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, km.Escape):
		if p := m.ctrl.Panel(); p != nil {
			p.Close()
			m.panel = nil
			m.setNotice("total "+m.ctrl.Text(), false)
		}
		return m, nil

	case key.Matches(msg, km.Save):
		return m, m.saveCmd()

	case key.Matches(msg, km.NextFormat):
		m.cycleFormat()
		return m, nil

	case key.Matches(msg, km.NextMode):
		m.cycleMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.box, cmd = m.box.Update(msg)
	m.noteResult(m.box.LastResult())
	return m, cmd
}

// ============================================================================
// Settings
// ============================================================================

var formatKinds = []numedit.Kind{numedit.KindCurrency, numedit.KindNumber, numedit.KindPercent}

// cycleFormat switches C → N → P keeping the fraction digits.
func (m *Model) cycleFormat() {
	f := m.ctrl.Format()
	next := formatKinds[0]
	for i, k := range formatKinds {
		if k == f.Kind {
			next = formatKinds[(i+1)%len(formatKinds)]
		}
	}
	spec := numedit.FormatSpec{Kind: next, FractionDigits: f.FractionDigits}.String()
	if err := m.ctrl.SetFormat(spec); err != nil {
		m.setNotice(err.Error(), true)
		return
	}
	m.cfg.Editor.Format = spec
	m.box = m.box.SetLabel(editorLabel(m.ctrl))
	m.setNotice("format "+spec, false)
}

var inputModes = []numedit.InputMode{numedit.ModeSimplified, numedit.ModeExtended, numedit.ModeSegmented}

func (m *Model) cycleMode() {
	mode := m.ctrl.InputMode()
	next := inputModes[0]
	for i, im := range inputModes {
		if im == mode {
			next = inputModes[(i+1)%len(inputModes)]
		}
	}
	m.ctrl.SetInputMode(next)
	m.cfg.Editor.InputMode = next.String()
	m.box = m.box.SetLabel(editorLabel(m.ctrl))
	m.setNotice("input mode "+next.String(), false)
}

// applyConfig adopts a reloaded configuration.
func (m *Model) applyConfig(cfg config.Config) {
	ctrlCfg, err := cfg.Editor.ControllerConfig()
	if err == nil {
		err = m.ctrl.Reconfigure(ctrlCfg)
	}
	if err != nil {
		log.ErrorErr(log.CatConfig, "reloaded config rejected", err)
		m.setNotice(fmt.Sprintf("config: %v", err), true)
		return
	}
	m.cfg = cfg
	m.box = m.box.SetLabel(editorLabel(m.ctrl))
	m.setNotice("config reloaded", false)
}

func (m Model) reloadCmd() tea.Cmd {
	reload := m.reload
	if reload == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, err := reload()
		if err != nil {
			return configErrorMsg{err: err}
		}
		return ConfigChangedMsg{Config: cfg}
	}
}

// saveCmd writes the current format, locale, mode and value back to the
// editor section of the config file.
func (m Model) saveCmd() tea.Cmd {
	path := m.configPath
	if path == "" {
		return func() tea.Msg { return savedMsg{err: errors.New("no config file")} }
	}

	e := m.cfg.Editor
	e.Format = m.ctrl.Format().String()
	e.Locale = m.ctrl.Locale().Tag
	if e.Locale == numedit.InvariantLocale.Tag {
		e.Locale = ""
	}
	e.InputMode = m.ctrl.InputMode().String()
	e.Value = m.ctrl.Value().String()

	return func() tea.Msg {
		return savedMsg{path: path, err: config.SaveEditor(path, e)}
	}
}

// ============================================================================
// Status
// ============================================================================

func (m *Model) setNotice(s string, isErr bool) {
	m.notice = s
	m.noticeErr = isErr
}

// noteResult turns recovery branches into a status notice.
func (m *Model) noteResult(res numedit.Result) {
	switch res.Recovery {
	case numedit.RecoveryOverflowClamp:
		m.setNotice("value limit reached", true)
	case numedit.RecoveryBoundsClamp:
		m.setNotice(boundsText(m.ctrl), false)
	case numedit.RecoveryResetToZero:
		m.setNotice("value reset to zero", true)
	case numedit.RecoveryParseIgnored:
		m.setNotice("clipboard does not hold a number", true)
	case numedit.RecoveryMaxLength:
		m.setNotice("maximum length reached", false)
	default:
		if res.Outcome == numedit.Executed {
			m.setNotice("", false)
		}
	}
}

func boundsText(c *numedit.Controller) string {
	var parts []string
	if lo := c.Minimum(); !lo.IsZero() {
		parts = append(parts, "min "+numedit.Display(lo, c.Format(), c.Locale()))
	}
	if hi := c.Maximum(); !hi.IsZero() {
		parts = append(parts, "max "+numedit.Display(hi, c.Format(), c.Locale()))
	}
	return "clamped to " + strings.Join(parts, ", ")
}

// logMessage drops the timestamp from a log line.
func logMessage(entry string) string {
	entry = strings.TrimSpace(entry)
	if _, rest, ok := strings.Cut(entry, " "); ok {
		return rest
	}
	return entry
}

func editorLabel(c *numedit.Controller) string {
	label := fmt.Sprintf("%s · %s · %s", c.Format(), c.Locale().Tag, c.InputMode())
	if c.ReadOnly() {
		label += " · read-only"
	}
	return label
}

// ============================================================================
// View
// ============================================================================

// View implements tea.Model.
func (m Model) View() string {
	box := m.box.View()
	sections := []string{box}

	if m.cfg.UI.ShowStatusBar {
		sections = append(sections, m.renderStatus())
	}
	if m.cfg.UI.ShowHelp {
		sections = append(sections, styles.HelpStyle.Render(m.help.View(keys.Editor)))
	}

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.panel != nil && m.panel.Open() {
		// The add panel pops up under the box, covering the status and help lines.
		view = overlay.Place(overlay.Below(box, panelIndent), m.renderPanel(), view)
	}
	return zone.Scan(view)
}

func (m Model) renderPanel() string {
	sign := styles.PanelSignStyle.Render(m.panel.Sign())
	preview := numedit.Display(m.panel.Preview(), m.ctrl.Format(), m.ctrl.Locale())
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, sign, " ", m.panelBox.View()),
		styles.PanelPreviewStyle.Render("= "+preview),
	)
	return styles.PanelStyle.Render(body)
}

func (m Model) renderStatus() string {
	mode := fmt.Sprintf("%s %s", m.ctrl.InputMode(), m.ctrl.Zone())
	if m.ctrl.CanUndo() {
		mode += " · undo"
	}

	text := m.notice
	switch {
	case text == "":
		text = m.lastLog
	case m.noticeErr:
		text = styles.ErrorStyle.Render(text)
	}
	return styles.StatusBarStyle.Render(strings.TrimSpace(mode + "  " + text))
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.logCancel != nil {
		m.logCancel()
	}
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
