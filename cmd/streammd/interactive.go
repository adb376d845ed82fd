package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/streammd"
)

type viewerConfig struct {
	target   string
	tick     time.Duration
	minSpeed int
	maxSpeed int
	repair   bool
}

type frameMsg streammd.Frame

type viewerKeys struct {
	Quit    key.Binding
	Pause   key.Binding
	Finish  key.Binding
	Restart key.Binding
	Repair  key.Binding
	Faster  key.Binding
	Slower  key.Binding
}

func defaultViewerKeys() viewerKeys {
	return viewerKeys{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Finish:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "reveal all")),
		Restart: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "restart")),
		Repair:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repair")),
		Faster:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
	}
}

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	statusOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type viewerModel struct {
	cfg      viewerConfig
	session  *streammd.Session
	frames   chan streammd.Frame
	frame    streammd.Frame
	renderer *streammd.Renderer
	viewport viewport.Model
	keys     viewerKeys
	paused   bool
	repairOn bool
	minSpeed int
	maxSpeed int
	ready    bool
	err      error
}

// runInteractive drives a Session from a bubbletea program: the session
// publishes frames into a latest-value mailbox and the model renders
// whatever frame is current when the UI catches up.
func runInteractive(cfg viewerConfig) error {
	frames := make(chan streammd.Frame, 1)
	sink := streammd.FrameFunc(func(fr streammd.Frame) error {
		for {
			select {
			case frames <- fr:
				return nil
			default:
			}
			select {
			case <-frames:
			default:
			}
		}
	})
	session := streammd.NewSession(sink,
		streammd.WithRepair(cfg.repair),
		streammd.WithSpeedRange(cfg.minSpeed, cfg.maxSpeed),
		streammd.WithTickInterval(cfg.tick),
	)
	session.SetTarget(cfg.target)
	m := viewerModel{
		cfg:      cfg,
		session:  session,
		frames:   frames,
		keys:     defaultViewerKeys(),
		repairOn: cfg.repair,
		minSpeed: cfg.minSpeed,
		maxSpeed: cfg.maxSpeed,
	}
	session.Start()
	defer session.Stop()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m viewerModel) Init() tea.Cmd {
	return m.listenFrames()
}

func (m viewerModel) listenFrames() tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-m.frames)
	}
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)
	case frameMsg:
		m.frame = streammd.Frame(msg)
		m.refreshContent()
		return m, m.listenFrames()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewerModel) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	height := msg.Height - 1 // status bar
	if height < 1 {
		height = 1
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, height)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = height
	}
	renderer, err := streammd.NewRenderer(msg.Width)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.renderer = renderer
	m.refreshContent()
	return m, nil
}

func (m *viewerModel) refreshContent() {
	if !m.ready || m.renderer == nil {
		return
	}
	text, err := m.renderer.RenderFrame(m.frame.Processed)
	if err != nil {
		text = m.frame.Processed
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(text)
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m viewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		if m.paused {
			m.session.Start()
		} else {
			m.session.Stop()
		}
		m.paused = !m.paused
		return m, nil
	case key.Matches(msg, m.keys.Finish):
		m.session.SetStreaming(false)
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		m.session.SetStreaming(true)
		m.session.SetTarget("")
		m.session.SetTarget(m.cfg.target)
		if m.paused {
			m.session.Start()
			m.paused = false
		}
		return m, nil
	case key.Matches(msg, m.keys.Repair):
		m.repairOn = !m.repairOn
		m.session.SetRepair(m.repairOn)
		return m, nil
	case key.Matches(msg, m.keys.Faster):
		m.minSpeed++
		m.maxSpeed++
		m.session.SetSpeedRange(m.minSpeed, m.maxSpeed)
		return m, nil
	case key.Matches(msg, m.keys.Slower):
		if m.minSpeed > 1 {
			m.minSpeed--
			m.maxSpeed--
			m.session.SetSpeedRange(m.minSpeed, m.maxSpeed)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewerModel) View() string {
	if !m.ready {
		return "loading…"
	}
	return m.viewport.View() + "\n" + m.statusBar()
}

func (m viewerModel) statusBar() string {
	percent := 100
	if len(m.cfg.target) > 0 {
		percent = len(m.frame.Display) * 100 / len(m.cfg.target)
	}
	state := fmt.Sprintf("streaming %d%%", percent)
	style := statusBarStyle
	switch {
	case m.paused:
		state = fmt.Sprintf("paused %d%%", percent)
		style = statusOffStyle
	case m.frame.Done:
		state = "done"
	}
	repair := "repair on"
	if !m.repairOn {
		repair = "repair off"
	}
	left := style.Render(state)
	mid := statusOffStyle.Render(fmt.Sprintf("%s · %d-%d ch/tick", repair, m.minSpeed, m.maxSpeed))
	help := helpStyle.Render(" space pause · f reveal · s restart · r repair · +/- speed · q quit")
	return left + mid + help
}
