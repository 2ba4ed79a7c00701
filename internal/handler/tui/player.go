package tui

import (
	"context"
	"fmt"
	"strings"

	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/handler/server"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// Messages are tagged with the activation that produced them; a message from
// a torn-down player is dropped.
type catalogLoadedMsg struct {
	activation int
	catalog    domain.Catalog
}
type playerEventMsg struct {
	activation int
	state      domain.PlayerState
}
type playerEventsClosedMsg struct{ activation int }

const playerEventBuffer = 16

// PlayerModel owns the catalog and the selection for one activation. Both are
// only touched from Update.
type PlayerModel struct {
	parent     *AppModel
	activation int

	catalog   domain.Catalog
	selection domain.SelectionState
	loading   bool
	lastEvent string

	spinner spinner.Model

	events      <-chan domain.PlayerState
	unsubscribe func()
	ctx         context.Context
	cancel      context.CancelFunc
	opened      bool
}

func NewPlayerModel(parent *AppModel, activation int) *PlayerModel {
	ctx, cancel := context.WithCancel(parent.appContext)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusMessageStyle

	return &PlayerModel{
		parent:     parent,
		activation: activation,
		loading:    true,
		spinner:    sp,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (m *PlayerModel) Init() tea.Cmd {
	m.events, m.unsubscribe = m.parent.deps.PlayerEvents.Subscribe(playerEventBuffer)
	m.publish()

	return tea.Batch(m.spinner.Tick, m.loadCatalogCmd(), m.waitForPlayerEvent())
}

// Teardown cancels a pending fetch and drops the player subscription.
func (m *PlayerModel) Teardown() {
	m.cancel()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.parent.deps.Selection.SetSelection(server.SelectionSnapshot{Status: server.StatusLoading})
}

func (m *PlayerModel) loadCatalogCmd() tea.Cmd {
	uc := m.parent.deps.PlaybackUseCase
	ctx := m.ctx
	activation := m.activation
	return func() tea.Msg {
		return catalogLoadedMsg{activation: activation, catalog: uc.LoadCatalog(ctx)}
	}
}

func (m *PlayerModel) waitForPlayerEvent() tea.Cmd {
	ch := m.events
	activation := m.activation
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return playerEventsClosedMsg{activation: activation}
		}
		return playerEventMsg{activation: activation, state: state}
	}
}

func (m *PlayerModel) publish() {
	var catalog domain.Catalog
	if !m.loading {
		catalog = m.catalog
		if catalog == nil {
			catalog = domain.Catalog{}
		}
	}
	m.parent.deps.Selection.SetSelection(server.NewSelectionSnapshot(catalog, m.selection))
}

func (m *PlayerModel) openPlayer() {
	if err := m.parent.deps.OpenURL(m.parent.deps.PlayerURL); err != nil {
		m.parent.logger.Error("Could not open the player page", err)
		m.lastEvent = "Open " + m.parent.deps.PlayerURL + " in your browser"
	}
}

func (m *PlayerModel) canReselect() bool {
	return !m.loading && len(m.catalog.Playable()) > 0
}

func (m *PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		if msg.activation != m.activation {
			return m, nil
		}
		m.loading = false
		m.catalog = msg.catalog
		if len(m.catalog) > 0 {
			m.selection = m.parent.deps.PlaybackUseCase.InitialSelection(m.catalog)
		}
		m.publish()
		if m.selection.HasSelection() && !m.opened {
			m.opened = true
			m.openPlayer()
		}
		return m, nil

	case playerEventMsg:
		if msg.activation != m.activation {
			return m, nil
		}
		m.lastEvent = "Player " + msg.state.String()
		next, changed := m.parent.deps.PlaybackUseCase.HandlePlayerState(m.catalog, m.selection, msg.state)
		if changed {
			m.selection = next
			m.publish()
		}
		return m, m.waitForPlayerEvent()

	case playerEventsClosedMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, m.parent.send(quitMsg{})
		case "r", "enter", " ":
			if !m.canReselect() {
				return m, nil
			}
			if next, ok := m.parent.deps.PlaybackUseCase.Reselect(m.catalog, m.selection); ok {
				m.selection = next
				m.publish()
			}
		case "o":
			m.openPlayer()
		case "s":
			if err := m.parent.deps.Sessions.SignOut(); err != nil {
				m.parent.logger.Error("Sign-out failed", err)
			}
		}
	}

	return m, nil
}

func (m *PlayerModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Daily Dose of Motivation"))
	b.WriteString("\n")
	if s := m.parent.session; s != nil {
		b.WriteString(promptStyle.Render("Welcome, " + s.Email))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading videos...")
	case len(m.catalog) == 0:
		b.WriteString("No videos available")
	case !m.selection.HasSelection():
		b.WriteString("No video selected")
	default:
		m.writeSelection(&b)
	}
	b.WriteString("\n\n")

	if m.lastEvent != "" {
		b.WriteString(statusMessageStyle.Render(m.lastEvent))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(promptStyle.Render("Wait for it to load!"))
	} else if m.canReselect() {
		b.WriteString(promptStyle.Render("r: random video • o: open player • s: sign out • q: quit"))
	} else {
		b.WriteString(promptStyle.Render("s: sign out • q: quit"))
	}

	return docStyle.Render(b.String())
}

func (m *PlayerModel) writeSelection(b *strings.Builder) {
	video, _ := m.catalog.Find(m.selection.Current)

	b.WriteString(videoTitleStyle.Render(video.Title))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(video.ChannelTitle))
	if !video.PublishedAt.IsZero() {
		b.WriteString(detailStyle.Render("published " + humanize.Time(video.PublishedAt)))
	}
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(video.WatchURL()))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(fmt.Sprintf("%d of %d playable videos • replay %d", m.position(), len(m.catalog.Playable()), m.selection.ReplayKey)))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render("Player page: " + urlStyle.Render(m.parent.deps.PlayerURL)))
}

func (m *PlayerModel) position() int {
	for i, v := range m.catalog.Playable() {
		if v.ID == m.selection.Current {
			return i + 1
		}
	}
	return 0
}
