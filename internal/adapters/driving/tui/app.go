package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/views/highlights"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/views/impact"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/views/topics"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView       *menu.View
	topicsView     *topics.View
	highlightsView *highlights.View
	impactView     *impact.View
	documentsView  *documents.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         keymap.DefaultKeyMap(),
		menuView:       menu.NewView(s),
		topicsView:     topics.NewView(s, ports.Topic),
		highlightsView: highlights.NewView(s, ports.Topic, ports.Highlight),
		impactView:     impact.NewView(s, ports.Topic),
		documentsView:  documents.NewView(s, ports.Library),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("pdfindex"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewTopics:
			return a, a.topicsView.Init()
		case messages.ViewDocuments:
			return a, a.documentsView.Init()
		case messages.ViewMenu, messages.ViewHelp, messages.ViewHighlights, messages.ViewImpact:
		}
		return a, nil

	case messages.TopicsLoaded:
		a.topicsView, cmd = a.topicsView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.TopicSelected:
		a.currentView = messages.ViewHighlights
		return a, a.highlightsView.ShowTopic(msg.Topic)

	case messages.DocumentSelected:
		a.currentView = messages.ViewHighlights
		return a, a.highlightsView.ShowDocument(msg.Document)

	case messages.HighlightsLoaded:
		a.highlightsView, cmd = a.highlightsView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.DocumentsLoaded:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.DeleteRequested:
		a.currentView = messages.ViewImpact
		return a, a.impactView.Analyze(msg.Topic)

	case messages.ImpactLoaded:
		a.impactView, cmd = a.impactView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.TopicDeleted:
		a.impactView, cmd = a.impactView.Update(msg)
		a.err = msg.Err
		if msg.Err != nil {
			return a, cmd
		}
		a.currentView = messages.ViewTopics
		return a, a.topicsView.Init()

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.updateCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewTopics:
		a.topicsView, cmd = a.topicsView.Update(msg)
	case messages.ViewHighlights:
		a.highlightsView, cmd = a.highlightsView.Update(msg)
	case messages.ViewImpact:
		a.impactView, cmd = a.impactView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && (k.Type == tea.KeyEsc || k.String() == "q") {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewTopics:
		return a.topicsView.View()
	case messages.ViewHighlights:
		return a.highlightsView.View()
	case messages.ViewImpact:
		return a.impactView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// viewHelp renders every keybinding group from the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error reported by a service call.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.topicsView.SetDimensions(width, height)
	a.highlightsView.SetDimensions(width, height)
	a.impactView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
}
