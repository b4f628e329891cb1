package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seqeyes/seqcheck/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenRunning
	screenResult
	screenSuites
)

type menuItem struct {
	title string
	desc  string
	kind  domain.RunKind // empty for non-run entries
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps

	scr        screen
	menu       list.Model
	activeName string

	workspaceFound bool
	workspaceRoot  string

	running   bool
	runnerCh  chan runnerDoneMsg
	resultTxt string
	toast     string

	suiteRefs []domain.SuiteRef
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{"Visual", "Capture snapshots and compare against baselines", domain.RunVisual},
		menuItem{"Perf", "Measure zoom timing per sequence", domain.RunPerf},
		menuItem{"Interact", "Run the zoom/pan interaction test", domain.RunInteract},
		menuItem{"Baselines", "Regenerate baseline snapshots", domain.RunBaselines},
		menuItem{title: "Run all", desc: "Visual, perf and interaction batches in sequence"},
		menuItem{title: "Suites", desc: "List target suites in the workspace"},
		menuItem{title: "Init workspace", desc: "Create seqcheck.yaml and the workspace layout here"},
		menuItem{title: "Quit", desc: "Exit seqcheck"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "seqcheck"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	m := model{
		theme: t,
		deps:  deps,
		scr:   screenHome,
		menu:  l,
	}

	wd, err := os.Getwd()
	if err == nil && deps.WorkspaceLocator != nil {
		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr == nil {
			m.workspaceFound = true
			m.workspaceRoot = root
		}
	}

	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.menu.SetSize(w-4, h-10)
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if msg.err != nil && !msg.found {
			m.toast = userMessage(msg.err)
		}
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace initialized"
		return m, cmdRefreshWorkspace(m.deps)

	case suitesLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.suiteRefs = msg.refs
		m.scr = screenSuites
		return m, nil

	case runnerDoneMsg:
		m.running = false
		m.runnerCh = nil
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			m.scr = screenHome
			return m, nil
		}
		m.resultTxt = msg.summary
		m.scr = screenResult
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.running {
				// Batch keeps running in its goroutine; quitting still drops it.
				return m, tea.Quit
			}
			if m.scr == screenHome {
				return m, tea.Quit
			}
			m.scr = screenHome
			m.activeName = ""
			return m, nil

		case "enter":
			if m.scr == screenHome && !m.running {
				it, ok := m.menu.SelectedItem().(menuItem)
				if !ok {
					return m, nil
				}
				return m.dispatch(it)
			}

		case "esc", "b":
			if m.scr != screenHome && !m.running {
				m.scr = screenHome
				m.activeName = ""
				return m, nil
			}
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) dispatch(it menuItem) (tea.Model, tea.Cmd) {
	switch {
	case strings.EqualFold(it.title, "Quit"):
		return m, tea.Quit

	case strings.EqualFold(it.title, "Init workspace"):
		root := m.workspaceRoot
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				m.toast = "Unexpected error (see logs)"
				return m, nil
			}
			root = wd
		}
		return m, cmdInitWorkspaceHere(m.deps, root)

	case strings.EqualFold(it.title, "Suites"):
		if !m.workspaceFound {
			m.toast = "Workspace not found"
			return m, nil
		}
		return m, cmdLoadSuites(m.workspaceRoot)

	case strings.EqualFold(it.title, "Run all"):
		if !m.workspaceFound {
			m.toast = "Workspace not found"
			return m, nil
		}
		m.running = true
		m.toast = ""
		m.activeName = it.title
		m.scr = screenRunning

		ch, listen := startRunAllAsync(m.workspaceRoot, m.deps.Logger, m.deps.Debug)
		m.runnerCh = ch
		return m, listen

	case it.kind != "":
		if !m.workspaceFound {
			m.toast = "Workspace not found"
			return m, nil
		}
		m.running = true
		m.toast = ""
		m.activeName = it.title
		m.scr = screenRunning

		ch, listen := startRunAsync(it.kind, m.workspaceRoot, m.deps.Logger, m.deps.Debug)
		m.runnerCh = ch
		return m, listen
	}

	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("seqcheck") + "\n" +
		m.theme.Subtitle.Render("Visual and performance regression harness for SeqEyes") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nSelect \"Init workspace\" or run `seqcheck init`.",
		)
	}

	toast := ""
	if m.toast != "" {
		toast = "\n" + m.theme.Help.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter run • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help)

	case screenRunning:
		card := m.theme.Card.Render(
			m.theme.Title.Render(m.activeName) + "\n\n" +
				"Running… the viewer may open and close windows.\n\n" +
				m.theme.Help.Render("q quit"),
		)
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card)

	case screenResult:
		card := m.theme.Card.Render(
			m.theme.Title.Render(m.activeName) + "\n\n" +
				m.resultTxt + "\n\n" +
				m.theme.Help.Render("esc/b back • q home"),
		)
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card)

	case screenSuites:
		var b strings.Builder
		b.WriteString(m.theme.Title.Render("Suites"))
		b.WriteString("\n\n")
		if len(m.suiteRefs) == 0 {
			b.WriteString("(no suites found)\n")
		}
		for _, r := range m.suiteRefs {
			rel, _ := filepath.Rel(m.workspaceRoot, r.Path)
			b.WriteString("  - ")
			b.WriteString(r.Name)
			b.WriteString("  (")
			b.WriteString(rel)
			b.WriteString(")\n")
		}
		b.WriteString("\n")
		b.WriteString(m.theme.Help.Render("esc/b back • q home"))
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(b.String()))

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
