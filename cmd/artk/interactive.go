package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	artoolkit "github.com/AR-js-org/artoolkit5-go"
	"github.com/AR-js-org/artoolkit5-go/assets"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectAction modelState = iota
	stateInputLocator
	stateShowResult
)

type action struct {
	name     string
	prompt   string // empty means no input needed
	needsCam bool
}

var actionList = []action{
	{name: "Load camera", prompt: "camera parameter locator"},
	{name: "Add square marker", prompt: "pattern locator", needsCam: true},
	{name: "Add multi-marker", prompt: "configuration locator", needsCam: true},
	{name: "Add NFT marker", prompt: "base locator (without .fset/.iset/.fset3)", needsCam: true},
	{name: "Show constants"},
	{name: "Show entry points"},
}

type interactiveModel struct {
	err          error
	ark          *artoolkit.ARToolKit
	loader       *assets.Loader
	filename     string
	result       string
	input        textinput.Model
	selected     int
	controllerID int
	state        modelState
}

func newInteractiveModel(filename string) *interactiveModel {
	return &interactiveModel{
		filename:     filename,
		controllerID: -1,
		state:        stateSelectAction,
	}
}

type loadedMsg struct {
	err error
	ark *artoolkit.ARToolKit
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *interactiveModel) loadModule() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	ark, err := artoolkit.New(ctx, data, artoolkit.WithLogger(zap.NewNop()))
	if err != nil {
		return loadedMsg{err: err}
	}

	return loadedMsg{ark: ark}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateInputLocator && msg.String() == "q" {
				break // locators can contain 'q'
			}
			if m.ark != nil {
				m.ark.Close(context.Background())
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectAction && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectAction && m.selected < len(actionList)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectAction:
				act := actionList[m.selected]
				if act.needsCam && m.controllerID < 0 {
					m.result = ""
					m.err = fmt.Errorf("load a camera first")
					m.state = stateShowResult
					break
				}
				if act.prompt == "" {
					return m, m.runAction("")
				}
				ti := textinput.New()
				ti.Placeholder = act.prompt
				ti.Prompt = "> "
				ti.Width = 60
				ti.Focus()
				m.input = ti
				m.state = stateInputLocator

			case stateInputLocator:
				return m, m.runAction(m.input.Value())

			case stateShowResult:
				m.state = stateSelectAction
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputLocator:
				m.state = stateSelectAction
			case stateShowResult:
				m.state = stateSelectAction
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ark = msg.ark
		m.loader = assets.NewLoader(msg.ark)

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputLocator {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) runAction(locator string) tea.Cmd {
	act := actionList[m.selected]
	return func() tea.Msg {
		ctx := context.Background()

		switch act.name {
		case "Load camera":
			cameraID, err := m.loader.LoadCamera(ctx, assets.FromURL(locator))
			if err != nil {
				return callResultMsg{err: err}
			}
			if m.controllerID < 0 {
				id, err := m.ark.Setup(ctx, 640, 480, cameraID)
				if err != nil {
					return callResultMsg{err: err}
				}
				m.controllerID = id
			}
			return callResultMsg{result: fmt.Sprintf("camera handle %d, controller %d", cameraID, m.controllerID)}

		case "Add square marker":
			id, err := m.loader.AddMarker(ctx, m.controllerID, assets.FromURL(locator))
			if err != nil {
				return callResultMsg{err: err}
			}
			return callResultMsg{result: fmt.Sprintf("marker handle %d", id)}

		case "Add multi-marker":
			id, count, err := m.loader.AddMultiMarker(ctx, m.controllerID, locator)
			if err != nil {
				return callResultMsg{err: err}
			}
			return callResultMsg{result: fmt.Sprintf("multi-marker handle %d, %d markers", id, count)}

		case "Add NFT marker":
			id, err := m.loader.AddNFTMarker(ctx, m.controllerID, locator)
			if err != nil {
				return callResultMsg{err: err}
			}
			return callResultMsg{result: fmt.Sprintf("NFT marker handle %d", id)}

		case "Show constants":
			consts := m.ark.Constants()
			names := make([]string, 0, len(consts))
			for name := range consts {
				names = append(names, name)
			}
			sort.Strings(names)
			var b strings.Builder
			for _, name := range names {
				fmt.Fprintf(&b, "%s = %d\n", name, consts[name])
			}
			if b.Len() == 0 {
				b.WriteString("(none exported)")
			}
			return callResultMsg{result: b.String()}

		case "Show entry points":
			funcs := m.ark.BoundFuncs()
			sort.Strings(funcs)
			return callResultMsg{result: strings.Join(funcs, "\n")}
		}

		return callResultMsg{err: fmt.Errorf("unknown action")}
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.ark == nil {
		return "Loading native module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("ARToolKit Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	if v := m.ark.Version(); v != "" {
		b.WriteString(dimStyle.Render(" (native " + v + ")"))
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectAction:
		for i, act := range actionList {
			line := act.name
			if act.needsCam && m.controllerID < 0 {
				line += dimStyle.Render("  (needs camera)")
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + act.name))
				if act.needsCam && m.controllerID < 0 {
					b.WriteString(dimStyle.Render("  (needs camera)"))
				}
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateInputLocator:
		b.WriteString(actionStyle.Render(actionList[m.selected].name))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter run • esc back"))

	case stateShowResult:
		b.WriteString(actionStyle.Render(actionList[m.selected].name))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
