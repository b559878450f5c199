package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/classfile-runtime/classfile"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	methodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectMethod modelState = iota
	stateShowCode
)

type browserModel struct {
	err      error
	filename string
	class    *classfile.ClassFile
	view     viewport.Model
	selected int
	width    int
	height   int
	state    modelState
}

type loadedMsg struct {
	err   error
	class *classfile.ClassFile
}

func newBrowserModel(filename string) *browserModel {
	return &browserModel{
		filename: filename,
		view:     viewport.New(80, 20),
		state:    stateSelectMethod,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadClass
}

func (m *browserModel) loadClass() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	cf, err := classfile.Parse(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{class: cf}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectMethod && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectMethod && m.class != nil && m.selected < len(m.class.Methods)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectMethod && m.class != nil {
				m.view.SetContent(m.renderMethod(m.class.Methods[m.selected]))
				m.view.GotoTop()
				m.state = stateShowCode
			}

		case "esc":
			if m.state == stateShowCode {
				m.state = stateSelectMethod
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = msg.Height - 4

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.class = msg.class
	}

	if m.state == stateShowCode {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.class == nil {
		return "Loading class..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Class Browser"))
	b.WriteString(" ")
	b.WriteString(m.class.ThisClass.Name.Value)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectMethod:
		b.WriteString("Select a method:\n\n")
		for i, method := range m.class.Methods {
			line := methodStyle.Render(method.Name.Value) + typeStyle.Render(method.Descriptor.Value)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter disassemble • q quit"))

	case stateShowCode:
		b.WriteString(m.view.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func (m *browserModel) renderMethod(method classfile.Method) string {
	var b strings.Builder
	b.WriteString(methodStyle.Render(method.Name.Value))
	b.WriteString(typeStyle.Render(method.Descriptor.Value))
	b.WriteString("\n\n")

	code := findCode(method)
	if code == nil {
		b.WriteString(helpStyle.Render("no Code attribute (abstract or native)"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("stack=%d locals=%d\n\n", code.MaxStack, code.MaxLocals))
	for _, in := range code.Instructions {
		b.WriteString(offsetStyle.Render(fmt.Sprintf("%5d: ", in.PC)))
		b.WriteString(in.String())
		b.WriteString("\n")
	}
	if len(code.Exceptions) > 0 {
		b.WriteString("\nException table:\n")
		for _, h := range code.Exceptions {
			b.WriteString(fmt.Sprintf("  %d..%d -> %d catch %s\n",
				h.StartPC, h.EndPC, h.HandlerPC, catchName(m.class.Pool, h.CatchType)))
		}
	}
	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
