// Package replui provides the styling and entry-screen pieces of the
// interactive `d` REPL: a styled status line and a one-shot splash
// screen. The REPL is deliberately line-based rather than a full
// animated table; lipgloss keeps the output consistent and bubbletea
// handles the terminal setup for the splash.
package replui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// Header renders a one-line styled status bar: match scores, the
// dealing seat, and the round phase.
func Header(scores [2]int, dealer uint8, phase string) string {
	title := titleStyle.Render("MANILLE")
	score := scoreStyle.Render(fmt.Sprintf("Team A %d — Team B %d", scores[0], scores[1]))
	meta := dimStyle.Render(fmt.Sprintf("dealer=%d phase=%s", dealer, phase))
	return fmt.Sprintf("%s  %s  %s", title, score, meta)
}

// welcome is a one-shot bubbletea model: a styled splash screen that
// exits on the first keypress.
type welcome struct{}

func (welcome) Init() tea.Cmd { return nil }

func (w welcome) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return w, tea.Quit
	}
	return w, nil
}

func (welcome) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MANILLE") + "\n\n")
	b.WriteString("A 32-card, four-player, two-team trick-taking game.\n")
	b.WriteString(dimStyle.Render("Press any key to begin...") + "\n")
	return b.String()
}

// ShowWelcome runs the splash screen, blocking until the user presses
// a key.
func ShowWelcome() error {
	_, err := tea.NewProgram(welcome{}).Run()
	return err
}
