package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tripboard/internal/daycache"
	"github.com/julianstephens/tripboard/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	session := daycache.NewSession(ctx.Provider)
	if err := session.SetViewDate(""); err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	return nil
}
