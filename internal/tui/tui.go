// Package tui is the terminal rendition of the adoption dashboard: a
// framework list, stat cards, a sparkline of the selected curve and a
// comparison of every framework's adoption today.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a program over src using the alternate screen.
func NewProgram(ctx context.Context, src adoption.Source, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(src), allOpts...)
}

// Run blocks until the user quits or ctx is cancelled.
func Run(p *Program) error {
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// NotifyReload forwards a reload result to a running program.
func NotifyReload(p *Program, cache *adoption.Cache, err error) {
	msg := MsgReloaded{Err: err}
	if cache != nil {
		msg.Generation = cache.Generation()
	}
	p.Send(msg)
}
