package main

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/m-daichendt/comp3110/internal/commands"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	deleteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Red().Hex)).Strikethrough(true)
	insertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Green().Hex))
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Overlay0().Hex))
)

// styledChange renders a change with colored markers. Without a color
// terminal the output equals c.Text().
func styledChange(c commands.Change) string {
	var b strings.Builder
	for _, d := range c.Diffs {
		seg := commands.Segment(d)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			seg = deleteStyle.Render(seg)
		case diffmatchpatch.DiffInsert:
			seg = insertStyle.Render(seg)
		}
		b.WriteString(seg)
	}
	return b.String()
}
