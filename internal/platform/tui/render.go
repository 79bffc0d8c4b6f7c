package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// colorStyles maps engine colors to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}

var (
	emptyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cornerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

const (
	filledCell = "██"
	lastCell   = "▓▓"
	emptyCell  = "· "
	cornerCell = "◇ "
)

// RenderBoard draws the board two columns per cell. Cells of the last
// placed piece are shaded differently and unclaimed starting corners are
// marked.
func RenderBoard(s *core.State) string {
	last := map[core.Coord]bool{}
	if m, ok := s.LastMove.(core.SetMove); ok {
		for _, c := range m.Piece.Cells() {
			last[c] = true
		}
	}
	corners := map[core.Coord]core.Color{}
	for _, c := range s.Rules.Colors {
		if s.IsFirstMove(c) {
			corners[s.Rules.CornerOf(c)] = c
		}
	}

	b := s.Board
	var sb strings.Builder
	sb.Grow(b.Size * b.Size * 8)
	for y := range b.Size {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range b.Size {
			at := core.C(x, y)
			cell, _ := b.CellAt(at)
			switch {
			case cell.Filled && last[at]:
				sb.WriteString(colorStyles[cell.Color].Render(lastCell))
			case cell.Filled:
				sb.WriteString(colorStyles[cell.Color].Render(filledCell))
			default:
				if c, ok := corners[at]; ok {
					sb.WriteString(colorStyles[c].Inherit(cornerStyle).Render(cornerCell))
				} else {
					sb.WriteString(emptyCellStyle.Render(emptyCell))
				}
			}
		}
	}
	return sb.String()
}

// RenderScores lists every participating color with its player, score and
// remaining pieces. names may be nil.
func RenderScores(s *core.State, names func(core.Color) string) string {
	var sb strings.Builder
	for i, c := range s.Rules.Colors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		name := ""
		if names != nil {
			name = names(c)
		}
		status := ""
		switch {
		case s.IsFinished() && s.Condition.IsWinner(c):
			status = "winner"
		case !s.IsActive(c):
			status = "out"
		}
		if current, ok := s.CurrentColor(); ok && current == c {
			status = "to move"
		}
		line := fmt.Sprintf("%-6s %-8s %3d pts  %2d left  %s",
			c, name, core.Score(s, c), s.Undeployed[c].Len(), status)
		sb.WriteString(colorStyles[c].Render(line))
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
