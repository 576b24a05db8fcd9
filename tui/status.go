package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width status line: player, level, money
// and chapter on the left; pet count and the pets that need care on the
// right.
func (m Model) renderStatusBar() string {
	st := m.engine.Status()
	if !st.OK {
		title := m.engine.Content().Game.Title
		left := fmt.Sprintf(" %s | new <name> or load <name>", title)
		return styleStatusBar.Width(m.width).Render(left)
	}

	v := st.Data
	p := v.Player
	left := fmt.Sprintf(" %s | Lv %d | $%d | Ch %d | %s", p.Name, p.Level, p.Money, v.Chapter, v.State)

	var needy []string
	for _, pt := range p.Pets {
		if len(pt.NeedsAttention) > 0 {
			needy = append(needy, pt.Name)
		}
	}
	right := fmt.Sprintf("Pets %d/%d ", len(p.Pets), p.House.Capacity)
	alert := ""
	if len(needy) > 0 {
		alert = "! " + strings.Join(needy, ", ") + " "
		if lipgloss.Width(left)+lipgloss.Width(alert)+lipgloss.Width(right)+2 >= m.width {
			alert = fmt.Sprintf("! %d ", len(needy))
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(alert) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return styleStatusBar.Render(left+strings.Repeat(" ", gap)) +
		styleStatusAlert.Render(alert) +
		styleStatusBar.Render(right)
}
