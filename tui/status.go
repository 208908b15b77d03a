package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/achievecore/types"
)

// renderStatusBar produces a full-width inverted status line showing the
// latest unlock, then scenario, oath, time of day, hand size, unlocked
// count and turn.
func (m Model) renderStatusBar() string {
	unlocked := fmt.Sprintf("Ach: %d/%d", len(m.engine.Progress.Unlocked()), len(m.engine.Progress.Achievements()))

	s := m.engine.Session
	if s == nil {
		return m.layoutStatus(" No crusade", unlocked+" ")
	}

	sc := s.Config.Scenario
	name := sc.Name
	if name == "" {
		name = sc.ID
	}
	left := " " + name
	if s.Scenario.Status != types.ScenarioInProgress {
		left += " (" + string(s.Scenario.Status) + ")"
	}
	if s.Player.Oath != "" {
		oath := s.Player.Oath
		if o, ok := m.defs.Oaths[oath]; ok && o.Name != "" {
			oath = o.Name
		}
		left += " | Oath: " + oath
	}

	right := fmt.Sprintf("Hand: %d | %s | T:%d ", len(s.Player.Hand), unlocked, s.Turn+1)

	if m.banner != "" {
		left = " ** " + m.banner + " **" + left
	}

	// Show the time of day if it fits.
	if len(s.Config.TimeOfDays) > 0 {
		candidate := left + " | " + strings.Join(s.Config.TimeOfDays, ",")
		if lipgloss.Width(candidate)+lipgloss.Width(right)+2 < m.width {
			left = candidate
		}
	}

	return m.layoutStatus(left, right)
}

func (m Model) layoutStatus(left, right string) string {
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
