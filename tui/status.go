package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// current room, its exits, the inventory, and the score.
func (m Model) renderStatusBar() string {
	sess := m.game.Session()
	world := m.game.World()
	if sess == nil || world == nil {
		return styleStatusBar.Width(m.width).Render(" no game ")
	}

	roomName := sess.CurrentRoomID
	var dirs []string
	if room, ok := world.Rooms[sess.CurrentRoomID]; ok {
		roomName = room.Name
		for dir := range room.Exits {
			dirs = append(dirs, string(dir))
		}
		sort.Strings(dirs)
	}

	left := fmt.Sprintf(" %s | Exits: %s", roomName, strings.Join(dirs, ","))
	right := fmt.Sprintf("Score: %d ", sess.Score)

	// Show inventory item names if they fit, otherwise just the count.
	if len(sess.Inventory) > 0 {
		var names []string
		for _, id := range sess.InventoryIDs() {
			names = append(names, sess.Inventory[id].Name)
		}
		candidate := fmt.Sprintf("Inv: %s | Score: %d ", strings.Join(names, ", "), sess.Score)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | Score: %d ", len(sess.Inventory), sess.Score)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
