package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kingrea/staymitar/internal/frontdesk"
)

// GuestTable renders the guest list in store order with names upper-cased.
func GuestTable(entries []frontdesk.GuestEntry) string {
	if len(entries) == 0 {
		return "No guests checked in."
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strings.ToUpper(e.Name), strconv.Itoa(e.RoomNumber)})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		Headers("GUEST", "ROOM").
		Rows(rows...).
		Render()
}
