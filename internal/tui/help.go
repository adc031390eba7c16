package tui

import "strings"

// RenderHelp renders the help window
func RenderHelp(apiURL, configPath string) string {
	var b strings.Builder

	b.WriteString(ColumnHeaderStyle.Render("Team controls"))
	b.WriteString("\n")
	b.WriteString("  t toggles the team menu. Members included in the board on\n")
	b.WriteString("  display are marked with ✓. Admins can include or exclude a\n")
	b.WriteString("  member with space, invite with i and remove with x.\n\n")

	b.WriteString(ColumnHeaderStyle.Render("Board controls"))
	b.WriteString("\n")
	b.WriteString("  b toggles the board list; the board on display is marked » «.\n")
	b.WriteString("  enter loads the selected board. Admins can create (n),\n")
	b.WriteString("  rename (e) and delete (d) boards.\n\n")

	b.WriteString(ColumnHeaderStyle.Render("Task controls"))
	b.WriteString("\n")
	b.WriteString("  Arrow keys (or h j k l) select a task; its subtasks are listed\n")
	b.WriteString("  under the board. Admins can add (a), edit (e) and delete (d)\n")
	b.WriteString("  tasks, and tick subtasks with their number.\n\n")

	b.WriteString(ColumnHeaderStyle.Render("Session"))
	b.WriteString("\n")
	b.WriteString("  r refreshes the board, L logs out, q quits. Buttons on the\n")
	b.WriteString("  control bar can also be clicked.\n\n")

	b.WriteString("  " + RenderSeparator(defaultWidth-12))
	b.WriteString("\n")
	if apiURL != "" {
		b.WriteString(DimmedStyle.Render("Server: "))
		b.WriteString(apiURL)
		b.WriteString("\n")
	}
	if configPath != "" {
		b.WriteString(DimmedStyle.Render("Config file: "))
		b.WriteString(configPath)
		b.WriteString("\n")
	}
	b.WriteString(RenderKeyBinding("?", "close"))
	return b.String()
}
