package components

import "github.com/charmbracelet/lipgloss"

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#273540")).
			Padding(1, 2).
			Width(40)
	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)
	dialogTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	dialogInputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#436b77"))
)

// ConfirmDialog asks a yes/no question such as "Delete trip".
func ConfirmDialog(title, message string) string {
	return dialog(title, dialogTextStyle.Render(message), "y: confirm | n: cancel")
}

// InputDialog shows a one-line prompt with a block cursor after input.
func InputDialog(title, input string) string {
	return dialog(title, dialogInputStyle.Render("> "+input+"█"), "enter: submit | esc: cancel")
}

func dialog(title, body, keys string) string {
	return dialogStyle.Render(dialogTitleStyle.Render(title) + "\n\n" + body + "\n" + dialogTextStyle.Render(keys))
}
