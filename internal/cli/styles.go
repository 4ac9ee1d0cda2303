package cli

import "github.com/charmbracelet/lipgloss"

const dayWidth = 4

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Width(dayWidth * 7).
			Align(lipgloss.Center)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(dayWidth).
			Align(lipgloss.Right)

	dayStyle = lipgloss.NewStyle().
			Width(dayWidth).
			Align(lipgloss.Right)

	todayStyle = dayStyle.
			Bold(true).
			Foreground(lipgloss.Color("212"))

	loggedStyle = dayStyle.
			Underline(true).
			Foreground(lipgloss.Color("42"))

	calendarBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
