// internal/tui/styles.go
//
// Terminal colors: one style per letter mark plus the end screen palette.

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/internal/game"
)

var (
	styleCorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true) // Green
	stylePresent = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true) // Yellow
	styleAbsent  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // Dark gray
	styleUnused  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))            // White

	styleTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWon    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleLost   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleAnswer = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	styleStats  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleDist   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleNotice = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func markStyle(m game.Mark) lipgloss.Style {
	switch m {
	case game.MarkCorrect:
		return styleCorrect
	case game.MarkPresent:
		return stylePresent
	case game.MarkAbsent:
		return styleAbsent
	default:
		return styleUnused
	}
}
