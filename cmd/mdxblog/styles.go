package main

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	slugStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	tagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)
