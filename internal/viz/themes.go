package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the cloth canvas and the stats accents.
type Theme struct {
	Name   string
	Cloth  lipgloss.Color
	Pin    lipgloss.Color
	Accent lipgloss.Color
}

var Themes = []Theme{
	{Name: "mint", Cloth: "49", Pin: "203", Accent: "86"},
	{Name: "amber", Cloth: "214", Pin: "160", Accent: "220"},
	{Name: "mono", Cloth: "252", Pin: "245", Accent: "255"},
	{Name: "violet", Cloth: "135", Pin: "205", Accent: "183"},
}
