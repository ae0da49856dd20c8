// Package palette is the desktop colour scheme and the fyne theme that serves
// it. Row widgets look colours up by name through the theme instead of
// holding their own, so the whole app reads from one table.
package palette

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/MihkelHunter/taskflow/internal/todo"
)

// Colour names added on top of the fyne built-ins.
const (
	ColorNameSurface        fyne.ThemeColorName = "taskflowSurface"
	ColorNameDoneRow        fyne.ThemeColorName = "taskflowDoneRow"
	ColorNameFocusRow       fyne.ThemeColorName = "taskflowFocusRow"
	ColorNamePriorityHigh   fyne.ThemeColorName = "taskflowPriorityHigh"
	ColorNamePriorityMedium fyne.ThemeColorName = "taskflowPriorityMedium"
	ColorNamePriorityLow    fyne.ThemeColorName = "taskflowPriorityLow"
)

var (
	Background = color.NRGBA{R: 15, G: 15, B: 20, A: 255}
	Surface    = color.NRGBA{R: 26, G: 26, B: 36, A: 255}
	DoneRow    = color.NRGBA{R: 20, G: 30, B: 25, A: 255}
	FocusRow   = color.NRGBA{R: 32, G: 30, B: 60, A: 255}
	Accent     = color.NRGBA{R: 99, G: 102, B: 241, A: 255}
	High       = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	Medium     = color.NRGBA{R: 245, G: 158, B: 11, A: 255}
	Low        = color.NRGBA{R: 100, G: 116, B: 139, A: 255}
)

var colors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      Background,
	theme.ColorNameButton:          Accent,
	theme.ColorNamePrimary:         Accent,
	theme.ColorNameFocus:           Accent,
	theme.ColorNameSelection:       FocusRow,
	theme.ColorNameForeground:      color.White,
	theme.ColorNameInputBackground: color.NRGBA{R: 35, G: 35, B: 50, A: 255},
	theme.ColorNameDisabled:        color.NRGBA{R: 80, G: 80, B: 100, A: 255},
	theme.ColorNameSeparator:       color.NRGBA{R: 50, G: 50, B: 65, A: 255},

	ColorNameSurface:        Surface,
	ColorNameDoneRow:        DoneRow,
	ColorNameFocusRow:       FocusRow,
	ColorNamePriorityHigh:   High,
	ColorNamePriorityMedium: Medium,
	ColorNamePriorityLow:    Low,
}

var sizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:    8,
	theme.SizeNameText:       14,
	theme.SizeNameInlineIcon: 20,
}

// Theme is always dark; names missing from the table fall back to the
// default theme's dark variant whatever the system preference.
type Theme struct {
	fyne.Theme
}

func NewTheme() *Theme {
	return &Theme{Theme: theme.DefaultTheme()}
}

func (t *Theme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := colors[n]; ok {
		return c
	}
	return t.Theme.Color(n, theme.VariantDark)
}

func (t *Theme) Size(n fyne.ThemeSizeName) float32 {
	if s, ok := sizes[n]; ok {
		return s
	}
	return t.Theme.Size(n)
}

// PriorityColorName names the dot colour for p.
func PriorityColorName(p todo.Priority) fyne.ThemeColorName {
	switch p {
	case todo.PriorityHigh:
		return ColorNamePriorityHigh
	case todo.PriorityMedium:
		return ColorNamePriorityMedium
	default:
		return ColorNamePriorityLow
	}
}

// RowColorName picks a list row background. The focused row wins over a
// finished one.
func RowColorName(done, focused bool) fyne.ThemeColorName {
	switch {
	case focused:
		return ColorNameFocusRow
	case done:
		return ColorNameDoneRow
	default:
		return ColorNameSurface
	}
}
