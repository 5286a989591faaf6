// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pants-project/pants/lib/config"
)

// Theme is a color palette. Colors are ANSI 256-color codes so the
// client looks the same in every terminal that has them.
type Theme struct {
	Name string

	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	Accent           lipgloss.Color

	// Status bar.
	Connected    lipgloss.Color
	Disconnected lipgloss.Color
	WarnText     lipgloss.Color
	ErrorText    lipgloss.Color

	// Modal steps.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
	FieldFocused    lipgloss.Color

	// Bold reinforces state that mono terminals cannot show in color.
	Bold bool
}

// DarkTheme suits terminals with a dark background.
var DarkTheme = Theme{
	Name:               config.ThemeDark,
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("245"),
	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),
	HeaderForeground:   lipgloss.Color("255"),
	BorderColor:        lipgloss.Color("240"),
	HelpText:           lipgloss.Color("241"),
	Accent:             lipgloss.Color("75"),  // blue
	Connected:          lipgloss.Color("114"), // green
	Disconnected:       lipgloss.Color("196"), // red
	WarnText:           lipgloss.Color("220"), // amber
	ErrorText:          lipgloss.Color("196"),
	ModalForeground:    lipgloss.Color("252"),
	ModalBackground:    lipgloss.Color("237"),
	FieldFocused:       lipgloss.Color("220"),
}

// LightTheme suits terminals with a light background.
var LightTheme = Theme{
	Name:               config.ThemeLight,
	NormalText:         lipgloss.Color("235"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("153"),
	SelectedForeground: lipgloss.Color("232"),
	HeaderForeground:   lipgloss.Color("232"),
	BorderColor:        lipgloss.Color("248"),
	HelpText:           lipgloss.Color("244"),
	Accent:             lipgloss.Color("25"),
	Connected:          lipgloss.Color("28"),
	Disconnected:       lipgloss.Color("160"),
	WarnText:           lipgloss.Color("130"),
	ErrorText:          lipgloss.Color("160"),
	ModalForeground:    lipgloss.Color("235"),
	ModalBackground:    lipgloss.Color("254"),
	FieldFocused:       lipgloss.Color("25"),
}

// MonoTheme uses only the terminal's default colors plus grays.
var MonoTheme = Theme{
	Name:               config.ThemeMono,
	NormalText:         lipgloss.Color("7"),
	FaintText:          lipgloss.Color("8"),
	SelectedBackground: lipgloss.Color("7"),
	SelectedForeground: lipgloss.Color("0"),
	HeaderForeground:   lipgloss.Color("15"),
	BorderColor:        lipgloss.Color("8"),
	HelpText:           lipgloss.Color("8"),
	Accent:             lipgloss.Color("15"),
	Connected:          lipgloss.Color("7"),
	Disconnected:       lipgloss.Color("15"),
	WarnText:           lipgloss.Color("15"),
	ErrorText:          lipgloss.Color("15"),
	ModalForeground:    lipgloss.Color("7"),
	ModalBackground:    lipgloss.Color("0"),
	FieldFocused:       lipgloss.Color("15"),
	Bold:               true,
}

// ThemeByName returns the theme a config names. Unknown names get
// [DarkTheme].
func ThemeByName(name string) Theme {
	switch name {
	case config.ThemeLight:
		return LightTheme
	case config.ThemeMono:
		return MonoTheme
	default:
		return DarkTheme
	}
}
