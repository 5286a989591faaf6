// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package vaultui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pants-project/pants/lib/tui"
	"github.com/pants-project/pants/lib/workflow"
)

// modalMinWidth is the narrowest a modal step is drawn.
const modalMinWidth = 40

func (model Model) theme() tui.Theme {
	return tui.ThemeByName(model.orchestrator.Config().Theme)
}

// View draws the header, the vault list, the status bar and help line,
// with the top workflow step spliced over the middle.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}
	theme := model.theme()

	sections := []string{model.renderHeader(theme), model.renderList(theme)}
	separator := lipgloss.NewStyle().Foreground(theme.BorderColor).Render(strings.Repeat("─", model.width))
	sections = append(sections, separator, model.renderStatus(theme), model.renderHelp(theme))
	output := strings.Join(sections, "\n")

	if step := model.orchestrator.Top(); step != nil {
		output = tui.CenterOverlay(output, model.renderModal(theme, step), model.width, model.height)
	}
	return output
}

func (model Model) renderHeader(theme tui.Theme) string {
	if model.filtering || model.filter.Value() != "" {
		return ansi.Truncate(model.filter.View(), model.width, "…")
	}
	style := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	count := model.orchestrator.Directory().Len()
	noun := "vaults"
	if count == 1 {
		noun = "vault"
	}
	title := style.Render("pants") + lipgloss.NewStyle().Foreground(theme.FaintText).Render(fmt.Sprintf("  %d %s", count, noun))
	return ansi.Truncate(title, model.width, "…")
}

func (model Model) renderList(theme tui.Theme) string {
	height := model.visibleHeight()
	rows := model.rows()
	listWidth := max(model.width-1, 1)

	lines := make([]string, 0, height)
	if len(rows) == 0 {
		empty := "no vaults yet: press N to create one"
		if model.filter.Value() != "" {
			empty = "no matches"
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.FaintText).Render(" "+empty))
	}
	end := min(model.scrollOffset+height, len(rows))
	for index := model.scrollOffset; index < end; index++ {
		lines = append(lines, model.renderRow(theme, rows[index], index == model.cursor, listWidth))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", listWidth))
	}

	scrollbar := tui.RenderScrollbar(theme, height, len(rows), height, model.scrollOffset)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
}

func (model Model) renderRow(theme tui.Theme, r row, selected bool, width int) string {
	var text string
	filtered := model.filter.Value() != ""
	switch {
	case r.isVault():
		marker := "▸"
		if r.Expanded {
			marker = "▾"
		}
		text = fmt.Sprintf(" %s %s (%d)", marker, r.Vault, r.Entries)
	case filtered:
		text = fmt.Sprintf("   %s/%s  %s", r.Vault, r.Key, r.Choice)
	default:
		text = fmt.Sprintf("     %s  %s", r.Key, r.Choice)
	}
	text = ansi.Truncate(text, width, "…")
	text += strings.Repeat(" ", max(width-ansi.StringWidth(text), 0))

	style := lipgloss.NewStyle().Foreground(theme.NormalText)
	if r.isVault() {
		style = style.Bold(true)
	}
	if selected {
		style = style.Background(theme.SelectedBackground).Foreground(theme.SelectedForeground).Bold(theme.Bold || r.isVault())
	}
	return style.Render(text)
}

func (model Model) renderStatus(theme tui.Theme) string {
	status := model.orchestrator.Status()
	var parts []string

	if status.Connected {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Connected).Render("● connected"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Disconnected).Bold(theme.Bold).Render("○ disconnected"))
	}
	if status.Working != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.FaintText).Render(status.Working))
	}
	if status.Copied {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.WarnText).Render("secret on clipboard"))
	}
	switch {
	case status.LastError != nil:
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ErrorText).Bold(true).Render("Error: "+status.LastError.Error()))
	case model.notice != "":
		color := theme.FaintText
		if model.noticeLevel >= slog.LevelError {
			color = theme.ErrorText
		} else if model.noticeLevel >= slog.LevelWarn {
			color = theme.WarnText
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(color).Render(model.notice))
	}
	return ansi.Truncate(" "+strings.Join(parts, "  "), model.width, "…")
}

func (model Model) renderHelp(theme tui.Theme) string {
	help := " q quit  ↑↓ move  enter open  space expand  n entry  N vault  d delete  / filter  t theme"
	if model.filtering {
		help = " type to filter  ↑↓ move  enter done  esc clear"
	}
	if rows := model.rows(); len(rows) > 0 {
		help += fmt.Sprintf("  %d/%d", min(model.cursor+1, len(rows)), len(rows))
	}
	return lipgloss.NewStyle().Foreground(theme.HelpText).Render(ansi.Truncate(help, model.width, "…"))
}

// renderModal draws the display model of step as a bordered box, one
// line per field, with the focused field drawn by the editor.
func (model Model) renderModal(theme tui.Theme, step workflow.Step) []string {
	display := workflow.Display(step)
	innerWidth := min(max(modalMinWidth, model.width/2), max(model.width-4, 10))

	background := lipgloss.NewStyle().Background(theme.ModalBackground)
	text := background.Foreground(theme.ModalForeground)
	faint := background.Foreground(theme.FaintText)

	labelWidth := 0
	for _, field := range display.Fields {
		labelWidth = max(labelWidth, ansi.StringWidth(field.Label))
	}

	lines := []string{text.Bold(true).Render(display.Title), ""}
	for _, field := range display.Fields {
		label := fmt.Sprintf("%-*s ", labelWidth+1, field.Label+":")
		var value string
		switch {
		case field.Name == model.editorField && field.Editable:
			value = model.editor.View()
			label = background.Foreground(theme.FieldFocused).Bold(true).Render(label)
		case field.Masked:
			value = text.Render(workflow.Mask(field.Value))
			label = faint.Render(label)
		default:
			value = text.Render(field.Value)
			label = faint.Render(label)
		}
		lines = append(lines, ansi.Truncate(label+value, innerWidth, "…"))
	}
	if display.Choice != "" {
		lines = append(lines, "", faint.Render("layout: "+string(display.Choice)))
	}
	if err := model.orchestrator.Status().LastError; err != nil {
		lines = append(lines, "", background.Foreground(theme.ErrorText).Render(ansi.Truncate(err.Error(), innerWidth, "…")))
	}
	lines = append(lines, "", faint.Render(ansi.Truncate(display.Hint, innerWidth, "…")))

	padded := make([]string, len(lines))
	for index, line := range lines {
		padded[index] = tui.PadOverlayLine(line, innerWidth, background)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		BorderBackground(theme.ModalBackground).
		Render(strings.Join(padded, "\n"))
	return strings.Split(box, "\n")
}
