// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangle of a rendered view with overlay
// lines, placed from (anchorX, anchorY). Truncation is ANSI-aware, so
// styling on either side of the overlay survives.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}
		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			// Short lines are padded so the overlay lands at anchorX.
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				result.WriteString(strings.Repeat(" ", gap))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}
		viewLines[viewLineIndex] = result.String()
	}
	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices overlayLines into the middle of a view of the
// given size.
func CenterOverlay(view string, overlayLines []string, width, height int) string {
	if len(overlayLines) == 0 {
		return view
	}
	anchorX := max((width-ansi.StringWidth(overlayLines[0]))/2, 0)
	anchorY := max((height-len(overlayLines))/2, 0)
	return SpliceOverlay(view, overlayLines, anchorX, anchorY)
}

// PadOverlayLine pads styled content to innerWidth with one column of
// margin each side, all in the background style.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := max(innerWidth-ansi.StringWidth(styledContent), 0)
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}
