// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package presentation

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	copiedColor   = lipgloss.Color("78")
	planColor     = lipgloss.Color("81")
	skippedColor  = lipgloss.Color("245")
	warningColor  = lipgloss.Color("214")
	errorColor    = lipgloss.Color("197")
	headingColor  = lipgloss.Color("63")
	labelColor    = lipgloss.Color("250")
	glyphCopied   = "✓"
	glyphPlanned  = "→"
	glyphExists   = "○"
	glyphFiltered = "·"
	glyphFailed   = "✗"
	glyphWarning  = "⚠"
	ruleWidth     = 70
)

type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	copied  lipgloss.Style
	planned lipgloss.Style
	skipped lipgloss.Style
	warning lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer) styles {
	return styles{
		heading: renderer.NewStyle().Bold(true).Foreground(headingColor),
		label:   renderer.NewStyle().Foreground(labelColor).Width(23),
		copied:  renderer.NewStyle().Foreground(copiedColor),
		planned: renderer.NewStyle().Foreground(planColor),
		skipped: renderer.NewStyle().Foreground(skippedColor),
		warning: renderer.NewStyle().Foreground(warningColor),
		failed:  renderer.NewStyle().Foreground(errorColor).Bold(true),
		muted:   renderer.NewStyle().Foreground(skippedColor).Italic(true),
	}
}
