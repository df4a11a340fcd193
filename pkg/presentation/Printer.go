// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package presentation

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/navwar/gotransfer/pkg/transfer"
	"github.com/navwar/gotransfer/pkg/ts"
)

// Printer is a transfer.Sink that writes progress and the final summary for a person to read.
type Printer struct {
	writer        io.Writer
	styles        styles
	clock         ts.Clock
	maxErrors     int
	humanReadable bool
	verbose       bool
}

// PrinterInput configures a Printer.
// MaxErrors limits the errors listed in the summary, where zero lists every error.
// Verbose also prints files skipped by the extension filter.
type PrinterInput struct {
	Writer        io.Writer
	Clock         ts.Clock
	MaxErrors     int
	HumanReadable bool
	NoColor       bool
	Verbose       bool
}

func NewPrinter(input *PrinterInput) *Printer {
	renderer := lipgloss.NewRenderer(input.Writer)
	if input.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		writer:        input.Writer,
		styles:        newStyles(renderer),
		clock:         input.Clock,
		maxErrors:     input.MaxErrors,
		humanReadable: input.HumanReadable,
		verbose:       input.Verbose,
	}
}

func (p *Printer) rule() {
	_, _ = fmt.Fprintln(p.writer, strings.Repeat("=", ruleWidth))
}

func (p *Printer) line(label string, value string) {
	_, _ = fmt.Fprintln(p.writer, p.styles.label.Render(label)+value)
}

func (p *Printer) OnStart(cfg transfer.Config) {
	_, _ = fmt.Fprintln(p.writer)
	p.rule()
	if cfg.DryRun {
		_, _ = fmt.Fprintln(p.writer, p.styles.heading.Render("Starting transfer (dry run)"))
	} else {
		_, _ = fmt.Fprintln(p.writer, p.styles.heading.Render("Starting transfer"))
	}
	p.rule()
	p.line("Source:", cfg.Source)
	p.line("Destination:", cfg.DestinationName())
	if cfg.Extensions != nil {
		p.line("File types:", strings.Join(cfg.Extensions.Sorted(), ", "))
	} else {
		p.line("File types:", "All files")
	}
	p.rule()
	_, _ = fmt.Fprintln(p.writer)
}

func (p *Printer) OnResult(r transfer.Result) {
	switch r.Outcome {
	case transfer.Copied:
		_, _ = fmt.Fprintf(p.writer, "%s Copied: %s (%s)\n", p.styles.copied.Render(glyphCopied), r.Entry.RelativePath, strings.TrimSpace(formatSize(r.Bytes, p.humanReadable)))
	case transfer.WouldCopy:
		_, _ = fmt.Fprintf(p.writer, "%s Would copy: %s (%s)\n", p.styles.planned.Render(glyphPlanned), r.Entry.RelativePath, strings.TrimSpace(formatSize(r.Bytes, p.humanReadable)))
	case transfer.SkippedExisting:
		_, _ = fmt.Fprintf(p.writer, "%s Skipping (exists): %s\n", p.styles.skipped.Render(glyphExists), r.Entry.RelativePath)
	case transfer.SkippedFiltered:
		if p.verbose {
			_, _ = fmt.Fprintf(p.writer, "%s Skipping (filtered): %s\n", p.styles.skipped.Render(glyphFiltered), r.Entry.RelativePath)
		}
	case transfer.Failed:
		msg := "error copying " + r.Entry.SourcePath
		if r.Err != nil {
			msg = r.Err.Error()
		}
		_, _ = fmt.Fprintf(p.writer, "%s %s\n", p.styles.failed.Render(glyphFailed), msg)
	}
}

func (p *Printer) OnWarning(msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := []string{msg}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	_, _ = fmt.Fprintf(p.writer, "%s %s\n", p.styles.warning.Render(glyphWarning), strings.Join(parts, " "))
}

// OnFinish writes the summary.
// Nothing is written if the run stopped before enumeration began.
func (p *Printer) OnFinish(stats *transfer.Stats, state transfer.State, err error) {
	var sourceNotFoundError *transfer.SourceNotFoundError
	if stats == nil || errors.As(err, &sourceNotFoundError) {
		return
	}

	_, _ = fmt.Fprintln(p.writer)
	p.rule()
	_, _ = fmt.Fprintln(p.writer, p.styles.heading.Render(heading(stats, state)))
	p.rule()

	p.line("Total files found:", fmt.Sprint(stats.TotalFiles))
	if stats.DryRun {
		p.line("Files to copy:", fmt.Sprint(stats.CopiedFiles))
	} else {
		p.line("Files copied:", fmt.Sprint(stats.CopiedFiles))
	}
	p.line("Files skipped:", fmt.Sprintf("%d (%d exist, %d filtered)", stats.SkippedFiles, stats.SkippedExisting, stats.SkippedFiltered))
	p.line("Files failed:", fmt.Sprint(stats.FailedFiles))
	if stats.DryRun {
		p.line("Total size to copy:", strings.TrimSpace(formatSize(stats.TotalBytesCopied, p.humanReadable)))
	} else {
		p.line("Total size copied:", strings.TrimSpace(formatSize(stats.TotalBytesCopied, p.humanReadable)))
	}
	p.line("Duration:", fmt.Sprintf("%.2f seconds", stats.Duration().Seconds()))
	if throughput := stats.Throughput(); throughput > 0 && !stats.DryRun {
		p.line("Average speed:", fmt.Sprintf("%.2f MB/s", throughput/MiB))
	}
	p.line("Started:", p.clock.Format(stats.StartTime))
	p.line("Finished:", p.clock.Format(stats.EndTime))
	p.rule()

	if err != nil && state == transfer.Aborted {
		_, _ = fmt.Fprintf(p.writer, "\n%s %s\n", p.styles.failed.Render(glyphFailed), err.Error())
	}

	if len(stats.Errors) > 0 {
		_, _ = fmt.Fprintf(p.writer, "\n%s Errors encountered (%d):\n", p.styles.warning.Render(glyphWarning), len(stats.Errors))
		limit := len(stats.Errors)
		if p.maxErrors > 0 && p.maxErrors < limit {
			limit = p.maxErrors
		}
		for _, msg := range stats.Errors[:limit] {
			_, _ = fmt.Fprintf(p.writer, "   - %s\n", msg)
		}
		if remaining := len(stats.Errors) - limit; remaining > 0 {
			_, _ = fmt.Fprintf(p.writer, "   ... and %d more errors\n", remaining)
		}
	}
}

func heading(stats *transfer.Stats, state transfer.State) string {
	switch state {
	case transfer.Interrupted:
		return "Transfer interrupted by user"
	case transfer.Aborted:
		return "Transfer aborted"
	}
	if stats.DryRun {
		return "Dry run complete!"
	}
	return "Transfer complete!"
}
