// Package report renders the end-of-run translation summary and shared
// table output for the CLI.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/intellator/intellator/i18n"
	"github.com/intellator/intellator/langcode"
	"github.com/intellator/intellator/translate"
)

// previewLimit is how many keys of a bucket are listed before the
// remainder is summarized.
const previewLimit = 10

// Summary describes one finished run for rendering.
type Summary struct {
	Stats      *translate.Stats
	SourceLang string
	TargetLang string
	OutputPath string
}

// Render writes the human-readable run report. Color is applied only when
// useColor is set (the caller decides based on TTY detection).
func Render(w io.Writer, s Summary, useColor bool) {
	heading := color.New(color.FgGreen, color.Bold)
	section := color.New(color.FgBlue, color.Bold)
	if !useColor {
		heading.DisableColor()
		section.DisableColor()
	}

	st := s.Stats

	fmt.Fprintln(w)
	heading.Fprintln(w, i18n.T("Translation complete"))
	fmt.Fprintf(w, "  %s -> %s (%s -> %s)\n",
		s.SourceLang, s.TargetLang,
		langcode.DisplayName(s.SourceLang), langcode.DisplayName(s.TargetLang))
	fmt.Fprintf(w, "  Output:  %s\n", s.OutputPath)
	fmt.Fprintf(w, "  Elapsed: %s", FormatDuration(st.Elapsed))
	if rate := st.Rate(); rate > 0 {
		fmt.Fprintf(w, " (%.2f keys/second)", rate)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, Table(
		[]string{"Bucket", "Count"},
		[][]string{
			{"Total keys", fmt.Sprintf("%d", st.TotalKeys)},
			{"Skipped (existed)", fmt.Sprintf("%d", st.Skipped.Count())},
			{"Newly translated", fmt.Sprintf("%d", st.Translated.Count())},
			{"Passthrough", fmt.Sprintf("%d", st.Passthrough.Count())},
			{"Failed", fmt.Sprintf("%d", st.Failed.Count())},
		},
	))

	printBucket(w, section, "Skipped translations", st.Skipped)
	printBucket(w, section, "Newly translated", st.Translated)
	printBucket(w, section, "Failed translations", st.Failed)
	if st.Failed.Count() > 0 {
		fmt.Fprintln(w, "  "+i18n.T("Original values have been preserved for failed translations."))
	}
}

// printBucket lists a bucket's keys, previewLimit at most, with a
// "... and N more" trailer.
func printBucket(w io.Writer, section *color.Color, title string, b translate.Bucket) {
	if b.Count() == 0 {
		return
	}

	fmt.Fprintln(w)
	section.Fprintf(w, "%s (%d):\n", title, b.Count())
	for i, key := range b.Keys {
		if i >= previewLimit {
			fmt.Fprintf(w, "  ... and %d more\n", b.Count()-previewLimit)
			break
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, key)
	}
}

// Table renders a rounded table with left-aligned headers.
func Table(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i > 0 {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// FormatDuration renders an elapsed time the way the report shows it:
// "1h 2m 3s", "2m 3s", or "4.21s" for sub-minute runs.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
