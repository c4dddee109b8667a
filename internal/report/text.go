package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dupscan/dupscan/internal/detector"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	simColor    = color.New(color.FgYellow)
	repColor    = color.New(color.FgGreen, color.Bold)
)

// renderText writes the plain-text report format: per group, a header with
// total impact, a representative line, one table row per duplicate, and
// (when requested) code slices and a unified diff, followed by a final
// summary line.
func renderText(w io.Writer, groups []detector.Group, opts Options, loadSource SourceLoader) error {
	var totalMethods, totalLines int

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintln(w, headerColor.Sprintf("Group %d — total impact %s", i+1, humanize.CommafWithDigits(g.TotalImpact, 1)))

		rep := g.Representative
		fmt.Fprintf(w, "  %s:%d | L%d-%d %s\n", rep.FilePath, rep.StartLine, rep.StartLine, rep.EndLine, repColor.Sprint(rep.FullName))

		totalMethods++
		totalLines += rep.LineCount

		tbl := table.NewWriter()
		tbl.SetOutputMirror(w)
		tbl.SetStyle(table.StyleLight)
		tbl.Style().Options.SeparateRows = false
		tbl.Style().Options.DrawBorder = false
		tbl.AppendHeader(table.Row{"duplicate", "location", "similarity", "impact"})

		for _, e := range g.Entries {
			tbl.AppendRow(table.Row{
				e.Method.FullName,
				fmt.Sprintf("%s:%d-%d", e.Method.FilePath, e.Method.StartLine, e.Method.EndLine),
				simColor.Sprintf("%.1f%%", e.Similarity*100),
				humanize.CommafWithDigits(e.Impact, 1),
			})

			totalMethods++
			totalLines += e.Method.LineCount
		}

		tbl.Render()

		if opts.Print || opts.PrintAll {
			if err := printCodeSlices(w, g, opts, loadSource); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(w, "\n%s groups, %s methods, %s total lines\n",
		humanize.Comma(int64(len(groups))), humanize.Comma(int64(totalMethods)), humanize.Comma(int64(totalLines)))

	return nil
}

func printCodeSlices(w io.Writer, g detector.Group, opts Options, loadSource SourceLoader) error {
	if loadSource == nil {
		return nil
	}

	repLines, err := loadSource(g.Representative.FilePath, g.Representative.StartLine, g.Representative.EndLine)
	if err != nil {
		return fmt.Errorf("report: load representative source: %w", err)
	}

	fmt.Fprintln(w, "  --- representative ---")
	fmt.Fprintln(w, indent(strings.Join(repLines, "\n")))

	dmp := diffmatchpatch.New()

	for _, e := range g.Entries {
		if !opts.PrintAll && e.Method == g.Representative {
			continue
		}

		dupLines, err := loadSource(e.Method.FilePath, e.Method.StartLine, e.Method.EndLine)
		if err != nil {
			return fmt.Errorf("report: load duplicate source: %w", err)
		}

		fmt.Fprintf(w, "  --- %s ---\n", e.Method.FullName)

		if opts.PrintAll {
			fmt.Fprintln(w, indent(strings.Join(dupLines, "\n")))
		}

		diffs := dmp.DiffMain(strings.Join(repLines, "\n"), strings.Join(dupLines, "\n"), false)
		fmt.Fprintln(w, indent(dmp.DiffPrettyText(diffs)))
	}

	return nil
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}

	return strings.Join(lines, "\n")
}
