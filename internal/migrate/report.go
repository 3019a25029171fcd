package migrate

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/coe-tools/idremap/internal/output"
	"github.com/coe-tools/idremap/internal/remap"
)

// WriteReport renders r to w in the given format.
func WriteReport(w io.Writer, r *Report, format output.Format) error {
	switch format {
	case output.FormatYAML:
		return output.WriteYAML(w, r)
	case output.FormatJSON:
		return output.WriteJSON(w, r)
	case output.FormatTable, "":
		_, err := io.WriteString(w, renderTable(r))
		return err
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func renderTable(r *Report) string {
	var sb strings.Builder

	for _, d := range r.Documents {
		detail := fmt.Sprintf("%d ids", d.Summary.Total())
		if d.Error != "" {
			detail = d.Error
		}
		sb.WriteString(output.FormatDocumentLine(d.URL, d.Status, detail))
		sb.WriteString("\n")
		if d.Diff != "" {
			for _, line := range strings.Split(d.Diff, "\n") {
				sb.WriteString("    ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}
	sb.WriteString("\n")

	counts := output.NewTable("OUTCOME", "COUNT")
	for _, o := range remap.Outcomes() {
		counts.Row(o.String(), strconv.Itoa(r.Summary.Count(o)))
	}
	sb.WriteString(counts.String())
	sb.WriteString("\n")

	if len(r.Events) > 0 {
		events := output.NewTable("DOCUMENT", "ID", "OUTCOME", "NAMESPACE", "SYMBOLIC NAME", "DISPLAY NAME")
		for _, e := range r.Events {
			events.Row(e.Document, strconv.Itoa(int(e.OldID)), e.Outcome.String(),
				e.Namespace, e.SymbolicName, e.DisplayName)
		}
		sb.WriteString("\n")
		sb.WriteString(events.String())
		sb.WriteString("\n")
	}

	if len(r.Suggestions) > 0 {
		sb.WriteString("\n")
		namespaces := make([]string, 0, len(r.Suggestions))
		for ns := range r.Suggestions {
			namespaces = append(namespaces, ns)
		}
		sort.Strings(namespaces)
		for _, ns := range namespaces {
			sb.WriteString(fmt.Sprintf("namespace %s is missing from the new catalog, did you mean %s?\n",
				output.StyleNoun.Render(ns), strings.Join(r.Suggestions[ns], ", ")))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(output.StyleSummary.Render(summaryLine(r)))
	sb.WriteString("\n")
	return sb.String()
}

func summaryLine(r *Report) string {
	failed := len(r.Failed())
	line := fmt.Sprintf("%d documents, %d ids remapped, %d unresolved",
		len(r.Documents), r.Summary.Remapped, r.Summary.Warnings())
	if failed > 0 {
		line += fmt.Sprintf(", %d failed", failed)
	}
	if r.DryRun {
		line += " (dry run)"
	}
	return line
}
