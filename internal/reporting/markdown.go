package reporting

import (
	"fmt"
	"strings"

	"solana-token-info/internal/domain"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *domain.TokenReport) string {
	var sb strings.Builder

	// Header
	title := r.Name
	if title == "" {
		title = r.Mint.String()
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeCell(title)))
	sb.WriteString(fmt.Sprintf("Mint: `%s`\n\n", r.Mint))

	// Fields
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	for _, row := range Rows(r) {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", row.Label, escapeCell(row.Value)))
	}

	return sb.String()
}

// escapeCell keeps free text from breaking the table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
