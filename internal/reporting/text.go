package reporting

import (
	"fmt"
	"strings"

	"solana-token-info/internal/domain"
)

// RenderText renders the report as "Label: value" lines.
func RenderText(r *domain.TokenReport) string {
	var sb strings.Builder
	for _, row := range Rows(r) {
		sb.WriteString(fmt.Sprintf("%s: %s\n", row.Label, row.Value))
	}
	return sb.String()
}
