package pgfplot

import (
	"strconv"
	"strings"
)

// formatFloat renders a number in the fixed, locale-independent decimal form
// PGFPlots expects: shortest representation, no exponent, "1" rather than
// "1.0".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeKeyBlock renders a bracketed option list, one key per line. Keys are
// split across lines so a human can find individual options later.
func writeKeyBlock(sb *strings.Builder, keys []Key, keyIndent, closeIndent string) {
	if len(keys) == 0 {
		return
	}
	sb.WriteString("[\n")
	for _, key := range keys {
		sb.WriteString(keyIndent)
		sb.WriteString(key.String())
		sb.WriteString(",\n")
	}
	sb.WriteString(closeIndent)
	sb.WriteString("]")
}
