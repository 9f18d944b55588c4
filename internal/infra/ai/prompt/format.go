package prompt

import "strings"

// FormatVerdict rapikan output mentah model ke konvensi rendering
// presentation layer: **teks** jadi <b>teks</b>, prefix bullet markdown
// jadi •. Diproses per baris.
func FormatVerdict(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = convertBold(line)

		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]
		switch {
		case strings.HasPrefix(trimmed, "* "):
			line = indent + "• " + trimmed[2:]
		case strings.HasPrefix(trimmed, "- "):
			line = indent + "• " + trimmed[2:]
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// convertBold ganti pasangan ** jadi tag <b>/</b> bergantian.
// ** tanpa pasangan dibiarkan apa adanya.
func convertBold(line string) string {
	count := strings.Count(line, "**")
	if count < 2 {
		return line
	}
	var b strings.Builder
	open := false
	for pairs := count / 2 * 2; pairs > 0; pairs-- {
		idx := strings.Index(line, "**")
		if idx < 0 {
			break
		}
		b.WriteString(line[:idx])
		if open {
			b.WriteString("</b>")
		} else {
			b.WriteString("<b>")
		}
		open = !open
		line = line[idx+2:]
	}
	b.WriteString(line)
	return b.String()
}
