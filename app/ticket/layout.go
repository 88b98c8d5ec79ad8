// Package ticket renders order tickets for 72mm thermal printers: fixed
// width text layout, parsing of the backend's serialized order detail
// strings, ESC/POS byte encoding with CP1252 transliteration, and
// dispatch payloads for the RawBT Android bridge or a browser print
// dialog.
package ticket

import (
	"strconv"
	"strings"
)

// Cols is the default ticket column width, for 72mm paper. 42mm paper
// uses 32; the width is configurable per install (PAPER_COLS).
const Cols = 42

// Pad right-pads s with spaces to width n, truncating if longer.
func Pad(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	return s + strings.Repeat(" ", n-len(r))
}

// Center centers s within width, truncating if longer. The result is
// always exactly width characters wide.
func Center(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	left := (width - len(r)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-left-len(r))
}

// Wrap greedily packs whitespace-separated tokens onto lines of at most
// width characters. Tokens longer than width are hard-split into
// width-sized chunks. Empty input yields a single empty line.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var tokens []string
	for _, tok := range strings.Fields(text) {
		r := []rune(tok)
		for len(r) > width {
			tokens = append(tokens, string(r[:width]))
			r = r[width:]
		}
		if len(r) > 0 {
			tokens = append(tokens, string(r))
		}
	}

	if len(tokens) == 0 {
		return []string{""}
	}

	var lines []string
	line := tokens[0]
	for _, tok := range tokens[1:] {
		if len([]rune(line))+1+len([]rune(tok)) <= width {
			line += " " + tok
		} else {
			lines = append(lines, line)
			line = tok
		}
	}
	return append(lines, line)
}

// WrapLabelValue renders "label: value" wrapping the value to the width
// remaining after the label prefix, indenting continuation lines by the
// prefix length.
func WrapLabelValue(label, value string, width int) []string {
	prefix := label + ": "
	avail := width - len([]rune(prefix))
	if avail < 1 {
		avail = 1
	}

	wrapped := Wrap(value, avail)
	indent := strings.Repeat(" ", len([]rune(prefix)))

	lines := make([]string, 0, len(wrapped))
	lines = append(lines, prefix+wrapped[0])
	for _, l := range wrapped[1:] {
		lines = append(lines, indent+l)
	}
	return lines
}

// TotalLine right-aligns a formatted peso amount against a left-aligned
// label within width, separated by at least one space.
func TotalLine(label string, amount, width int) string {
	money := FormatMoney(amount)
	gap := width - len([]rune(label)) - len([]rune(money))
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + money
}

// FormatMoney formats an integer peso amount as "$45.000" with dot
// thousand separators, Colombian style.
func FormatMoney(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String()
}
