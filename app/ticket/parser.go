package ticket

import (
	"strconv"
	"strings"
)

// Item is one parsed line of an order detail string. Quantity stays a
// string because that is what the backend stores; Price is the line
// total in pesos (quantity times unit price).
type Item struct {
	Quantity string `json:"quantity"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
}

// QuantityNum returns the quantity as a non-negative integer, 1 when the
// stored value is not a number.
func (it Item) QuantityNum() int {
	n, err := strconv.Atoi(it.Quantity)
	if err != nil {
		return 1
	}
	if n < 0 {
		return -n
	}
	return n
}

// ParseDetails parses a serialized order detail string into items. Items
// are separated by ";" or "|", fields by ",", and separators inside
// parentheses are ignored so dish notes like "(sin cebolla, bien
// cocido)" don't split the name. Parsing is best effort: malformed input
// degrades (quantity 1, price 0) and never fails.
//
// A two-field item is always read as name, price with quantity 1; the
// serializer emits the three-field form, so a leading bare number can
// only be a name.
func ParseDetails(detail string) []Item {
	var items []Item

	for _, part := range splitOutsideParens(detail, ";|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		fields := splitOutsideParens(part, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		var it Item
		switch {
		case len(fields) >= 3:
			it.Quantity = normalizeQuantity(strings.TrimPrefix(fields[0], "-"))
			it.Name = strings.Join(fields[1:len(fields)-1], ", ")
			it.Price = parsePrice(fields[len(fields)-1])
		case len(fields) == 2:
			it.Quantity = "1"
			it.Name = fields[0]
			it.Price = parsePrice(fields[1])
		default:
			it.Quantity = "1"
			it.Name = fields[0]
		}

		items = append(items, it)
	}

	return items
}

// SerializeDetails renders items back into the canonical detail format:
// "- {quantity}, {name}, {price}; ...". Always the three-field form so a
// later parse is unambiguous.
func SerializeDetails(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		q := it.Quantity
		if q == "" {
			q = "1"
		}
		parts = append(parts, "- "+q+", "+it.Name+", "+strconv.Itoa(it.Price))
	}
	return strings.Join(parts, "; ")
}

// splitOutsideParens splits s on any rune in seps, ignoring separators
// while parenthesis nesting depth is above zero.
func splitOutsideParens(s, seps string) []string {
	var parts []string
	depth := 0
	start := 0

	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && strings.ContainsRune(seps, r):
			parts = append(parts, s[start:i])
			start = i + len(string(r))
		}
	}
	return append(parts, s[start:])
}

// normalizeQuantity extracts the first integer run from raw and returns
// its absolute value, defaulting to "1" when none is found.
func normalizeQuantity(raw string) string {
	raw = strings.TrimSpace(raw)

	start := -1
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start == -1 {
		return "1"
	}

	end := start
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(raw[start:end])
	if err != nil {
		return "1"
	}
	if n < 0 {
		n = -n
	}
	return strconv.Itoa(n)
}

// parsePrice strips everything but digits and the minus sign from a
// currency-like string and parses the remainder, returning 0 on failure.
func parsePrice(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
