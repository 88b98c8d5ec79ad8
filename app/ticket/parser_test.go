package ticket

import (
	"reflect"
	"testing"
)

func TestParseDetails(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		want   []Item
	}{
		{
			name:   "two items",
			detail: "- 2, Bandeja paisa (sin cebolla), 25000; - 1, Jugo, 6000",
			want: []Item{
				{Quantity: "2", Name: "Bandeja paisa (sin cebolla)", Price: 25000},
				{Quantity: "1", Name: "Jugo", Price: 6000},
			},
		},
		{
			name:   "comma inside parens stays in the name",
			detail: "- 1, Hamburguesa (sin tomate, sin cebolla), 18000",
			want: []Item{
				{Quantity: "1", Name: "Hamburguesa (sin tomate, sin cebolla)", Price: 18000},
			},
		},
		{
			name:   "semicolon inside parens stays in the name",
			detail: "- 1, Combo (perro; gaseosa), 15000",
			want: []Item{
				{Quantity: "1", Name: "Combo (perro; gaseosa)", Price: 15000},
			},
		},
		{
			name:   "pipe separator",
			detail: "- 1, Pizza, 30000 | - 2, Gaseosa, 4000",
			want: []Item{
				{Quantity: "1", Name: "Pizza", Price: 30000},
				{Quantity: "2", Name: "Gaseosa", Price: 4000},
			},
		},
		{
			name:   "extra commas merge into the name",
			detail: "3, Arepa, rellena, 9000",
			want: []Item{
				{Quantity: "3", Name: "Arepa, rellena", Price: 9000},
			},
		},
		{
			name:   "two fields read as name and price",
			detail: "Empanada, 2500",
			want: []Item{
				{Quantity: "1", Name: "Empanada", Price: 2500},
			},
		},
		{
			name:   "single field is a bare name",
			detail: "(sin servilletas)",
			want: []Item{
				{Quantity: "1", Name: "(sin servilletas)"},
			},
		},
		{
			name:   "garbage quantity and price degrade",
			detail: "- x, Sopa, gratis",
			want: []Item{
				{Quantity: "1", Name: "Sopa", Price: 0},
			},
		},
		{
			name:   "formatted price",
			detail: "- 1, Bandeja, $25.000",
			want: []Item{
				{Quantity: "1", Name: "Bandeja", Price: 25000},
			},
		},
		{
			name:   "empty segments skipped",
			detail: ";; - 1, Jugo, 6000 ;",
			want: []Item{
				{Quantity: "1", Name: "Jugo", Price: 6000},
			},
		},
		{
			name:   "empty input",
			detail: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDetails(tt.detail)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDetails(%q) = %+v, want %+v", tt.detail, got, tt.want)
			}
		})
	}
}

func TestSerializeDetails(t *testing.T) {
	items := []Item{
		{Quantity: "2", Name: "Bandeja paisa (sin cebolla)", Price: 25000},
		{Quantity: "", Name: "Jugo", Price: 6000},
	}

	want := "- 2, Bandeja paisa (sin cebolla), 25000; - 1, Jugo, 6000"
	if got := SerializeDetails(items); got != want {
		t.Errorf("SerializeDetails = %q, want %q", got, want)
	}
}

func TestParseSerializeRoundTrip(t *testing.T) {
	inputs := []string{
		"- 2, Bandeja paisa (sin cebolla), 25000; - 1, Jugo, 6000",
		"- 1, Hamburguesa (sin tomate, sin cebolla), 18000",
		"Empanada, 2500",
		"- 3, Arepa, rellena, 9000 | - 1, Café, 3000",
	}

	for _, in := range inputs {
		first := ParseDetails(in)
		second := ParseDetails(SerializeDetails(first))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("round trip changed items for %q:\n first: %+v\nsecond: %+v", in, first, second)
		}
	}
}

func TestQuantityNum(t *testing.T) {
	tests := []struct {
		q    string
		want int
	}{
		{"2", 2},
		{"0", 0},
		{"-3", 3},
		{"abc", 1},
		{"", 1},
	}

	for _, tt := range tests {
		it := Item{Quantity: tt.q}
		if got := it.QuantityNum(); got != tt.want {
			t.Errorf("QuantityNum(%q) = %d, want %d", tt.q, got, tt.want)
		}
	}
}
