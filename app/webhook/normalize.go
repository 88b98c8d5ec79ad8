package webhook

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ComandaApp/app/models"
)

// The backend stores rows in spreadsheet fashion and is not strict
// about types: numbers arrive as numbers or as strings, and field names
// vary between the English and Spanish sheet headers. Normalization
// turns each loose row into a typed record and reports exactly which
// field was missing or invalid instead of coercing garbage to zero.

// NormalizeOrder validates one order row.
func NormalizeOrder(row map[string]any) (models.Order, error) {
	var o models.Order
	var err error

	if o.Row, err = intField(row, "row", "fila"); err != nil {
		return o, err
	}
	o.Timestamp = stringField(row, "timestamp", "fecha")
	o.Name = stringField(row, "name", "nombre")
	o.Phone = stringField(row, "phone", "telefono")
	o.Address = stringField(row, "address", "direccion")
	o.Detail = stringField(row, "detail", "detalle")
	if o.Subtotal, err = intField(row, "subtotal"); err != nil {
		return o, err
	}
	if o.DeliveryFee, err = optIntField(row, "delivery_fee", "domicilio"); err != nil {
		return o, err
	}
	o.Payment = stringField(row, "payment", "pago")
	o.Status = models.OrderStatus(strings.TrimSpace(stringField(row, "status", "estado")))

	if o.Detail == "" {
		return o, fmt.Errorf("order row %d has no detail", o.Row)
	}
	return o, nil
}

// NormalizeMenuItem validates one menu row.
func NormalizeMenuItem(row map[string]any) (models.MenuItem, error) {
	var m models.MenuItem
	var err error

	if m.ID, err = intField(row, "id"); err != nil {
		return m, err
	}
	m.Name = stringField(row, "name", "nombre")
	if m.Name == "" {
		return m, fmt.Errorf("menu item %d has no name", m.ID)
	}
	m.Description = stringField(row, "description", "descripcion")
	if m.Price, err = intField(row, "price", "precio"); err != nil {
		return m, err
	}
	m.Category = stringField(row, "category", "categoria")
	m.ImageURL = stringField(row, "image_url", "imagen")
	m.Available = boolField(row, "available", "disponible")
	return m, nil
}

// NormalizeDeliveryArea validates one delivery zone row.
func NormalizeDeliveryArea(row map[string]any) (models.DeliveryArea, error) {
	var a models.DeliveryArea
	var err error

	a.Name = stringField(row, "name", "barrio")
	if a.Name == "" {
		return a, fmt.Errorf("delivery area has no name")
	}
	if a.Fee, err = intField(row, "fee", "valor"); err != nil {
		return a, err
	}
	return a, nil
}

// NormalizeClient validates one client row.
func NormalizeClient(row map[string]any) (models.Client, error) {
	var c models.Client

	c.Name = stringField(row, "name", "nombre")
	c.Phone = stringField(row, "phone", "telefono")
	if c.Name == "" && c.Phone == "" {
		return c, fmt.Errorf("client row has neither name nor phone")
	}
	c.Address = stringField(row, "address", "direccion")
	c.Area = stringField(row, "area", "barrio")
	c.Notes = stringField(row, "notes", "notas")
	return c, nil
}

// NormalizeSale validates one historical sales row.
func NormalizeSale(row map[string]any) (models.SaleRecord, error) {
	var s models.SaleRecord
	var err error

	s.Date = stringField(row, "date", "fecha")
	if s.Date == "" {
		return s, fmt.Errorf("sales row has no date")
	}
	s.Detail = stringField(row, "detail", "detalle")
	if s.Subtotal, err = intField(row, "subtotal"); err != nil {
		return s, err
	}
	if s.DeliveryFee, err = optIntField(row, "delivery_fee", "domicilio"); err != nil {
		return s, err
	}
	s.Payment = stringField(row, "payment", "pago")
	return s, nil
}

// lookup returns the first present key from keys.
func lookup(row map[string]any, keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			return v, k, true
		}
	}
	return nil, "", false
}

func stringField(row map[string]any, keys ...string) string {
	v, _, ok := lookup(row, keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// Sheet columns sometimes come back numeric (phone, table no).
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func intField(row map[string]any, keys ...string) (int, error) {
	v, key, ok := lookup(row, keys...)
	if !ok {
		return 0, fmt.Errorf("missing field %q", keys[0])
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return n, nil
}

// optIntField treats a missing field as zero but still rejects a
// present, non-numeric value.
func optIntField(row map[string]any, keys ...string) (int, error) {
	v, key, ok := lookup(row, keys...)
	if !ok {
		return 0, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return n, nil
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("expected integer, got %v", t)
		}
		return int(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", t)
		}
		return n, nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func boolField(row map[string]any, keys ...string) bool {
	v, _, ok := lookup(row, keys...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "si" || s == "sí" || s == "1"
	case float64:
		return t != 0
	}
	return false
}
