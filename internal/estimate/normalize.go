package estimate

import (
	"fmt"
	"strings"
)

// Normalizer maps heterogeneous raw items onto canonical line items,
// reconciling descriptions against the catalog and deriving totals.
type Normalizer struct {
	matcher *Matcher
}

func NewNormalizer(matcher *Matcher) *Normalizer {
	if matcher == nil {
		matcher = NewMatcher()
	}
	return &Normalizer{matcher: matcher}
}

// Normalize converts raw items into line items. Field names are tried
// in priority order per field; missing or garbled values fall back to
// documented defaults, never to errors. A catalog match always
// overrides the generator's price: the catalog is the authoritative
// price source.
func (n *Normalizer) Normalize(rawItems []RawItem, catalog []CatalogMaterial) []LineItem {
	items := make([]LineItem, 0, len(rawItems))
	for _, raw := range rawItems {
		items = append(items, n.normalizeOne(raw, catalog))
	}
	return items
}

func (n *Normalizer) normalizeOne(raw RawItem, catalog []CatalogMaterial) LineItem {
	desc := resolveString(raw, "description", "name", "item")
	if desc == "" {
		desc = "Unnamed item"
	}

	qty := CoerceNumber(firstPresent(raw, "quantity", "qty"), 1)
	if qty <= 0 {
		qty = 1
	}

	match := n.matcher.FindMatch(desc, catalog)

	var unitPrice float64
	if match != nil {
		unitPrice = match.UnitPrice
	} else {
		unitPrice = CoerceNumber(firstPresent(raw, "unitPrice", "unit_price", "price"), 0)
		if unitPrice < 0 {
			unitPrice = 0
		}
	}

	// An explicit non-zero total from the source wins; otherwise derive.
	total := CoerceNumber(firstPresent(raw, "total", "totalPrice", "total_price"), 0)
	if total == 0 {
		total = qty * unitPrice
	}

	notes := resolveString(raw, "notes", "note")
	if notes == "" && match != nil {
		notes = fmt.Sprintf("Using saved material price $%.2f", match.UnitPrice)
	}

	item := LineItem{
		Description: desc,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Total:       total,
		Notes:       notes,
	}
	if match != nil {
		item.MatchedMaterialID = match.ID
	}
	return item
}

// firstPresent returns the first value present under any of the given
// keys. Presence, not usefulness: coercion decides what the value is
// worth.
func firstPresent(raw RawItem, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func resolveString(raw RawItem, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			switch t := v.(type) {
			case string:
				if s := strings.TrimSpace(t); s != "" {
					return s
				}
			case fmt.Stringer:
				if s := strings.TrimSpace(t.String()); s != "" {
					return s
				}
			}
		}
	}
	return ""
}
