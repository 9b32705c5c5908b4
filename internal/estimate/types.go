package estimate

// CatalogMaterial is one entry from a user's saved-materials catalog.
// The catalog is owned by the caller; the pipeline only reads it.
type CatalogMaterial struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
}

// RawItem is the loosely-typed intermediate record produced by either
// extraction path. Field names vary with the generator's mood
// (description/name/item, unitPrice/price, ...), so it stays a map and
// the normalizer resolves synonyms explicitly.
type RawItem map[string]any

// LineItem is the canonical priced entry of an estimate.
type LineItem struct {
	Description       string  `json:"description"`
	Quantity          float64 `json:"quantity"`
	UnitPrice         float64 `json:"unitPrice"`
	Total             float64 `json:"total"`
	Notes             string  `json:"notes,omitempty"`
	MatchedMaterialID string  `json:"matchedMaterialId,omitempty"`
}

// Result is the terminal output of BuildEstimate. TotalPrice is always
// the exact sum of the item totals, and LineItems is never empty.
type Result struct {
	LineItems  []LineItem `json:"lineItems"`
	TotalPrice float64    `json:"totalPrice"`
}
