package estimate

import (
	"encoding/json"
	"strings"
)

// ParseStructured attempts to read the raw generator response as JSON.
// It accepts an array of item objects, an object wrapping the array
// under "lineItems" or "items", or a bare object (treated as a single
// item). When the whole string does not parse, the first bracketed
// span is retried on its own, since generators like to wrap valid JSON
// in explanatory prose. Returns ok=false when nothing usable decodes.
func ParseStructured(raw string) ([]RawItem, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	var doc any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		span, found := extractJSONSpan(trimmed)
		if !found {
			return nil, false
		}
		if err := json.Unmarshal([]byte(span), &doc); err != nil {
			return nil, false
		}
	}

	items := itemsFromDocument(doc)
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// itemsFromDocument interprets a decoded JSON value as an item list.
func itemsFromDocument(doc any) []RawItem {
	switch t := doc.(type) {
	case []any:
		return itemsFromArray(t)
	case map[string]any:
		for _, key := range []string{"lineItems", "items"} {
			if arr, ok := t[key].([]any); ok {
				return itemsFromArray(arr)
			}
		}
		// bare object: treat as a one-element item list
		return []RawItem{RawItem(t)}
	default:
		return nil
	}
}

func itemsFromArray(arr []any) []RawItem {
	items := make([]RawItem, 0, len(arr))
	for _, el := range arr {
		switch t := el.(type) {
		case map[string]any:
			items = append(items, RawItem(t))
		case string:
			// a bare string element still names an item
			if s := strings.TrimSpace(t); s != "" {
				items = append(items, RawItem{"description": s})
			}
		}
	}
	return items
}

// extractJSONSpan finds the first bracket-delimited span that could be
// a JSON array or object. Arrays are preferred since the common case
// is an item list embedded in prose.
func extractJSONSpan(s string) (string, bool) {
	if span, ok := spanBetween(s, '[', ']'); ok {
		return span, true
	}
	return spanBetween(s, '{', '}')
}

func spanBetween(s string, open, closing byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, closing)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}
