package estimate

import (
	"regexp"
	"strings"

	"github.com/lawnquote/estimates-engine/constants"
)

var (
	// "Mulch delivery: $45 x 3 = $135" (price first)
	rePriceTimesQty = regexp.MustCompile(`^(.+?):\s*\$(\d+(?:\.\d+)?)\s*[x×*]\s*(\d+(?:\.\d+)?)(?:\s*=\s*\$?(\d+(?:\.\d+)?))?$`)
	// "Mulch delivery: 3 x $45 = $135" (quantity first)
	reQtyTimesPrice = regexp.MustCompile(`^(.+?):\s*(\d+(?:\.\d+)?)\s*[x×*]\s*\$(\d+(?:\.\d+)?)(?:\s*=\s*\$?(\d+(?:\.\d+)?))?$`)
	// "1. Trim hedges: $45" or "2) Mow lawn $30"
	reNumberedItem = regexp.MustCompile(`^\d+[.)]\s*(.+?)(?::\s*|\s+)\$(\d+(?:\.\d+)?)$`)
	// "Trim hedges: $45" — loosest tier
	reLabelPrice = regexp.MustCompile(`^(.+?):\s*\$?(\d+(?:\.\d+)?)$`)
)

// ParseFreeText extracts raw items from loosely formatted generator
// text. It is only reached when structured parsing fails. Three
// pattern tiers run in order of specificity and the first tier that
// yields at least one item wins; when all three come up empty a single
// synthetic item is returned so the pipeline never goes empty-handed.
func ParseFreeText(raw string) []RawItem {
	lines := splitLines(raw)

	if items := parseQuantityPriceLines(lines); len(items) > 0 {
		return items
	}
	if items := parsePatternLines(lines, reNumberedItem); len(items) > 0 {
		return items
	}
	if items := parsePatternLines(lines, reLabelPrice); len(items) > 0 {
		return items
	}

	return []RawItem{syntheticItem(raw)}
}

func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseQuantityPriceLines handles "label: $price x qty" and
// "label: qty x $price", with an optional "= total" tail. Generators
// produce both orderings, distinguished by where the $ sits.
func parseQuantityPriceLines(lines []string) []RawItem {
	var items []RawItem
	for _, line := range lines {
		var desc string
		var qty, price, total any
		if m := rePriceTimesQty.FindStringSubmatch(line); m != nil {
			desc, price, qty, total = m[1], m[2], m[3], m[4]
		} else if m := reQtyTimesPrice.FindStringSubmatch(line); m != nil {
			desc, qty, price, total = m[1], m[2], m[3], m[4]
		} else {
			continue
		}

		q := CoerceNumber(qty, 1)
		p := CoerceNumber(price, 0)
		t := CoerceNumber(total, 0)
		if t == 0 {
			t = q * p
		}
		items = append(items, RawItem{
			"description": strings.TrimSpace(desc),
			"quantity":    q,
			"unitPrice":   p,
			"total":       t,
		})
	}
	return items
}

// parsePatternLines handles the single-price tiers: one item per
// matching line, quantity fixed at 1.
func parsePatternLines(lines []string, re *regexp.Regexp) []RawItem {
	var items []RawItem
	for _, line := range lines {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		price := CoerceNumber(m[2], 0)
		items = append(items, RawItem{
			"description": strings.TrimSpace(m[1]),
			"quantity":    float64(1),
			"unitPrice":   price,
			"total":       price,
		})
	}
	return items
}

// syntheticItem is the terminal fallback for fully unstructured input.
// The notes carry a bounded excerpt of the raw text for debugging.
func syntheticItem(raw string) RawItem {
	excerpt := strings.TrimSpace(raw)
	if len(excerpt) > constants.RawExcerptLen {
		excerpt = excerpt[:constants.RawExcerptLen]
	}
	return RawItem{
		"description": constants.FallbackItemName,
		"quantity":    float64(1),
		"unitPrice":   float64(constants.FallbackItemPrice),
		"total":       float64(constants.FallbackItemPrice),
		"notes":       "Could not parse AI response; raw text: " + excerpt,
	}
}
