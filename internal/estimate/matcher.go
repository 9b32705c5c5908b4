package estimate

import (
	"strings"

	"github.com/lawnquote/estimates-engine/constants"
)

// Matcher reconciles free-text item descriptions against a catalog of
// saved materials. Tiers run in strict precedence order; the first hit
// wins:
//
//  1. exact: case-insensitive full-string equality
//  2. containment: case-insensitive substring in either direction
//  3. word overlap: a shared whitespace token longer than MinTokenLen
//
// Within a tier, catalog order decides ties.
type Matcher struct {
	// MinTokenLen is the length a shared token must exceed for the
	// word-overlap tier. Defaults to constants.MinOverlapTokenLen.
	MinTokenLen int
}

func NewMatcher() *Matcher {
	return &Matcher{MinTokenLen: constants.MinOverlapTokenLen}
}

// FindMatch returns the best catalog match for description, or nil.
func (m *Matcher) FindMatch(description string, catalog []CatalogMaterial) *CatalogMaterial {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" || len(catalog) == 0 {
		return nil
	}

	// tier 1: exact
	for i := range catalog {
		if strings.ToLower(strings.TrimSpace(catalog[i].Description)) == desc {
			return &catalog[i]
		}
	}

	// tier 2: containment, either direction
	for i := range catalog {
		cand := strings.ToLower(strings.TrimSpace(catalog[i].Description))
		if cand == "" {
			continue
		}
		if strings.Contains(desc, cand) || strings.Contains(cand, desc) {
			return &catalog[i]
		}
	}

	// tier 3: word overlap
	minLen := m.MinTokenLen
	if minLen <= 0 {
		minLen = constants.MinOverlapTokenLen
	}
	descTokens := strings.Fields(desc)
	for i := range catalog {
		for _, ct := range strings.Fields(strings.ToLower(catalog[i].Description)) {
			if len(ct) <= minLen {
				continue
			}
			for _, dt := range descTokens {
				if ct == dt {
					return &catalog[i]
				}
			}
		}
	}

	return nil
}
