package estimate

import (
	"log/slog"
	"strings"

	"github.com/lawnquote/estimates-engine/constants"
	"github.com/lawnquote/estimates-engine/internal/observability"
)

// Pipeline turns raw generator text into a priced, catalog-reconciled
// estimate. It is a pure transform: no I/O, no shared state, and no
// error return. Every degenerate input degrades to the next fallback,
// so BuildEstimate always produces at least one line item. Safe for
// concurrent use across distinct requests.
type Pipeline struct {
	log        *slog.Logger
	matcher    *Matcher
	normalizer *Normalizer
}

func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	matcher := NewMatcher()
	return &Pipeline{
		log:        logger,
		matcher:    matcher,
		normalizer: NewNormalizer(matcher),
	}
}

// extractStage is one attempt in the ordered fallback cascade. The
// cascade is data, not control flow, so its order is testable.
type extractStage struct {
	name string
	run  func(raw string) ([]RawItem, bool)
}

func extractStages() []extractStage {
	return []extractStage{
		{name: "structured", run: ParseStructured},
		{name: "freetext", run: func(raw string) ([]RawItem, bool) {
			items := ParseFreeText(raw)
			return items, len(items) > 0
		}},
	}
}

// BuildEstimate runs the full pipeline: extraction cascade, item
// normalization, catalog augmentation, and total summation.
func (p *Pipeline) BuildEstimate(raw string, catalog []CatalogMaterial) Result {
	var rawItems []RawItem
	stage := "none"
	if strings.TrimSpace(raw) != "" {
		for _, st := range extractStages() {
			if items, ok := st.run(raw); ok {
				rawItems, stage = items, st.name
				break
			}
			if st.name == "structured" {
				observability.StructuredParseFailures.Inc()
			}
		}
	}

	items := p.normalizer.Normalize(rawItems, catalog)
	if len(items) == 0 {
		// empty input lands here, as does a pathological structured
		// parse that decoded to nothing
		items = []LineItem{defaultServiceItem()}
		observability.SyntheticFallbacks.Inc()
	}

	items = appendUnreferencedMaterials(items, catalog)

	var total float64
	matched := 0
	for i := range items {
		total += CoerceNumber(items[i].Total, 0)
		if items[i].MatchedMaterialID != "" {
			matched++
		}
	}

	observability.EstimatesBuilt.Inc()
	p.log.Debug("estimate.build.ok",
		"stage", stage,
		"raw_len", len(raw),
		"catalog_size", len(catalog),
		"line_items", len(items),
		"matched_items", matched,
		"total_price", total,
	)
	return Result{LineItems: items, TotalPrice: total}
}

// appendUnreferencedMaterials adds a line item for every catalog
// material the generator ignored: the user picked those materials for
// this estimate, so they must appear. A material counts as referenced
// when an item carries its ID or already contains its description.
func appendUnreferencedMaterials(items []LineItem, catalog []CatalogMaterial) []LineItem {
	for i := range catalog {
		mat := &catalog[i]
		if materialReferenced(items, mat) {
			continue
		}
		items = append(items, LineItem{
			Description:       mat.Description,
			Quantity:          1,
			UnitPrice:         mat.UnitPrice,
			Total:             mat.UnitPrice,
			Notes:             constants.NoteAddedFromCatalog,
			MatchedMaterialID: mat.ID,
		})
	}
	return items
}

func materialReferenced(items []LineItem, mat *CatalogMaterial) bool {
	matDesc := strings.ToLower(strings.TrimSpace(mat.Description))
	for i := range items {
		if items[i].MatchedMaterialID == mat.ID {
			return true
		}
		if matDesc != "" && strings.Contains(strings.ToLower(items[i].Description), matDesc) {
			return true
		}
	}
	return false
}

func defaultServiceItem() LineItem {
	return LineItem{
		Description: constants.DefaultServiceName,
		Quantity:    1,
		UnitPrice:   constants.DefaultServicePrice,
		Total:       constants.DefaultServicePrice,
		Notes:       "Added automatically because the AI response contained no line items",
	}
}
