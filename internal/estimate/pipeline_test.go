package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnquote/estimates-engine/constants"
)

func TestBuildEstimateStructuredWithCatalog(t *testing.T) {
	p := NewPipeline(nil)
	catalog := []CatalogMaterial{{ID: "m1", Description: "Sod installation", UnitPrice: 60}}

	res := p.BuildEstimate(`[{"description":"Sod installation","quantity":2,"unitPrice":50}]`, catalog)

	require.Len(t, res.LineItems, 1)
	item := res.LineItems[0]
	assert.Equal(t, "Sod installation", item.Description)
	assert.Equal(t, 2.0, item.Quantity)
	assert.Equal(t, 60.0, item.UnitPrice) // catalog price is authoritative
	assert.Equal(t, 120.0, item.Total)
	assert.Equal(t, "m1", item.MatchedMaterialID)
	assert.Equal(t, 120.0, res.TotalPrice)
}

func TestBuildEstimateEmptyInput(t *testing.T) {
	p := NewPipeline(nil)

	res := p.BuildEstimate("", nil)

	require.Len(t, res.LineItems, 1)
	assert.Equal(t, constants.DefaultServiceName, res.LineItems[0].Description)
	assert.Equal(t, 100.0, res.LineItems[0].Total)
	assert.Equal(t, 100.0, res.TotalPrice)
}

func TestBuildEstimateFreeTextFallback(t *testing.T) {
	p := NewPipeline(nil)

	res := p.BuildEstimate("Trim hedges: $45\nMow lawn: $30", nil)

	require.Len(t, res.LineItems, 2)
	assert.Equal(t, 1.0, res.LineItems[0].Quantity)
	assert.Equal(t, 45.0, res.LineItems[0].Total)
	assert.Equal(t, 30.0, res.LineItems[1].Total)
	assert.Equal(t, 75.0, res.TotalPrice)
}

func TestBuildEstimateSyntheticFallback(t *testing.T) {
	p := NewPipeline(nil)

	res := p.BuildEstimate("no usable content whatsoever", nil)

	require.Len(t, res.LineItems, 1)
	assert.Equal(t, constants.FallbackItemName, res.LineItems[0].Description)
	assert.NotEmpty(t, res.LineItems[0].Notes)
}

func TestBuildEstimateAppendsUnreferencedMaterials(t *testing.T) {
	p := NewPipeline(nil)
	catalog := []CatalogMaterial{
		{ID: "m1", Description: "Sod installation", UnitPrice: 60},
		{ID: "m2", Description: "Drip irrigation kit", UnitPrice: 220},
	}

	res := p.BuildEstimate(`[{"description":"Sod installation","quantity":2}]`, catalog)

	require.Len(t, res.LineItems, 2)
	appended := res.LineItems[1]
	assert.Equal(t, "Drip irrigation kit", appended.Description)
	assert.Equal(t, 1.0, appended.Quantity)
	assert.Equal(t, 220.0, appended.UnitPrice)
	assert.Equal(t, 220.0, appended.Total)
	assert.Equal(t, constants.NoteAddedFromCatalog, appended.Notes)
	assert.Equal(t, "m2", appended.MatchedMaterialID)
	assert.Equal(t, 120.0+220.0, res.TotalPrice)
}

func TestBuildEstimateSkipsSubstringMentionedMaterials(t *testing.T) {
	p := NewPipeline(nil)
	catalog := []CatalogMaterial{{ID: "m1", Description: "Mulch", UnitPrice: 35}}

	// the item already contains the material's description, so no
	// duplicate row is appended even though the IDs differ
	res := p.BuildEstimate(`[{"description":"Premium mulch delivery and spreading","unitPrice":80}]`, catalog)

	for _, item := range res.LineItems {
		if item.Description == "Mulch" && item.Notes == constants.NoteAddedFromCatalog {
			t.Fatalf("material appended despite substring mention: %+v", item)
		}
	}
}

func TestBuildEstimateNeverEmpty(t *testing.T) {
	p := NewPipeline(nil)
	inputs := []string{
		"",
		"   \n\t  ",
		"random prose with no structure at all",
		"[]",
		`{"lineItems":[]}`,
		`[{"description": "broken`,
		"1234567890",
		"Trim hedges: $45",
		`[{"quantity":"NaN","unitPrice":null}]`,
	}
	for _, raw := range inputs {
		res := p.BuildEstimate(raw, nil)
		assert.NotEmpty(t, res.LineItems, "input %q produced an empty estimate", raw)
	}
}

func TestBuildEstimateSumConsistency(t *testing.T) {
	p := NewPipeline(nil)
	catalog := []CatalogMaterial{
		{ID: "m1", Description: "Sod installation", UnitPrice: 60},
		{ID: "m2", Description: "Mulch", UnitPrice: 35},
	}

	res := p.BuildEstimate("Trim hedges: $45\nMow lawn: $30", catalog)

	var sum float64
	for _, item := range res.LineItems {
		sum += item.Total
	}
	assert.InDelta(t, sum, res.TotalPrice, 1e-9)
}

func TestBuildEstimateTotalConsistency(t *testing.T) {
	p := NewPipeline(nil)

	res := p.BuildEstimate(`[{"description":"Cleanup","quantity":3,"unitPrice":25}]`, nil)

	require.Len(t, res.LineItems, 1)
	item := res.LineItems[0]
	assert.InDelta(t, item.Quantity*item.UnitPrice, item.Total, 1e-9)
}

func TestExtractStageOrder(t *testing.T) {
	stages := extractStages()
	require.Len(t, stages, 2)
	assert.Equal(t, "structured", stages[0].name)
	assert.Equal(t, "freetext", stages[1].name)
}
