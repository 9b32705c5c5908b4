package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnquote/estimates-engine/internal/estimate"
)

func TestLineItemsSchemaAcceptsWellFormedResponse(t *testing.T) {
	schema := BuildLineItemsJSONSchema()
	doc := []byte(`{"lineItems":[{"description":"Sod installation","quantity":2,"unitPrice":50}]}`)
	assert.NoError(t, ValidateJSONAgainstSchema(schema, doc))
}

func TestLineItemsSchemaRejectsDrift(t *testing.T) {
	schema := BuildLineItemsJSONSchema()
	for name, doc := range map[string]string{
		"missing lineItems":   `{"items":[{"description":"Mulch"}]}`,
		"empty lineItems":     `{"lineItems":[]}`,
		"item without name":   `{"lineItems":[{"quantity":2}]}`,
		"negative unit price": `{"lineItems":[{"description":"Mulch","unitPrice":-5}]}`,
		"zero quantity":       `{"lineItems":[{"description":"Mulch","quantity":0}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(doc)))
		})
	}
}

func TestBuildPrompts(t *testing.T) {
	req := EstimateRequest{
		JobDescription:  "Re-sod front yard",
		PropertyDetails: "Quarter acre, full sun",
		Materials:       nil,
		Business:        BusinessContext{BusinessName: "GreenScape Co"},
	}

	sys := BuildSystemPrompt(req)
	require.Contains(t, sys, "lineItems")
	assert.Contains(t, sys, "GreenScape Co")
	assert.Contains(t, sys, "USD")

	user := BuildUserPrompt(req)
	assert.Contains(t, user, "Re-sod front yard")
	assert.Contains(t, user, "Quarter acre")
	assert.NotContains(t, user, "Saved materials")
}

func TestBuildUserPromptListsMaterials(t *testing.T) {
	req := EstimateRequest{
		JobDescription: "Mulch the beds",
		Materials: []estimate.CatalogMaterial{
			{ID: "m1", Description: "Mulch", UnitPrice: 35},
			{ID: "m2", Description: "Sod installation", UnitPrice: 60},
		},
	}
	user := BuildUserPrompt(req)
	assert.Contains(t, user, "Mulch: $35.00")
	assert.Contains(t, user, "Sod installation: $60.00")
}
