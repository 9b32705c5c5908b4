package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFieldSynonyms(t *testing.T) {
	n := NewNormalizer(nil)
	items := n.Normalize([]RawItem{
		{"description": "Sod installation", "quantity": 2.0, "unitPrice": 50.0},
		{"name": "Mulch", "price": 35.0},
		{"item": "Edging", "qty": "4", "price": "12.50"},
	}, nil)

	require.Len(t, items, 3)
	assert.Equal(t, "Sod installation", items[0].Description)
	assert.Equal(t, 100.0, items[0].Total)

	assert.Equal(t, "Mulch", items[1].Description)
	assert.Equal(t, 1.0, items[1].Quantity)
	assert.Equal(t, 35.0, items[1].UnitPrice)

	assert.Equal(t, "Edging", items[2].Description)
	assert.Equal(t, 4.0, items[2].Quantity)
	assert.Equal(t, 12.5, items[2].UnitPrice)
	assert.Equal(t, 50.0, items[2].Total)
}

func TestNormalizeDefaults(t *testing.T) {
	n := NewNormalizer(nil)
	items := n.Normalize([]RawItem{{}}, nil)

	require.Len(t, items, 1)
	assert.Equal(t, "Unnamed item", items[0].Description)
	assert.Equal(t, 1.0, items[0].Quantity)
	assert.Equal(t, 0.0, items[0].UnitPrice)
	assert.Equal(t, 0.0, items[0].Total)
	assert.Empty(t, items[0].MatchedMaterialID)
}

func TestNormalizeGarbledNumbers(t *testing.T) {
	n := NewNormalizer(nil)
	items := n.Normalize([]RawItem{
		{"description": "Mow lawn", "quantity": "a few", "unitPrice": "about thirty"},
		{"description": "Trim hedges", "quantity": -2.0, "unitPrice": -45.0},
	}, nil)

	require.Len(t, items, 2)
	assert.Equal(t, 1.0, items[0].Quantity)
	assert.Equal(t, 0.0, items[0].UnitPrice)
	// negative quantities and prices are clamped to the defaults
	assert.Equal(t, 1.0, items[1].Quantity)
	assert.Equal(t, 0.0, items[1].UnitPrice)
}

func TestNormalizeCatalogPriceWins(t *testing.T) {
	n := NewNormalizer(nil)
	catalog := []CatalogMaterial{{ID: "m1", Description: "Sod installation", UnitPrice: 60}}

	items := n.Normalize([]RawItem{
		{"description": "Sod installation", "quantity": 2.0, "unitPrice": 50.0},
	}, catalog)

	require.Len(t, items, 1)
	assert.Equal(t, 60.0, items[0].UnitPrice)
	assert.Equal(t, 120.0, items[0].Total)
	assert.Equal(t, "m1", items[0].MatchedMaterialID)
	assert.Contains(t, items[0].Notes, "60.00")
}

func TestNormalizeExplicitTotalPreferred(t *testing.T) {
	n := NewNormalizer(nil)
	items := n.Normalize([]RawItem{
		{"description": "Cleanup", "quantity": 2.0, "unitPrice": 40.0, "total": 70.0},
		{"description": "Hauling", "quantity": 2.0, "unitPrice": 40.0, "total": 0.0},
	}, nil)

	require.Len(t, items, 2)
	assert.Equal(t, 70.0, items[0].Total) // explicit non-zero total trusted
	assert.Equal(t, 80.0, items[1].Total) // zero total recomputed
}

func TestNormalizeSuppliedNotesPassThrough(t *testing.T) {
	n := NewNormalizer(nil)
	catalog := []CatalogMaterial{{ID: "m1", Description: "Mulch", UnitPrice: 35}}

	items := n.Normalize([]RawItem{
		{"description": "Mulch", "notes": "two cubic yards"},
	}, catalog)

	require.Len(t, items, 1)
	assert.Equal(t, "two cubic yards", items[0].Notes)
}
