package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lawnquote/estimates-engine/internal/estimate"
)

func TestEstimateXLSX(t *testing.T) {
	svc := NewService(nil)
	res := estimate.Result{
		LineItems: []estimate.LineItem{
			{Description: "Sod installation", Quantity: 2, UnitPrice: 60, Total: 120, MatchedMaterialID: "m1"},
			{Description: "Mulch", Quantity: 1, UnitPrice: 35, Total: 35, Notes: "Added from saved materials"},
		},
		TotalPrice: 155,
	}

	b, err := svc.EstimateXLSX(res)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Estimate", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Description", got)

	got, err = f.GetCellValue("Estimate", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Sod installation", got)

	got, err = f.GetCellValue("Estimate", "D3")
	require.NoError(t, err)
	assert.Equal(t, "35.00", got)

	// grand total row follows the line items
	got, err = f.GetCellValue("Estimate", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", got)

	got, err = f.GetCellValue("Estimate", "D4")
	require.NoError(t, err)
	assert.Equal(t, "155.00", got)
}
