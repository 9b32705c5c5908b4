package llm

import (
	"context"

	"github.com/lawnquote/estimates-engine/internal/estimate"
)

type BusinessContext struct {
	BusinessName string `json:"business_name,omitempty"`
	ServiceArea  string `json:"service_area,omitempty"`
}

// EstimateRequest carries everything the generator needs to draft an
// estimate: the job to price and the saved-materials snapshot to draw
// from.
type EstimateRequest struct {
	JobDescription  string
	PropertyDetails string
	BudgetHint      string
	DefaultCurrency string

	Materials []estimate.CatalogMaterial

	Business BusinessContext
}

// EstimateGenerator is the interface the serving layer depends on.
// Implementations return the model's raw text; interpreting it is the
// pipeline's job, so a sloppy response is not an error here.
type EstimateGenerator interface {
	GenerateEstimate(ctx context.Context, req EstimateRequest) (string, error)
}
