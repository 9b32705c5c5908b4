package server

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lawnquote/estimates-engine/internal/catalog"
	"github.com/lawnquote/estimates-engine/internal/estimate"
	"github.com/lawnquote/estimates-engine/internal/export"
	"github.com/lawnquote/estimates-engine/internal/llm"
)

// EstimateHandler wires the generator, the catalog snapshot, and the
// normalization pipeline behind one endpoint.
type EstimateHandler struct {
	log       *slog.Logger
	materials catalog.MaterialRepository
	generator llm.EstimateGenerator
	pipeline  *estimate.Pipeline
	exporter  *export.Service
}

func NewEstimateHandler(
	logger *slog.Logger,
	materials catalog.MaterialRepository,
	generator llm.EstimateGenerator,
	pipeline *estimate.Pipeline,
	exporter *export.Service,
) *EstimateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EstimateHandler{
		log:       logger,
		materials: materials,
		generator: generator,
		pipeline:  pipeline,
		exporter:  exporter,
	}
}

// RegisterRoutes mounts the estimate endpoints on the app.
func (h *EstimateHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/estimates/generate", h.Generate)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

type generateRequest struct {
	ProfileID       string `json:"profileId"`
	JobDescription  string `json:"jobDescription"`
	PropertyDetails string `json:"propertyDetails"`
	BudgetHint      string `json:"budgetHint"`
	Currency        string `json:"currency"`
}

// Generate produces an estimate for the described job. The pipeline
// guarantees a usable result, so the only client-visible failures are
// malformed requests: a slow catalog or a misbehaving generator
// degrades to a best-effort estimate instead of an error.
func (h *EstimateHandler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return Error(c, fiber.StatusBadRequest, "jobDescription is required")
	}
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid profileId")
	}

	materials, err := h.materials.ListByProfile(c.Context(), profileID)
	if err != nil {
		// the estimate still goes out without the catalog
		h.log.Warn("estimates.generate.catalog_unavailable",
			"profile_id", profileID, "error", err)
		materials = nil
	}

	raw, err := h.generator.GenerateEstimate(c.Context(), llm.EstimateRequest{
		JobDescription:  req.JobDescription,
		PropertyDetails: req.PropertyDetails,
		BudgetHint:      req.BudgetHint,
		DefaultCurrency: req.Currency,
		Materials:       materials,
	})
	if err != nil {
		// empty raw text lets the pipeline fall back to its default item
		h.log.Warn("estimates.generate.generator_degraded",
			"profile_id", profileID, "error", err)
		raw = ""
	}

	result := h.pipeline.BuildEstimate(raw, materials)

	if c.Query("format") == "xlsx" {
		b, err := h.exporter.EstimateXLSX(result)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to export estimate")
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="estimate.xlsx"`)
		return c.Send(b)
	}
	return c.JSON(result)
}
