package llm

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt composes the system message: output contract,
// pricing rules, and business context.
func BuildSystemPrompt(req EstimateRequest) string {
	defCur := strings.TrimSpace(req.DefaultCurrency)
	if defCur == "" {
		defCur = "USD"
	}

	var ctxBits []string
	if n := strings.TrimSpace(req.Business.BusinessName); n != "" {
		ctxBits = append(ctxBits, "Business: "+n+".")
	}
	if a := strings.TrimSpace(req.Business.ServiceArea); a != "" {
		ctxBits = append(ctxBits, "Service area: "+a+".")
	}

	parts := []string{
		"You are a landscaping estimator. Return ONLY JSON that matches the provided JSON Schema.",
		"Produce a 'lineItems' array; each entry needs 'description', 'quantity', and 'unitPrice'.",
		"All prices are in " + defCur + ".",
		"When a saved material fits the job, reuse its exact description so it can be matched to the catalog.",
		"Quantities must be realistic for the described job; never invent placeholder items.",
		"Never output null. If a field is unknown, omit it.",
	}
	if len(ctxBits) > 0 {
		parts = append(parts, "Business context: "+strings.Join(ctxBits, " "))
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the job description, property details, and
// the saved-materials catalog the model should price against.
func BuildUserPrompt(req EstimateRequest) string {
	var b strings.Builder
	b.WriteString("Job description:\n")
	b.WriteString(strings.TrimSpace(req.JobDescription))
	b.WriteString("\n")
	if d := strings.TrimSpace(req.PropertyDetails); d != "" {
		b.WriteString("\nProperty details:\n")
		b.WriteString(d)
		b.WriteString("\n")
	}
	if h := strings.TrimSpace(req.BudgetHint); h != "" {
		b.WriteString("\nBudget guidance: ")
		b.WriteString(h)
		b.WriteString("\n")
	}
	if len(req.Materials) > 0 {
		b.WriteString("\nSaved materials (use these descriptions and prices where applicable):\n")
		for _, m := range req.Materials {
			fmt.Fprintf(&b, "- %s: $%.2f\n", m.Description, m.UnitPrice)
		}
	}
	return b.String()
}
