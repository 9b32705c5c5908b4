package constants

// Heuristic constants for the estimate pipeline. The thresholds came
// out of empirical tuning against real generator output; components
// take them as overridable fields and only default to these values.
const (
	// MinOverlapTokenLen is the token length a shared word must EXCEED
	// before the word-overlap matcher tier counts it. Keeps "for",
	// "the" and friends from producing spurious catalog matches.
	MinOverlapTokenLen = 3

	// DefaultServiceName is substituted when normalization produces no
	// items at all.
	DefaultServiceName  = "Basic Landscape Service"
	DefaultServicePrice = 100

	// FallbackItemName is the synthetic item emitted when no text
	// pattern matches the raw generator output.
	FallbackItemName  = "AI Generated Item"
	FallbackItemPrice = 100

	// RawExcerptLen bounds the raw-text excerpt embedded in the
	// synthetic item's notes for debuggability.
	RawExcerptLen = 100

	// NoteAddedFromCatalog marks line items appended for catalog
	// materials the generator ignored.
	NoteAddedFromCatalog = "Added from saved materials"
)
