package screening

import (
	"context"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

// Provider is one LLM backend able to screen a prepared context.
type Provider interface {
	Kind() ProviderKind
	Capabilities() CapabilityProfile

	// Screen submits the prepared context and returns the canonical result.
	// Implementations validate and clamp the response before returning it.
	Screen(ctx context.Context, prepared PreparedContext, model string) (*Result, error)
}

// TextExtractor turns a word-processing or PDF document into plain text.
// Extraction is local and synchronous.
type TextExtractor interface {
	ExtractText(data []byte, mediaType MediaType) (string, error)
}

// TemplateStore persists reusable job description templates.
type TemplateStore interface {
	Save(ctx context.Context, tpl *JDTemplate) error
	Get(ctx context.Context, id kernel.TemplateID) (*JDTemplate, error)
	List(ctx context.Context) ([]JDTemplate, error)
	Delete(ctx context.Context, id kernel.TemplateID) error
}

// RunRepository archives completed batch runs.
type RunRepository interface {
	Create(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id kernel.RunID) (*Run, error)
	List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[Run], error)
}

// ProgressFn receives per-item state transitions during a batch run.
// A nil ProgressFn is valid and disables reporting.
type ProgressFn func(p ItemProgress)
