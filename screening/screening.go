package screening

import (
	"bytes"
	"strings"
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

// Recommendation is the closed verdict enumeration, ordered by strictness.
// The string values are part of the provider wire contract and must not be
// renamed.
type Recommendation string

const (
	RecommendationStrongMatch    Recommendation = "Strong Match"
	RecommendationPotentialMatch Recommendation = "Potential Match"
	RecommendationWeakMatch      Recommendation = "Weak Match"
	RecommendationNotAMatch      Recommendation = "Not a Match"
)

// Recommendations lists the valid verdicts from strongest to weakest.
var Recommendations = []Recommendation{
	RecommendationStrongMatch,
	RecommendationPotentialMatch,
	RecommendationWeakMatch,
	RecommendationNotAMatch,
}

// IsValid reports whether r is one of the four contract values.
func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationStrongMatch, RecommendationPotentialMatch,
		RecommendationWeakMatch, RecommendationNotAMatch:
		return true
	}
	return false
}

// Evidence sentinels a provider may return instead of a resume quote.
const (
	EvidenceNotFound       = "No evidence found"
	EvidenceSkillsListOnly = "Listed in skills section only"
)

// SentinelCandidateName is used when the input content is not recognizable
// as a resume at all.
const SentinelCandidateName = "Not a Resume"

// SkillAssessment scores one job-description requirement against the resume.
type SkillAssessment struct {
	Skill     string `json:"skill"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
	Evidence  string `json:"evidence"`
}

// Result is the canonical screening output for one resume. Field names are
// the provider wire contract.
type Result struct {
	CandidateName   string `json:"candidateName"`
	Location        string `json:"location"`
	TotalExperience string `json:"totalExperience"`
	CurrentRole     string `json:"currentRole"`
	Email           string `json:"email,omitempty"`
	ContactNumber   string `json:"contactNumber,omitempty"`

	// ResumeText is the full extracted text of the source resume, verbatim,
	// used downstream for keyword highlighting.
	ResumeText string `json:"resumeText"`

	OverallMatchScore int               `json:"overallMatchScore"`
	CandidateSummary  string            `json:"candidateSummary"`
	SkillsAnalysis    []SkillAssessment `json:"skillsAnalysis"`
	Strengths         []string          `json:"strengths"`
	Weaknesses        []string          `json:"weaknesses"`
	Recommendation    Recommendation    `json:"recommendation"`
	SuitableRoles     []string          `json:"suitableRoles"`
	TechnicalSkills   []string          `json:"technicalSkills"`
	FunctionalSkills  []string          `json:"functionalSkills"`
}

// ClampScores forces the overall score and every skill score into [0, 100].
func (r *Result) ClampScores() {
	r.OverallMatchScore = clampScore(r.OverallMatchScore)
	for i := range r.SkillsAnalysis {
		r.SkillsAnalysis[i].Score = clampScore(r.SkillsAnalysis[i].Score)
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// MediaType is the declared media type of an input document.
type MediaType string

const (
	MediaTypeText     MediaType = "text/plain"
	MediaTypeMarkdown MediaType = "text/markdown"
	MediaTypeDoc      MediaType = "application/msword"
	MediaTypeDocx     MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypePDF      MediaType = "application/pdf"
)

// Supported reports whether the media type belongs to the supported set.
func (m MediaType) Supported() bool {
	switch m {
	case MediaTypeText, MediaTypeMarkdown, MediaTypeDoc, MediaTypeDocx, MediaTypePDF:
		return true
	}
	return false
}

// WordProcessing reports whether the media type is a word-processing format
// that must be extracted locally before any provider sees it.
func (m MediaType) WordProcessing() bool {
	return m == MediaTypeDoc || m == MediaTypeDocx
}

// PlainText reports whether the content can be decoded directly.
func (m MediaType) PlainText() bool {
	return m == MediaTypeText || m == MediaTypeMarkdown
}

// MediaTypeFromFileName maps a file extension to a supported media type.
// Returns an empty MediaType for unsupported extensions.
func MediaTypeFromFileName(name string) MediaType {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".txt"):
		return MediaTypeText
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return MediaTypeMarkdown
	case strings.HasSuffix(lower, ".doc"):
		return MediaTypeDoc
	case strings.HasSuffix(lower, ".docx"):
		return MediaTypeDocx
	case strings.HasSuffix(lower, ".pdf"):
		return MediaTypePDF
	}
	return ""
}

// Provenance tags how an input document entered the system.
type Provenance string

const (
	ProvenanceLocalUpload Provenance = "local-upload"
	ProvenanceCloudImport Provenance = "cloud-import"
)

// DemoMarkerPayload is the reserved payload of a synthetic cloud-import
// placeholder item. Items carrying it are screened offline with a
// fabricated result; the marker is never produced for real file content.
var DemoMarkerPayload = []byte("sift:demo-placeholder")

// Document is a binary input with its declared media type.
type Document struct {
	Content   []byte    `json:"content"`
	MediaType MediaType `json:"media_type"`
}

// ScreeningInput is one resume to screen.
type ScreeningInput struct {
	ID         kernel.ItemID `json:"id"`
	FileName   string        `json:"file_name"`
	Document   Document      `json:"document"`
	Provenance Provenance    `json:"provenance"`
}

// IsDemoPlaceholder reports whether this item is the reserved synthetic
// placeholder. Only cloud-import items with the exact marker payload
// qualify; anything with real content takes the normal path.
func (in ScreeningInput) IsDemoPlaceholder() bool {
	return in.Provenance == ProvenanceCloudImport &&
		bytes.Equal(in.Document.Content, DemoMarkerPayload)
}

// JobContext is the job description for a batch: raw text, or a document of
// the same supported set, or both absent (which fails the batch pre-flight).
type JobContext struct {
	Text     string    `json:"text"`
	Document *Document `json:"document,omitempty"`
}

// IsEmpty reports whether neither text nor a document is present.
func (j JobContext) IsEmpty() bool {
	return strings.TrimSpace(j.Text) == "" && j.Document == nil
}

// InlineDocument is a raw blob forwarded to a provider that can ingest the
// media type natively.
type InlineDocument struct {
	MediaType MediaType
	Data      []byte
}

// PreparedContext is the provider-agnostic payload produced by the context
// builder: zero or more inline blobs plus the finalized instruction text.
type PreparedContext struct {
	Instruction string
	Documents   []InlineDocument
}

// CapabilityProfile declares what a provider backend can consume natively.
type CapabilityProfile struct {
	// InlineDocuments is true when the backend ingests raw PDF bytes
	// directly (multi-modal document input).
	InlineDocuments bool

	// SchemaConstrained is true when the backend enforces a declared
	// response schema instead of relying on prompt-embedded shape.
	SchemaConstrained bool
}

// ProviderKind selects a provider adapter variant.
type ProviderKind string

const (
	ProviderOpenAI ProviderKind = "openai"
	ProviderGemini ProviderKind = "gemini"
)

// IsValid reports whether the kind names a known adapter.
func (p ProviderKind) IsValid() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}

// ItemFailure is one manifest entry of a batch run.
type ItemFailure struct {
	ItemID   kernel.ItemID `json:"item_id"`
	FileName string        `json:"file_name"`
	Reason   string        `json:"reason"`
}

// BatchOutcome is a completed batch: results for the succeeded subset, in
// input order, plus the ordered failure manifest.
type BatchOutcome struct {
	Results  []Result      `json:"results"`
	Manifest []ItemFailure `json:"manifest"`
}

// ItemState is the per-item state exposed to progress observers.
type ItemState string

const (
	ItemStatePending   ItemState = "pending"
	ItemStateInFlight  ItemState = "in_flight"
	ItemStateSucceeded ItemState = "succeeded"
	ItemStateFailed    ItemState = "failed"
)

// ItemProgress is one progress notification from the orchestrator.
type ItemProgress struct {
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	ItemID   kernel.ItemID `json:"item_id"`
	FileName string        `json:"file_name"`
	State    ItemState     `json:"state"`
}

// JDTemplate is a saved job-description template.
type JDTemplate struct {
	ID        kernel.TemplateID `json:"id"`
	Name      string            `json:"name"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
}

// RunSummary aggregates a completed run for list views.
type RunSummary struct {
	Total        int                    `json:"total"`
	Succeeded    int                    `json:"succeeded"`
	Failed       int                    `json:"failed"`
	AverageScore float64                `json:"average_score"`
	Distribution map[Recommendation]int `json:"distribution"`
}

// Run is an archived batch run.
type Run struct {
	ID             kernel.RunID  `json:"id" db:"id"`
	Provider       ProviderKind  `json:"provider" db:"provider"`
	Model          string        `json:"model" db:"model"`
	JobDescription string        `json:"job_description" db:"job_description"`
	Results        []Result      `json:"results" db:"results"`
	Manifest       []ItemFailure `json:"manifest" db:"manifest"`
	Summary        RunSummary    `json:"summary" db:"summary"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}
