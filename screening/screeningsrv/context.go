package screeningsrv

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/sift/screening"
)

// pdfPlaceholder replaces PDF content for providers that cannot ingest
// documents natively. Processing continues in degraded mode.
const pdfPlaceholder = "[A PDF document was provided but its content could not be passed to this provider directly. Screen with the information available and note the limitation.]"

// ContextBuilder assembles the provider payload for one resume and job
// description pair. It is a pure transformation over its inputs plus the
// extraction collaborator.
type ContextBuilder struct {
	extractor screening.TextExtractor
}

func NewContextBuilder(extractor screening.TextExtractor) *ContextBuilder {
	return &ContextBuilder{extractor: extractor}
}

// Build produces the prepared context for the given capability profile.
// It never fails for a supported media type with non-empty content.
func (b *ContextBuilder) Build(input screening.ScreeningInput, job screening.JobContext, caps screening.CapabilityProfile) (screening.PreparedContext, error) {
	if len(input.Document.Content) == 0 {
		return screening.PreparedContext{}, screening.ErrEmptyDocument(input.FileName)
	}
	if !input.Document.MediaType.Supported() {
		return screening.PreparedContext{}, screening.ErrUnsupportedMediaType(string(input.Document.MediaType))
	}

	var inline []screening.InlineDocument

	jobText := strings.TrimSpace(job.Text)
	if jobText == "" && job.Document != nil {
		text, err := b.resolveDocument("job description", *job.Document, caps, &inline)
		if err != nil {
			return screening.PreparedContext{}, err
		}
		jobText = text
	}

	resumeText, err := b.resolveDocument(input.FileName, input.Document, caps, &inline)
	if err != nil {
		return screening.PreparedContext{}, err
	}

	var sb strings.Builder
	sb.WriteString("Job description:\n")
	if jobText != "" {
		sb.WriteString(jobText)
	} else {
		sb.WriteString("(provided as an attached document)")
	}
	sb.WriteString("\n\nCandidate resume")
	if input.FileName != "" {
		fmt.Fprintf(&sb, " (%s)", input.FileName)
	}
	sb.WriteString(":\n")
	if resumeText != "" {
		sb.WriteString(resumeText)
	} else {
		sb.WriteString("(provided as an attached document)")
	}

	return screening.PreparedContext{
		Instruction: sb.String(),
		Documents:   inline,
	}, nil
}

// resolveDocument turns one document into instruction text, or appends it as
// an inline blob when the provider ingests the media type natively. Media
// type policy:
//   - plain text and markdown decode directly
//   - word-processing documents are always extracted locally
//   - PDF goes inline for multimodal providers, otherwise a placeholder
func (b *ContextBuilder) resolveDocument(name string, doc screening.Document, caps screening.CapabilityProfile, inline *[]screening.InlineDocument) (string, error) {
	if len(doc.Content) == 0 {
		return "", screening.ErrEmptyDocument(name)
	}

	switch {
	case doc.MediaType.PlainText():
		return string(doc.Content), nil
	case doc.MediaType.WordProcessing():
		text, err := b.extractor.ExtractText(doc.Content, doc.MediaType)
		if err != nil {
			return "", screening.ErrExtractionFailed(name, err)
		}
		return text, nil
	case doc.MediaType == screening.MediaTypePDF:
		if caps.InlineDocuments {
			*inline = append(*inline, screening.InlineDocument{
				MediaType: doc.MediaType,
				Data:      doc.Content,
			})
			return "", nil
		}
		return pdfPlaceholder, nil
	}
	return "", screening.ErrUnsupportedMediaType(string(doc.MediaType))
}
