package screeningsrv

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/pkg/errx"
	"github.com/Abraxas-365/sift/screening"
)

// stubExtractor returns a canned string or error for every document.
type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText([]byte, screening.MediaType) (string, error) {
	return s.text, s.err
}

func textInput(name, content string) screening.ScreeningInput {
	return screening.ScreeningInput{
		ID:       "item-1",
		FileName: name,
		Document: screening.Document{
			Content:   []byte(content),
			MediaType: screening.MediaTypeText,
		},
		Provenance: screening.ProvenanceLocalUpload,
	}
}

var textCaps = screening.CapabilityProfile{InlineDocuments: false, SchemaConstrained: false}
var inlineCaps = screening.CapabilityProfile{InlineDocuments: true, SchemaConstrained: true}

func TestBuildPlainTextResumeAndJob(t *testing.T) {
	b := NewContextBuilder(stubExtractor{})

	prepared, err := b.Build(
		textInput("jane.txt", "Jane Doe, Go engineer"),
		screening.JobContext{Text: "Senior Go Engineer, Kubernetes required"},
		textCaps,
	)
	require.NoError(t, err)

	assert.Contains(t, prepared.Instruction, "Senior Go Engineer, Kubernetes required")
	assert.Contains(t, prepared.Instruction, "Jane Doe, Go engineer")
	assert.Contains(t, prepared.Instruction, "jane.txt")
	assert.Empty(t, prepared.Documents)
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewContextBuilder(stubExtractor{})
	input := textInput("jane.txt", "Jane Doe")
	job := screening.JobContext{Text: "Go Engineer"}

	first, err := b.Build(input, job, textCaps)
	require.NoError(t, err)
	second, err := b.Build(input, job, textCaps)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildRejectsUnsupportedMediaType(t *testing.T) {
	b := NewContextBuilder(stubExtractor{})
	input := screening.ScreeningInput{
		FileName: "photo.png",
		Document: screening.Document{Content: []byte{1, 2}, MediaType: "image/png"},
	}

	_, err := b.Build(input, screening.JobContext{Text: "JD"}, textCaps)
	assert.True(t, errx.IsCode(err, screening.CodeUnsupportedMediaType))
}

func TestBuildRejectsEmptyDocument(t *testing.T) {
	b := NewContextBuilder(stubExtractor{})
	input := screening.ScreeningInput{
		FileName: "empty.txt",
		Document: screening.Document{MediaType: screening.MediaTypeText},
	}

	_, err := b.Build(input, screening.JobContext{Text: "JD"}, textCaps)
	assert.True(t, errx.IsCode(err, screening.CodeEmptyDocument))
}

func TestBuildPDFInlineForMultimodalProvider(t *testing.T) {
	b := NewContextBuilder(stubExtractor{})
	pdf := []byte("%PDF-1.7 fake")
	input := screening.ScreeningInput{
		FileName: "jane.pdf",
		Document: screening.Document{Content: pdf, MediaType: screening.MediaTypePDF},
	}

	prepared, err := b.Build(input, screening.JobContext{Text: "JD"}, inlineCaps)
	require.NoError(t, err)

	require.Len(t, prepared.Documents, 1)
	assert.Equal(t, screening.MediaTypePDF, prepared.Documents[0].MediaType)
	assert.Equal(t, pdf, prepared.Documents[0].Data)
	assert.Contains(t, prepared.Instruction, "attached document")
	assert.NotContains(t, prepared.Instruction, pdfPlaceholder)
}

func TestBuildPDFPlaceholderForTextOnlyProvider(t *testing.T) {
	b := NewContextBuilder(stubExtractor{})
	input := screening.ScreeningInput{
		FileName: "jane.pdf",
		Document: screening.Document{Content: []byte("%PDF"), MediaType: screening.MediaTypePDF},
	}

	prepared, err := b.Build(input, screening.JobContext{Text: "JD"}, textCaps)
	require.NoError(t, err)

	assert.Empty(t, prepared.Documents)
	assert.Contains(t, prepared.Instruction, pdfPlaceholder)
}

func TestBuildWordProcessingExtractedLocally(t *testing.T) {
	b := NewContextBuilder(stubExtractor{text: "extracted docx body"})
	input := screening.ScreeningInput{
		FileName: "jane.docx",
		Document: screening.Document{Content: []byte("PK fake"), MediaType: screening.MediaTypeDocx},
	}

	// Even an inline-capable provider gets locally extracted text for
	// word-processing formats.
	prepared, err := b.Build(input, screening.JobContext{Text: "JD"}, inlineCaps)
	require.NoError(t, err)

	assert.Empty(t, prepared.Documents)
	assert.Contains(t, prepared.Instruction, "extracted docx body")
}

func TestBuildExtractionFailure(t *testing.T) {
	b := NewContextBuilder(stubExtractor{err: errors.New("corrupt file")})
	input := screening.ScreeningInput{
		FileName: "jane.docx",
		Document: screening.Document{Content: []byte("PK"), MediaType: screening.MediaTypeDocx},
	}

	_, err := b.Build(input, screening.JobContext{Text: "JD"}, textCaps)
	assert.True(t, errx.IsCode(err, screening.CodeExtractionFailed))
}

func TestBuildJobDescriptionDocument(t *testing.T) {
	b := NewContextBuilder(stubExtractor{})
	job := screening.JobContext{
		Document: &screening.Document{
			Content:   []byte("JD from file"),
			MediaType: screening.MediaTypeText,
		},
	}

	prepared, err := b.Build(textInput("jane.txt", "Jane"), job, textCaps)
	require.NoError(t, err)
	assert.Contains(t, prepared.Instruction, "JD from file")
	assert.True(t, strings.Index(prepared.Instruction, "JD from file") <
		strings.Index(prepared.Instruction, "Jane"))
}
