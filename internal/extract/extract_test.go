package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/screening"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	e := New()

	text, err := e.ExtractText([]byte("John Doe\nGo Engineer"), screening.MediaTypeText)
	require.NoError(t, err)
	assert.Equal(t, "John Doe\nGo Engineer", text)

	text, err = e.ExtractText([]byte("# Jane Doe"), screening.MediaTypeMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe", text)
}

func TestExtractDocx(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>John Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`

	e := New()
	text, err := e.ExtractText(buildDocx(t, docXML), screening.MediaTypeDocx)
	require.NoError(t, err)
	assert.Contains(t, text, "John Doe")
	assert.Contains(t, text, "Senior Engineer")
}

func TestExtractDocxMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = New().ExtractText(buf.Bytes(), screening.MediaTypeDocx)
	assert.Error(t, err)
}

func TestExtractLegacyDocRejected(t *testing.T) {
	_, err := New().ExtractText([]byte{0xD0, 0xCF, 0x11, 0xE0}, screening.MediaTypeDoc)
	assert.Error(t, err)
}

func TestExtractEmptyDocument(t *testing.T) {
	_, err := New().ExtractText(nil, screening.MediaTypeText)
	assert.Error(t, err)
}

func TestExtractUnknownMediaType(t *testing.T) {
	_, err := New().ExtractText([]byte("data"), screening.MediaType("image/png"))
	assert.Error(t, err)
}
