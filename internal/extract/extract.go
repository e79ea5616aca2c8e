package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/Abraxas-365/sift/screening"
)

// Extractor converts supported documents to plain text locally. It backs the
// screening.TextExtractor port.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// ExtractText returns the plain text of data according to its media type.
func (e *Extractor) ExtractText(data []byte, mediaType screening.MediaType) (string, error) {
	if len(data) == 0 {
		return "", errors.New("document is empty")
	}

	switch mediaType {
	case screening.MediaTypeText, screening.MediaTypeMarkdown:
		return string(data), nil
	case screening.MediaTypeDocx:
		return extractDocx(data)
	case screening.MediaTypeDoc:
		// Legacy binary .doc has no reliable pure-Go reader. Callers surface
		// this as an extraction failure for the item.
		return "", errors.New("legacy .doc format cannot be extracted, convert to .docx or PDF")
	case screening.MediaTypePDF:
		return extractPDF(data)
	}
	return "", fmt.Errorf("no extractor for media type %s", mediaType)
}

func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractDocx pulls paragraph text out of the word/document.xml entry of the
// OOXML package.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx package: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("open document part: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("read document part: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", errors.New("docx package has no word/document.xml")
	}

	decoder := xml.NewDecoder(bytes.NewReader(docXML))
	var sb strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document part: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			case "tab":
				sb.WriteString("\t")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
