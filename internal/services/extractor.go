package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// AllowedExtension reports whether the uploaded filename carries a supported
// resume extension. Checked before any cache or oracle work.
func AllowedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc":
		return true
	}
	return false
}

type TextExtractor interface {
	ExtractText(fileBytes []byte, filename string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText implements TextExtractor. Dispatches on the filename extension.
func (e *textExtractor) ExtractText(fileBytes []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDFText(fileBytes)
	case ".docx", ".doc":
		return extractDocxText(fileBytes)
	default:
		return "", fmt.Errorf("unsupported file format: %s. Supported formats: .pdf, .docx, .doc", filepath.Ext(filename))
	}
}

func extractPDFText(fileBytes []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// extractDocxText pulls paragraph text out of the word/document.xml part of a
// DOCX archive. Legacy binary .doc files are not zip archives and fail at
// open, which surfaces the same unreadable-document error.
func extractDocxText(fileBytes []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	var document *zip.File
	for _, f := range zipReader.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("no document body found in DOCX")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX document body: %w", err)
	}
	defer rc.Close()

	text, err := collectDocxText(rc)
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX document body: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}

	return text, nil
}

func collectDocxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var textBuilder strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				textBuilder.WriteString("\t")
			case "br":
				textBuilder.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				textBuilder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				textBuilder.Write(t)
			}
		}
	}

	return textBuilder.String(), nil
}
