// Package pdf renders markdown documents to PDF.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// ConvertMarkdownToPDF converts a markdown file to PDF next to it and returns the absolute PDF path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}
	return Render(content, strings.TrimSuffix(markdownPath, ".md")+".pdf")
}

// Render writes markdown content as a PDF at pdfPath.
func Render(markdown []byte, pdfPath string) (string, error) {
	if len(markdown) == 0 {
		return "", fmt.Errorf("empty markdown for %s", pdfPath)
	}
	if err := os.MkdirAll(filepath.Dir(pdfPath), 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(pdfPath), err)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(markdown); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
