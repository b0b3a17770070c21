package services

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"hirely/matching-api/internal/apperrors"
)

// PDFParserService extracts resume text from uploaded PDF documents.
// Malformed or empty documents fail with UnreadableDocument so callers can
// reject the upload instead of storing an empty resume.
type PDFParserService interface {
	ExtractText(filePath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %v: %w", err, apperrors.ErrUnreadableDocument)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := CleanText(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("no text content found in PDF: %w", apperrors.ErrUnreadableDocument)
	}

	return text, nil
}
