package quote

import (
	"context"
	"fmt"

	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

// PDFUseCase renders the printable document for a quote.
type PDFUseCase struct {
	quoteRepo repository.QuoteRepository
	generator PDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(quoteRepo repository.QuoteRepository, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{quoteRepo: quoteRepo, generator: generator}
}

// DownloadQuotePDF loads the quote and renders it.
// Returns (pdfBytes, filename, nil) on success, domain.ErrNotFound when the
// quote does not exist.
func (uc *PDFUseCase) DownloadQuotePDF(ctx context.Context, quoteID string) ([]byte, string, error) {
	q, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load quote: %w", err)
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}

	pdf, err := uc.generator.GenerateQuotePDF(ctx, q)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: render quote %s: %w", q.QuoteNumber, err)
	}
	return pdf, fmt.Sprintf("quote-%s.pdf", q.QuoteNumber), nil
}
