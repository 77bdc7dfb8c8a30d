package extractor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"

	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// instanceTimeout bounds how long we wait for a pdfium worker.
const instanceTimeout = 30 * time.Second

// pdfiumPool is shared by all PdfiumStrategy values. The single threaded
// pool serializes access to the wasm engine, which is not reentrant.
var (
	pdfiumPool     pdfium.Pool
	pdfiumPoolOnce sync.Once
)

func sharedPool() pdfium.Pool {
	pdfiumPoolOnce.Do(func() {
		pool, err := webassembly.Init(webassembly.Config{MinIdle: 1, MaxIdle: 1, MaxTotal: 1})
		if err != nil {
			panic(fmt.Sprintf("init pdfium pool: %v", err))
		}
		pdfiumPool = pool
	})
	return pdfiumPool
}

// PdfiumStrategy extracts text with the pdfium engine. It handles documents
// the pure Go reader cannot parse, at the cost of a heavier runtime.
type PdfiumStrategy struct {
	pool   pdfium.Pool
	logger *log.Logger
}

// NewPdfiumStrategy creates the pdfium extraction strategy.
func NewPdfiumStrategy(logger *log.Logger) PdfiumStrategy {
	if logger == nil {
		logger = log.Default()
	}
	return PdfiumStrategy{pool: sharedPool(), logger: logger}
}

// Name identifies the strategy.
func (PdfiumStrategy) Name() string { return "pdfium" }

// Extract opens the document in a pooled pdfium instance and collects the
// text of every page. Pages that fail to decode are skipped.
func (s PdfiumStrategy) Extract(ctx context.Context, data []byte) (string, error) {
	instance, err := s.pool.GetInstance(instanceTimeout)
	if err != nil {
		return "", fmt.Errorf("get pdfium instance: %w", err)
	}
	defer func() { _ = instance.Close() }()

	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer func() {
		_, _ = instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})
	}()

	pageCount, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return "", fmt.Errorf("get page count: %w", err)
	}

	var b strings.Builder
	for i := 0; i < pageCount.PageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		pageText, err := instance.GetPageText(&requests.GetPageText{
			Page: requests.Page{
				ByIndex: &requests.PageByIndex{
					Document: doc.Document,
					Index:    i,
				},
			},
		})
		if err != nil {
			s.logger.WarnContext(ctx, "page extraction failed",
				"strategy", s.Name(),
				"page", i+1,
				"error", err,
			)
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimSpace(pageText.Text))
	}

	if b.Len() == 0 {
		return "", ErrNoText
	}
	return b.String(), nil
}
