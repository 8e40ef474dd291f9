// -----------------------------------------------------------------------
// PDF Exporter Service - Render finished designs as print-ready PDFs
// Uses go-pdf/fpdf for Go-native PDF generation
// -----------------------------------------------------------------------

package pdf

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// Exporter renders a persisted design into a single-page PDF whose page
// matches the raster's aspect ratio, with a summary block underneath.
type Exporter struct {
	logger arbor.ILogger
}

// NewExporter creates a new PDF exporter service
func NewExporter(logger arbor.ILogger) *Exporter {
	return &Exporter{logger: logger}
}

// Export produces the PDF bytes for one sample and its PNG raster
func (e *Exporter) Export(sample *models.Sample, image []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to decode design image: %w", err)
	}

	// Page width is fixed at 210mm (A4 width); height follows the image
	// plus room for the summary block.
	const pageWidth = 210.0
	const margin = 10.0
	const summaryHeight = 42.0

	imageWidth := pageWidth - 2*margin
	imageHeight := imageWidth * float64(cfg.Height) / float64(cfg.Width)
	pageHeight := imageHeight + summaryHeight + 2*margin

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(sample.ID, opts, bytes.NewReader(image))
	pdf.ImageOptions(sample.ID, margin, margin, imageWidth, imageHeight, false, opts, 0, "")

	y := margin + imageHeight + 4
	pdf.SetY(y)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, sample.Copy.Headline, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, sample.Copy.Subtext, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Category: %s | Platform: %s | Style: %s", sample.Category, sample.Platform, sample.Style), "", 1, "L", false, 0, "")
	if sample.EvaluationScores != nil {
		pdf.CellFormat(0, 5, fmt.Sprintf("Quality score: %.1f/10", sample.EvaluationScores.Average()), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Design %s generated %s", sample.ID, sample.Timestamp.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	e.logger.Debug().
		Str("sample_id", sample.ID).
		Int("bytes", buf.Len()).
		Msg("Design exported to PDF")

	return buf.Bytes(), nil
}
