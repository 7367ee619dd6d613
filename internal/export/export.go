// Package export renders a document into shareable formats: PNG through
// the raster surface and PDF through gofpdf.
package export

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/render"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/store"
)

// nominalSurface is the reference pixel dimension stroke widths are
// proportioned against when mapped to physical PDF units.
const nominalSurface = 500.0

// pdfMargin is the blank border around the drawing on a PDF page, in mm.
const pdfMargin = 10.0

// PNG renders the document at the given pixel size and writes it as PNG.
func PNG(w io.Writer, doc ink.Document, width, height int) error {
	surface, err := render.NewRaster(width, height)
	if err != nil {
		return err
	}
	st := store.New(store.WithSurface(surface))
	st.LoadDocument(doc)
	return png.Encode(w, surface.Image())
}

// PNGFile is PNG writing to a file.
func PNGFile(path string, doc ink.Document, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return PNG(f, doc, width, height)
}

// PDF renders the document onto a single A4 landscape page. Strokes keep
// their color, opacity and pressure-scaled widths; single-point strokes
// become filled discs, matching the raster renderer.
func PDF(w io.Writer, doc ink.Document) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	pageW, pageH := p.GetPageSize()
	drawW := pageW - 2*pdfMargin
	drawH := pageH - 2*pdfMargin
	scale := drawW
	if drawH < scale {
		scale = drawH
	}

	for _, s := range doc.Strokes {
		r, g, b, err := ink.ParseHexColor(s.Color)
		if err != nil {
			ink.Logger().Warn("skipping stroke with bad color", "id", s.ID, "color", s.Color)
			continue
		}
		cr, cg, cb := int(r*255), int(g*255), int(b*255)
		p.SetAlpha(ink.Clamp01(s.Opacity), "Normal")

		if len(s.Points) == 1 {
			pt := s.Points[0]
			p.SetFillColor(cr, cg, cb)
			radius := pt.Pressure * s.BaseWidth / 2 / nominalSurface * scale
			if radius > 0 {
				p.Circle(pdfMargin+pt.X*drawW, pdfMargin+pt.Y*drawH, radius, "F")
			}
			continue
		}

		p.SetDrawColor(cr, cg, cb)
		for i := 1; i < len(s.Points); i++ {
			from, to := s.Points[i-1], s.Points[i]
			width := to.Pressure * s.BaseWidth / nominalSurface * scale
			if width <= 0 {
				continue
			}
			p.SetLineWidth(width)
			p.Line(
				pdfMargin+from.X*drawW, pdfMargin+from.Y*drawH,
				pdfMargin+to.X*drawW, pdfMargin+to.Y*drawH,
			)
		}
	}
	p.SetAlpha(1, "Normal")

	if p.Err() {
		return fmt.Errorf("pdf build failed: %w", p.Error())
	}
	return p.Output(w)
}

// PDFFile is PDF writing to a file.
func PDFFile(path string, doc ink.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return PDF(f, doc)
}
