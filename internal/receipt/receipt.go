// Package receipt renders check-in receipts as plain text and PDF files.
package receipt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"github.com/kingrea/staymitar/internal/hotel"
)

// Header is the hotel identity printed at the top of every receipt.
type Header struct {
	Name     string
	Location string
	Currency string
}

// Receipt is one rendered receipt and where it landed.
type Receipt struct {
	Number   string
	IssuedAt time.Time
	Booking  hotel.Booking
	TextPath string
	PDFPath  string
}

// Renderer writes receipts into a directory.
type Renderer struct {
	dir    string
	header Header
	now    func() time.Time
	number func() string

	uncompressed bool
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithClock overrides the issue time source.
func WithClock(clock func() time.Time) Option {
	return func(r *Renderer) {
		if clock != nil {
			r.now = clock
		}
	}
}

// WithNumbers overrides receipt number generation.
func WithNumbers(next func() string) Option {
	return func(r *Renderer) {
		if next != nil {
			r.number = next
		}
	}
}

// NewRenderer returns a renderer writing into dir.
func NewRenderer(dir string, header Header, opts ...Option) *Renderer {
	if strings.TrimSpace(header.Currency) == "" {
		header.Currency = "Rs."
	}
	r := &Renderer{
		dir:    dir,
		header: header,
		now:    time.Now,
		number: NewNumber,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the output directory.
func (r *Renderer) Dir() string {
	return r.dir
}

// NewNumber returns a fresh receipt number such as RCP-1A2B3C4D.
func NewNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "RCP-" + strings.ToUpper(id[:8])
}

// Render writes <number>.txt and <number>.pdf for b.
func (r *Renderer) Render(b hotel.Booking) (Receipt, error) {
	rec := Receipt{
		Number:   r.number(),
		IssuedAt: r.now().UTC(),
		Booking:  b,
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return Receipt{}, fmt.Errorf("receipt: ensure dir: %w", err)
	}

	rec.TextPath = filepath.Join(r.dir, rec.Number+".txt")
	if err := os.WriteFile(rec.TextPath, []byte(r.Text(rec)), 0o644); err != nil {
		return Receipt{}, fmt.Errorf("receipt: write text: %w", err)
	}

	pdf, err := r.PDF(rec)
	if err != nil {
		return Receipt{}, err
	}
	rec.PDFPath = filepath.Join(r.dir, rec.Number+".pdf")
	if err := os.WriteFile(rec.PDFPath, pdf, 0o644); err != nil {
		return Receipt{}, fmt.Errorf("receipt: write pdf: %w", err)
	}
	return rec, nil
}

// Text formats rec as a fixed-width plain text receipt.
func (r *Renderer) Text(rec Receipt) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 44)
	sb.WriteString(rule + "\n")
	sb.WriteString(center(r.header.Name, len(rule)) + "\n")
	if r.header.Location != "" {
		sb.WriteString(center(r.header.Location, len(rule)) + "\n")
	}
	sb.WriteString(rule + "\n")
	for _, row := range r.rows(rec) {
		fmt.Fprintf(&sb, "%-12s: %s\n", row[0], row[1])
	}
	sb.WriteString(rule + "\n")
	sb.WriteString(center(footer, len(rule)) + "\n")
	return sb.String()
}

// PDF renders rec as an A4 PDF document.
func (r *Renderer) PDF(rec Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt "+rec.Number, true)
	pdf.SetCompression(!r.uncompressed)
	pdf.AddPage()
	// Core fonts are cp1252; runes outside it cannot be drawn.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(r.header.Name), "", 1, "C", false, 0, "")
	if r.header.Location != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 7, tr(r.header.Location), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range r.rows(rec) {
		pdf.Cell(40, 7, tr(row[0]))
		pdf.Cell(0, 7, tr(": "+row[1]))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr(footer), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

const footer = "Thank you for staying with us!"

func (r *Renderer) rows(rec Receipt) [][2]string {
	b := rec.Booking
	return [][2]string{
		{"Receipt No", rec.Number},
		{"Issued", rec.IssuedAt.Format("2006-01-02 15:04 MST")},
		{"Name", b.Name},
		{"Address", b.Address},
		{"Mobile", b.Mobile},
		{"Room", fmt.Sprintf("%d", b.RoomNumber)},
		{"Nights", fmt.Sprintf("%d", b.Days)},
		{"Total Bill", fmt.Sprintf("%s %.2f", r.header.Currency, b.Price)},
	}
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
