package receipt

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kingrea/staymitar/internal/hotel"
)

func testBooking() hotel.Booking {
	return hotel.Booking{
		Name:       "Alice",
		Address:    "12 Lake Road",
		Mobile:     "9876543210",
		RoomNumber: 3,
		Days:       3,
		Price:      5400,
	}
}

func TestNewNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^RCP-[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		n := NewNumber()
		require.Regexp(t, pattern, n)
		seen[n] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestRenderWritesTextAndPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	issued := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	r := NewRenderer(dir, Header{Name: "ProjectWorlds Hotel & Resorts", Location: "Bhilai, Chhattisgarh"},
		WithClock(func() time.Time { return issued }),
		WithNumbers(func() string { return "RCP-0000ABCD" }),
	)

	rec, err := r.Render(testBooking())
	require.NoError(t, err)
	require.Equal(t, "RCP-0000ABCD", rec.Number)
	require.Equal(t, filepath.Join(dir, "RCP-0000ABCD.txt"), rec.TextPath)
	require.Equal(t, filepath.Join(dir, "RCP-0000ABCD.pdf"), rec.PDFPath)

	text, err := os.ReadFile(rec.TextPath)
	require.NoError(t, err)
	body := string(text)
	for _, want := range []string{
		"ProjectWorlds Hotel & Resorts",
		"Bhilai, Chhattisgarh",
		"Receipt No  : RCP-0000ABCD",
		"Issued      : 2026-03-01 09:30 UTC",
		"Name        : Alice",
		"Address     : 12 Lake Road",
		"Mobile      : 9876543210",
		"Room        : 3",
		"Nights      : 3",
		"Total Bill  : Rs. 5400.00",
		"Thank you for staying with us!",
	} {
		require.Contains(t, body, want)
	}

	pdf, err := os.ReadFile(rec.PDFPath)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")), "pdf header missing")
}

func TestTextUsesConfiguredCurrency(t *testing.T) {
	r := NewRenderer(t.TempDir(), Header{Name: "Lakeview Inn", Currency: "INR"})
	text := r.Text(Receipt{Number: "RCP-1", Booking: testBooking()})
	require.Contains(t, text, "Total Bill  : INR 5400.00")
	require.NotContains(t, text, "Rs.")
}

func TestPDFWritesLatinAccentsAsCP1252(t *testing.T) {
	r := NewRenderer(t.TempDir(), Header{Name: "Lakeview Inn", Location: "Bhilai"})
	r.uncompressed = true
	b := testBooking()
	b.Name = "Zoë"

	pdf, err := r.PDF(Receipt{Number: "RCP-1", Booking: b})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	require.True(t, bytes.Contains(pdf, []byte("Zo\xeb")), "name not translated to cp1252")
	require.False(t, bytes.Contains(pdf, []byte("Zo\xc3\xab")), "name written as raw UTF-8")

	text := r.Text(Receipt{Number: "RCP-1", Booking: b})
	require.Contains(t, text, "Name        : Zoë")
}
