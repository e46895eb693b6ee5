// Package export renders the guest list as a printable PDF. It is a
// formatting layer only: it reads the aggregates and mutates nothing.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Asnor14/rsvp01-admin/internal/stats"
)

// Mode selects which invitations are included in the export.
type Mode string

const (
	// ModeAll exports every response, attending or not.
	ModeAll Mode = "all"
	// ModeAccepted exports only invitations with at least one
	// attending response.
	ModeAccepted Mode = "accepted"
)

var (
	colorGold  = rgb{212, 175, 111}
	colorDark  = rgb{43, 43, 43}
	colorGray  = rgb{100, 100, 100}
	colorGreen = rgb{16, 185, 129}
	colorRed   = rgb{239, 68, 68}
)

type rgb struct{ r, g, b int }

type guestRow struct {
	familyName string
	guestName  string
	email      string
	attending  bool
	guestCount int
	message    string
	createdAt  time.Time
}

var columnWidths = []float64{10, 35, 30, 45, 18, 15, 90, 25}

var columnTitles = []string{"#", "Guest Name", "Family", "Email", "Attending", "Party", "Message", "Date"}

// GuestList renders the export document and returns its bytes together
// with the number of guest records it contains.
func GuestList(data []stats.InvitationWithStats, mode Mode, now time.Time) ([]byte, int, error) {
	if mode != ModeAll && mode != ModeAccepted {
		return nil, 0, fmt.Errorf("unknown export mode %q", mode)
	}

	rows := flatten(data, mode)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(colorGray.r, colorGray.g, colorGray.b)
		pdf.CellFormat(0, 6,
			fmt.Sprintf("Page %d of {nb} - Wedding RSVP Admin Dashboard", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	writeHeader(pdf, data, rows, mode, now)
	writeTable(pdf, rows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), len(rows), nil
}

// Filename suggests a download name for an export generated now.
func Filename(mode Mode, now time.Time) string {
	return fmt.Sprintf("rsvp-guests-%s-%s.pdf", mode, now.Format("2006-01-02"))
}

func flatten(data []stats.InvitationWithStats, mode Mode) []guestRow {
	var rows []guestRow
	for _, inv := range data {
		if mode == ModeAccepted && inv.Stats.AttendingCount == 0 {
			continue
		}
		for _, g := range inv.Guests {
			rows = append(rows, guestRow{
				familyName: inv.FamilyName,
				guestName:  g.Name,
				email:      orDash(g.Email),
				attending:  g.Attending,
				guestCount: g.GuestCount,
				message:    orDash(g.Message),
				createdAt:  g.CreatedAt,
			})
		}
	}
	return rows
}

func writeHeader(pdf *fpdf.Fpdf, data []stats.InvitationWithStats, rows []guestRow, mode Mode, now time.Time) {
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(colorGold.r, colorGold.g, colorGold.b)
	pdf.SetXY(0, 14)
	pdf.CellFormat(pageWidth, 10, "Wedding RSVP Guest List", "", 1, "C", false, 0, "")

	subtitle := "[All Responses]"
	exported := len(data)
	if mode == ModeAccepted {
		subtitle = "[Confirmed Guests Only]"
		exported = 0
		for _, inv := range data {
			if inv.Stats.AttendingCount > 0 {
				exported++
			}
		}
	}
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(colorGray.r, colorGray.g, colorGray.b)
	pdf.CellFormat(pageWidth, 8, subtitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(pageWidth, 6,
		"Generated on "+now.Format("Monday, January 2, 2006"), "", 1, "C", false, 0, "")

	totalAttending := 0
	for _, r := range rows {
		if r.attending {
			totalAttending += r.guestCount
		}
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(colorDark.r, colorDark.g, colorDark.b)
	pdf.CellFormat(pageWidth, 8,
		fmt.Sprintf("Invitations: %d  |  Responses: %d  |  Total Attending: %d",
			exported, len(rows), totalAttending),
		"", 1, "C", false, 0, "")
	pdf.Ln(3)
}

func writeTable(pdf *fpdf.Fpdf, rows []guestRow) {
	pageWidth, pageHeight := pdf.GetPageSize()
	tableWidth := 0.0
	for _, w := range columnWidths {
		tableWidth += w
	}
	left := (pageWidth - tableWidth) / 2

	drawHead := func() {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(colorGold.r, colorGold.g, colorGold.b)
		pdf.SetTextColor(255, 255, 255)
		for i, title := range columnTitles {
			pdf.CellFormat(columnWidths[i], 8, title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	drawHead()

	if len(rows) == 0 {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(colorDark.r, colorDark.g, colorDark.b)
		pdf.CellFormat(tableWidth, 7, "No guest responses found", "1", 1, "C", false, 0, "")
		return
	}

	for i, row := range rows {
		if pdf.GetY() > pageHeight-28 {
			pdf.AddPage()
			drawHead()
		}

		party := "-"
		attending := "No"
		if row.attending {
			attending = "Yes"
			party = fmt.Sprintf("%d", row.guestCount)
		}

		pdf.SetX(left)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(colorDark.r, colorDark.g, colorDark.b)
		pdf.CellFormat(columnWidths[0], 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(columnWidths[1], 7, truncate(row.guestName, 30), "1", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(columnWidths[2], 7, truncate(row.familyName, 25), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[3], 7, truncate(row.email, 40), "1", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		if row.attending {
			pdf.SetTextColor(colorGreen.r, colorGreen.g, colorGreen.b)
		} else {
			pdf.SetTextColor(colorRed.r, colorRed.g, colorRed.b)
		}
		pdf.CellFormat(columnWidths[4], 7, attending, "1", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(colorDark.r, colorDark.g, colorDark.b)
		pdf.CellFormat(columnWidths[5], 7, party, "1", 0, "C", false, 0, "")
		pdf.CellFormat(columnWidths[6], 7, truncate(row.message, 40), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[7], 7, row.createdAt.Format("01/02/2006"), "1", 1, "L", false, 0, "")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
