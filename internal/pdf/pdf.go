// Package pdf renders the invoice document. The browser original
// rasterized the DOM preview into a page image; here the same fixed
// template is composed directly as a PDF.
package pdf

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nkrishang/invoicepad/internal/models"
	"github.com/nkrishang/invoicepad/internal/render"
	"github.com/nkrishang/invoicepad/internal/services"
)

// ErrMissingNumber rejects an export before any rendering work starts.
var ErrMissingNumber = errors.New("invoice number is required")

// Filename builds the download name: the document type lowercased with
// its first space turned into a hyphen, then the invoice number.
// "Tax Invoice" + "042" -> "tax-invoice-042.pdf".
func Filename(t models.InvoiceType, number string) string {
	name := strings.Replace(strings.ToLower(string(t)), " ", "-", 1)
	return name + "-" + strings.TrimSpace(number) + ".pdf"
}

// Render produces the single-page document. The precondition on the
// invoice number is enforced here as well as at the HTTP boundary so no
// caller can produce an unnamed artifact.
func Render(inv models.Invoice, totals services.Totals) ([]byte, error) {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return nil, ErrMissingNumber
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	theme := themeColor(inv.ThemeColor)
	buildHeader(m, inv, theme)
	buildParties(m, inv)
	buildItems(m, inv, theme)
	buildTotals(m, inv, totals)
	buildFooter(m, inv, totals)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func buildHeader(m core.Maroto, inv models.Invoice, theme *props.Color) {
	title := text.NewCol(8, string(inv.InvoiceType), props.Text{
		Size:  20,
		Style: fontstyle.Bold,
		Color: theme,
	})
	if logoBytes, ext, ok := splitDataURL(inv.Logo); ok {
		m.AddRow(22,
			image.NewFromBytesCol(2, logoBytes, ext, props.Rect{Center: true, Percent: 90}),
			title,
			text.NewCol(2, "# "+inv.InvoiceNumber, props.Text{Size: 11, Align: align.Right, Top: 2}),
		)
	} else {
		m.AddRow(14,
			title,
			text.NewCol(4, "# "+inv.InvoiceNumber, props.Text{Size: 11, Align: align.Right, Top: 2}),
		)
	}
	m.AddRow(6,
		text.NewCol(6, "Date: "+inv.Date, props.Text{Size: 9}),
		text.NewCol(6, dueDateLabel(inv.DueDate), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRows(line.NewRow(4))
}

func dueDateLabel(due string) string {
	if due == "" {
		return ""
	}
	return "Due: " + due
}

func buildParties(m core.Maroto, inv models.Invoice) {
	m.AddRow(6,
		text.NewCol(6, "From", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(6, "Bill To", props.Text{Size: 9, Style: fontstyle.Bold}),
	)
	m.AddRow(16,
		text.NewCol(6, partyBlock(inv.Business), props.Text{Size: 9}),
		text.NewCol(6, partyBlock(inv.Client), props.Text{Size: 9}),
	)
	m.AddRows(line.NewRow(4))
}

func partyBlock(p models.Party) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Name, p.Address, p.Email} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func buildItems(m core.Maroto, inv models.Invoice, theme *props.Color) {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: theme}
	m.AddRow(7,
		text.NewCol(5, "Description", header),
		text.NewCol(2, "HSN/SAC", header),
		text.NewCol(1, "Qty", headerAligned(header, align.Right)),
		text.NewCol(2, "Price", headerAligned(header, align.Right)),
		text.NewCol(2, "Amount", headerAligned(header, align.Right)),
	)
	cell := props.Text{Size: 9}
	right := props.Text{Size: 9, Align: align.Right}
	for _, it := range inv.Items {
		m.AddRow(6,
			text.NewCol(5, it.Description, cell),
			text.NewCol(2, it.HSN, cell),
			text.NewCol(1, trimFloat(it.Quantity), right),
			text.NewCol(2, money(it.Price, inv.Currency), right),
			text.NewCol(2, money(it.Quantity*it.Price, inv.Currency), right),
		)
	}
	m.AddRows(line.NewRow(4))
}

func headerAligned(p props.Text, a align.Type) props.Text {
	p.Align = a
	return p
}

func buildTotals(m core.Maroto, inv models.Invoice, t services.Totals) {
	addAmount := func(label string, amount float64, bold bool) {
		p := props.Text{Size: 9, Align: align.Right}
		if bold {
			p.Style = fontstyle.Bold
			p.Size = 11
		}
		m.AddRow(5,
			col.New(7),
			text.NewCol(3, label, p),
			text.NewCol(2, money(amount, inv.Currency), p),
		)
	}
	addAmount("Subtotal", t.Subtotal, false)
	if inv.DiscountRate != 0 {
		addAmount(fmt.Sprintf("Discount (%s%%)", trimFloat(inv.DiscountRate)), -t.DiscountAmount, false)
	}
	if inv.CGSTRate != 0 {
		addAmount(fmt.Sprintf("CGST (%s%%)", trimFloat(inv.CGSTRate)), t.CGSTAmount, false)
	}
	if inv.SGSTRate != 0 {
		addAmount(fmt.Sprintf("SGST (%s%%)", trimFloat(inv.SGSTRate)), t.SGSTAmount, false)
	}
	if inv.IGSTRate != 0 {
		addAmount(fmt.Sprintf("IGST (%s%%)", trimFloat(inv.IGSTRate)), t.IGSTAmount, false)
	}
	if inv.TaxRate != 0 {
		addAmount(fmt.Sprintf("Tax (%s%%)", trimFloat(inv.TaxRate)), t.TaxAmount, false)
	}
	addAmount("Total", t.Total, true)

	if inv.Currency == models.CurrencyINR {
		if words, err := services.AmountInWords(t.Total); err == nil {
			m.AddRow(8, text.NewCol(12, words, props.Text{Size: 8, Style: fontstyle.Italic, Top: 2}))
		}
	}
}

func buildFooter(m core.Maroto, inv models.Invoice, t services.Totals) {
	var left []string
	bd := inv.BankDetails
	if bd.AccountNumber != "" || bd.BankName != "" || bd.Name != "" {
		left = append(left, "Bank Details")
		for _, l := range []string{bd.Name, "A/C: " + bd.AccountNumber, bd.BankName, "IFSC: " + bd.IFSCCode} {
			if strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(l, "A/C: "), "IFSC: ")) != "" {
				left = append(left, l)
			}
		}
	}
	if strings.TrimSpace(inv.Notes) != "" {
		left = append(left, "", "Notes", inv.Notes)
	}

	uri, hasQR := services.PaymentURI(&inv, t.Total)
	if len(left) == 0 && !hasQR {
		return
	}
	m.AddRows(line.NewRow(4))
	if hasQR {
		m.AddRow(30,
			text.NewCol(8, strings.Join(left, "\n"), props.Text{Size: 8}),
			code.NewQrCol(4, uri, props.Rect{Center: true, Percent: 85}),
		)
		m.AddRow(4,
			col.New(8),
			text.NewCol(4, "Scan to pay via UPI", props.Text{Size: 7, Align: align.Center}),
		)
		return
	}
	m.AddRow(24, text.NewCol(12, strings.Join(left, "\n"), props.Text{Size: 8}))
}

// splitDataURL unpacks "data:image/png;base64,...." into the decoded
// image bytes and a maroto extension. Unknown, absent, or undecodable
// logos report ok=false and the header simply renders without an image.
func splitDataURL(dataURL string) (data []byte, ext extension.Type, ok bool) {
	if dataURL == "" {
		return nil, "", false
	}
	rest, found := strings.CutPrefix(dataURL, "data:")
	if !found {
		return nil, "", false
	}
	mime, payload, found := strings.Cut(rest, ";base64,")
	if !found {
		return nil, "", false
	}
	switch mime {
	case "image/png":
		ext = extension.Png
	case "image/jpeg", "image/jpg":
		ext = extension.Jpg
	default:
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	return data, ext, true
}

func themeColor(hex string) *props.Color {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		s = strings.TrimPrefix(models.DefaultThemeColor, "#")
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return &props.Color{}
	}
	return &props.Color{Red: r, Green: g, Blue: b}
}

// money formats an amount for PDF text. The built-in PDF fonts are
// cp1252 and have no rupee glyph, so INR falls back to "Rs." while the
// web preview keeps the symbol.
func money(amount float64, c models.Currency) string {
	return strings.Replace(render.FormatCurrency(amount, c), "₹", "Rs. ", 1)
}

// trimFloat prints a rate or quantity without trailing zeros.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
