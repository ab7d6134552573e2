package services

import (
	"github.com/nkrishang/invoicepad/internal/models"
)

// Totals holds every derived amount for the current document. All values
// are unrounded; rounding happens only at display formatting.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxableAmount  float64 `json:"taxableAmount"`
	CGSTAmount     float64 `json:"cgstAmount"`
	SGSTAmount     float64 `json:"sgstAmount"`
	IGSTAmount     float64 `json:"igstAmount"`
	TaxAmount      float64 `json:"taxAmount"` // flat tax-rate field, independent of GST
	TotalTax       float64 `json:"totalTax"`
	Total          float64 `json:"total"`
}

// InvoiceService encapsulates the derived-financial pipeline.
type InvoiceService struct{}

func NewInvoiceService() *InvoiceService { return &InvoiceService{} }

// Compute derives all amounts from line items and percentage rates.
// The four tax rates each apply to the same taxable base (additive, not
// compounding). The pipeline is straight IEEE-754 arithmetic: negative or
// NaN inputs propagate, nothing is clamped and nothing panics, so callers
// that want validation do it at the ingestion boundary.
func Compute(items []models.Item, discountRate, cgstRate, sgstRate, igstRate, taxRate float64) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += it.Quantity * it.Price
	}
	t.DiscountAmount = t.Subtotal * discountRate / 100
	t.TaxableAmount = t.Subtotal - t.DiscountAmount
	t.CGSTAmount = t.TaxableAmount * cgstRate / 100
	t.SGSTAmount = t.TaxableAmount * sgstRate / 100
	t.IGSTAmount = t.TaxableAmount * igstRate / 100
	t.TaxAmount = t.TaxableAmount * taxRate / 100
	t.TotalTax = t.CGSTAmount + t.SGSTAmount + t.IGSTAmount + t.TaxAmount
	t.Total = t.TaxableAmount + t.TotalTax
	return t
}

// ComputeTotals derives the totals for a whole invoice.
func (s *InvoiceService) ComputeTotals(inv *models.Invoice) Totals {
	if inv == nil {
		return Totals{}
	}
	return Compute(inv.Items, inv.DiscountRate, inv.CGSTRate, inv.SGSTRate, inv.IGSTRate, inv.TaxRate)
}
