package services

import (
	"testing"

	"github.com/nkrishang/invoicepad/internal/models"
)

func TestPaymentURI(t *testing.T) {
	inv := &models.Invoice{
		Currency:    models.CurrencyINR,
		Business:    models.Party{Name: "Acme Traders"},
		BankDetails: models.BankDetails{UPIID: "acme@okaxis"},
	}
	uri, ok := PaymentURI(inv, 265.5)
	if !ok {
		t.Fatal("expected a payment URI for INR + UPI id")
	}
	want := "upi://pay?pa=acme@okaxis&pn=Acme+Traders&am=265.50&cu=INR"
	if uri != want {
		t.Errorf("uri = %q, want %q", uri, want)
	}
}

func TestPaymentURIPayeeFallback(t *testing.T) {
	inv := &models.Invoice{
		Currency:    models.CurrencyINR,
		BankDetails: models.BankDetails{UPIID: "x@upi"},
	}
	uri, ok := PaymentURI(inv, 10)
	if !ok {
		t.Fatal("expected a payment URI")
	}
	if uri != "upi://pay?pa=x@upi&pn=Payee&am=10.00&cu=INR" {
		t.Errorf("unexpected uri %q", uri)
	}
}

func TestPaymentURIUnavailable(t *testing.T) {
	tests := []struct {
		name string
		inv  *models.Invoice
	}{
		{"nil invoice", nil},
		{"non-INR", &models.Invoice{Currency: models.CurrencyUSD, BankDetails: models.BankDetails{UPIID: "x@upi"}}},
		{"no UPI id", &models.Invoice{Currency: models.CurrencyINR}},
		{"blank UPI id", &models.Invoice{Currency: models.CurrencyINR, BankDetails: models.BankDetails{UPIID: "   "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := PaymentURI(tt.inv, 10); ok {
				t.Error("expected no payment URI")
			}
		})
	}
}
