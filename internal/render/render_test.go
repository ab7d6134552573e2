package render

import (
	"testing"

	"github.com/nkrishang/invoicepad/internal/models"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency models.Currency
		want     string
	}{
		{"USD", 250, models.CurrencyUSD, "$250.00"},
		{"USD grouping", 1234.5, models.CurrencyUSD, "$1,234.50"},
		{"INR", 250, models.CurrencyINR, "₹250.00"},
		{"EUR", 99.9, models.CurrencyEUR, "€99.90"},
		{"GBP", 0, models.CurrencyGBP, "£0.00"},
		{"unknown code falls back", 12, models.Currency("XYZ"), "XYZ 12.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.amount, tt.currency); got != tt.want {
				t.Errorf("FormatCurrency(%v, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestContrastTextColor(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want string
	}{
		{"black background", "#000000", "#FFFFFF"},
		{"white background", "#FFFFFF", "#000000"},
		{"mid grey is light", "#808080", "#000000"}, // Y = 128 exactly
		{"dark blue", "#1e3a8a", "#FFFFFF"},
		{"no hash prefix", "ffffff", "#000000"},
		{"too short", "#fff", "#FFFFFF"},
		{"not hex", "#zzzzzz", "#FFFFFF"},
		{"empty", "", "#FFFFFF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContrastTextColor(tt.hex); got != tt.want {
				t.Errorf("ContrastTextColor(%q) = %q, want %q", tt.hex, got, tt.want)
			}
		})
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		name       string
		hex        string
		percentage float64
		want       string
	}{
		{"half grey", "#808080", 50, "#404040"},
		{"red by ten", "#ff0000", 10, "#e50000"},
		{"zero percent keeps value", "#123456", 0, "#123456"},
		{"full darken", "#abcdef", 100, "#000000"},
		{"malformed passes through", "#12", 50, "#12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Darken(tt.hex, tt.percentage); got != tt.want {
				t.Errorf("Darken(%q, %v) = %q, want %q", tt.hex, tt.percentage, got, tt.want)
			}
		})
	}
}
