package services

import (
	"errors"
	"math"
	"strings"
)

// ErrInvalidAmount is returned for NaN or infinite inputs.
var ErrInvalidAmount = errors.New("invalid amount")

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// belowHundred spells 0..99; zero comes back empty.
func belowHundred(n int) string {
	if n < 20 {
		return onesWords[n]
	}
	s := tensWords[n/10]
	if n%10 != 0 {
		s += " " + onesWords[n%10]
	}
	return s
}

// integerWords spells a non-negative integer in the Indian numbering
// system (crore/lakh/thousand). The trailing sub-hundred part is joined
// with "and" whenever anything precedes it.
func integerWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	crore := n / 1_00_00_000
	n %= 1_00_00_000
	lakh := n / 1_00_000
	n %= 1_00_000
	thousand := n / 1_000
	n %= 1_000
	hundred := n / 100
	last := n % 100

	var parts []string
	if crore > 0 {
		if crore > 99 {
			parts = append(parts, integerWords(crore)+" Crore")
		} else {
			parts = append(parts, belowHundred(int(crore))+" Crore")
		}
	}
	if lakh > 0 {
		parts = append(parts, belowHundred(int(lakh))+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, belowHundred(int(thousand))+" Thousand")
	}
	if hundred > 0 {
		parts = append(parts, onesWords[hundred]+" hundred")
	}
	s := strings.Join(parts, " ")
	if last > 0 {
		if s == "" {
			return belowHundred(int(last))
		}
		s += " and " + belowHundred(int(last))
	}
	return s
}

// AmountInWords renders a rupee amount as English words, e.g.
// "One hundred Rupees and Fifty Paise Only". The fractional part is
// rounded to two digits and read as paise; a zero paise part is omitted.
// Negative amounts get a "Minus" prefix. Only INR invoices call this;
// other currencies display as numerals.
func AmountInWords(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrInvalidAmount
	}
	negative := amount < 0
	totalPaise := int64(math.Round(math.Abs(amount) * 100))
	rupees := totalPaise / 100
	paise := totalPaise % 100

	s := integerWords(rupees) + " Rupees"
	if paise != 0 {
		s += " and " + belowHundred(int(paise)) + " Paise"
	}
	s += " Only"
	if negative {
		s = "Minus " + s
	}
	return s, nil
}
