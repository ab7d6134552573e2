// Package render formats computed amounts and colors for display. It is
// the boundary between the calculation engine's raw numbers and whatever
// front end paints them; nothing here feeds back into stored state.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/nkrishang/invoicepad/internal/models"
)

type locale struct {
	tag    language.Tag
	symbol string
}

// Each currency formats in its home locale so INR gets lakh/crore digit
// grouping (1,23,456.78) while the others group by thousands.
var locales = map[models.Currency]locale{
	models.CurrencyINR: {language.MustParse("en-IN"), "₹"},
	models.CurrencyUSD: {language.MustParse("en-US"), "$"},
	models.CurrencyEUR: {language.MustParse("en-IE"), "€"},
	models.CurrencyGBP: {language.MustParse("en-GB"), "£"},
}

// FormatCurrency renders an amount with its currency symbol and exactly
// two fraction digits. Unknown currency codes fall back to the bare code
// as prefix rather than failing.
func FormatCurrency(amount float64, c models.Currency) string {
	loc, ok := locales[c]
	if !ok {
		return fmt.Sprintf("%s %.2f", string(c), amount)
	}
	p := message.NewPrinter(loc.tag)
	return loc.symbol + p.Sprint(number.Decimal(amount, number.Scale(2)))
}

// ContrastTextColor picks a readable text color for the given 6-hex-digit
// background using the BT.601 luma weights. Light backgrounds (Y >= 128)
// get black text, dark ones white. Malformed input defaults to white.
func ContrastTextColor(backgroundHex string) string {
	r, g, b, ok := parseHex(backgroundHex)
	if !ok {
		return "#FFFFFF"
	}
	// Integer weights keep the Y >= 128 boundary exact: the float form
	// yields 127.999... for #808080 and misclassifies it.
	luma := 299*int(r) + 587*int(g) + 114*int(b)
	if luma >= 128_000 {
		return "#000000"
	}
	return "#FFFFFF"
}

// Darken scales every channel down by percentage (0-100) and re-encodes.
// Used for hover-state feedback on theme-colored controls. Malformed
// input comes back unchanged.
func Darken(hex string, percentage float64) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	factor := (100 - percentage) / 100
	return fmt.Sprintf("#%02x%02x%02x", darkenChannel(r, factor), darkenChannel(g, factor), darkenChannel(b, factor))
}

func darkenChannel(v uint8, factor float64) uint8 {
	scaled := int(float64(v) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8 & 0xff), uint8(v & 0xff), true
}
