package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nkrishang/invoicepad/internal/models"
)

// PaymentURI builds the UPI deep link for the invoice total, e.g.
// upi://pay?pa=shop@upi&pn=Acme&am=265.50&cu=INR. It applies only to
// INR invoices with a UPI id; ok reports whether a link exists. The
// payee name falls back to "Payee" when the business name is blank.
func PaymentURI(inv *models.Invoice, total float64) (uri string, ok bool) {
	if inv == nil || inv.Currency != models.CurrencyINR {
		return "", false
	}
	upiID := strings.TrimSpace(inv.BankDetails.UPIID)
	if upiID == "" {
		return "", false
	}
	payee := strings.TrimSpace(inv.Business.Name)
	if payee == "" {
		payee = "Payee"
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR",
		upiID, url.QueryEscape(payee), total), true
}
