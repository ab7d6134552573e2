package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// InvoiceType selects the document heading. Values match what the
// preview template prints, so they are stored display-cased.
type InvoiceType string

const (
	TypeInvoice         InvoiceType = "Invoice"
	TypeTaxInvoice      InvoiceType = "Tax Invoice"
	TypeQuotation       InvoiceType = "Quotation"
	TypeProformaInvoice InvoiceType = "Proforma Invoice"
	TypeEstimate        InvoiceType = "Estimate"
)

// Currency is the label attached to amounts. No conversion happens
// anywhere; INR additionally unlocks amount-in-words and UPI payment.
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// DefaultThemeColor is applied when a draft has no color of its own,
// and restored when the logo (whose palette drives the color) is cleared.
const DefaultThemeColor = "#2563eb"

// Party is one side of the invoice, all free text.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// BankDetails are printed verbatim on the document. UPIID additionally
// feeds the payment QR when the invoice is INR-denominated.
type BankDetails struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	IFSCCode      string `json:"ifscCode"`
	UPIID         string `json:"upiId,omitempty"`
}

// Item is one invoice line. ID is minted from the creation time and is
// the stable key for reordering and removal; it is never reused.
type Item struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	HSN         string  `json:"hsn"`
}

// Invoice is the whole document: one instance per session, mutated in
// place under the session lock and persisted as a single JSON record.
// JSON tags are camelCase so drafts saved by older builds still parse.
type Invoice struct {
	InvoiceType   InvoiceType `json:"invoiceType"`
	InvoiceNumber string      `json:"invoiceNumber"`
	Date          string      `json:"date"`
	DueDate       string      `json:"dueDate"`
	Business      Party       `json:"business"`
	Client        Party       `json:"client"`
	Items         []Item      `json:"items"`
	CGSTRate      float64     `json:"cgstRate"`
	SGSTRate      float64     `json:"sgstRate"`
	IGSTRate      float64     `json:"igstRate"`
	TaxRate       float64     `json:"taxRate"`
	DiscountRate  float64     `json:"discountRate"`
	Currency      Currency    `json:"currency"`
	BankDetails   BankDetails `json:"bankDetails"`
	Notes         string      `json:"notes"`
	Logo          string      `json:"logo,omitempty"` // data URL, empty when absent
	ThemeColor    string      `json:"themeColor"`
}

// Default returns the hard-coded session defaults: today's date, INR,
// one empty line item.
func Default() Invoice {
	return Invoice{
		InvoiceType: TypeInvoice,
		Date:        time.Now().Format("2006-01-02"),
		Currency:    CurrencyINR,
		Items:       []Item{NewItem()},
		ThemeColor:  DefaultThemeColor,
	}
}

// NewItem mints a line item with a time-derived id and zeroed fields.
func NewItem() Item {
	return Item{ID: time.Now().UnixMilli()}
}

// AddItem appends a fresh empty item and returns it. The minted id is
// bumped past the current maximum so same-millisecond mints cannot
// collide within one document.
func (inv *Invoice) AddItem() Item {
	it := NewItem()
	for _, existing := range inv.Items {
		if existing.ID >= it.ID {
			it.ID = existing.ID + 1
		}
	}
	inv.Items = append(inv.Items, it)
	return it
}

// RemoveItem deletes the item with the given id, preserving the order of
// the rest. An unknown id is a no-op. Removing the last item is allowed;
// totals over an empty sequence are simply zero.
func (inv *Invoice) RemoveItem(id int64) {
	kept := inv.Items[:0]
	for _, it := range inv.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	inv.Items = kept
}

// UpdateItem replaces the item at index. An out-of-range index is a
// programming error and panics; callers taking external input must
// bounds-check first.
func (inv *Invoice) UpdateItem(index int, it Item) {
	inv.Items[index] = it
}

// UpdateField replaces exactly one top-level field from its raw JSON
// value. Unknown keys are rejected so client typos don't vanish silently.
func (inv *Invoice) UpdateField(key string, value json.RawMessage) error {
	payload, err := json.Marshal(map[string]json.RawMessage{key: value})
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(inv); err != nil {
		return fmt.Errorf("update field %q: %w", key, err)
	}
	return nil
}

// SetLogo stores the logo data URL. Clearing the logo also resets the
// theme color, since the color was sampled from the logo.
func (inv *Invoice) SetLogo(dataURL string) {
	inv.Logo = dataURL
	if dataURL == "" {
		inv.ThemeColor = DefaultThemeColor
	}
}
