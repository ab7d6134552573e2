package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/nkrishang/invoicepad/httpx"
	"github.com/nkrishang/invoicepad/internal/logo"
	"github.com/nkrishang/invoicepad/internal/models"
	"github.com/nkrishang/invoicepad/internal/notify"
	"github.com/nkrishang/invoicepad/internal/pdf"
	"github.com/nkrishang/invoicepad/internal/render"
	"github.com/nkrishang/invoicepad/internal/services"
	"github.com/nkrishang/invoicepad/internal/session"
)

// DraftHandler exposes the single in-progress invoice.
type DraftHandler struct {
	Session *session.Session
	Svc     *services.InvoiceService
}

func NewDraftHandler(s *session.Session, svc *services.InvoiceService) *DraftHandler {
	return &DraftHandler{Session: s, Svc: svc}
}

// draftView is what every read returns: the document plus everything
// derived from it, so the client never computes money itself.
func (h *DraftHandler) draftView() map[string]any {
	inv := h.Session.Snapshot()
	totals := h.Svc.ComputeTotals(&inv)
	view := map[string]any{
		"invoice":        inv,
		"totals":         totals,
		"formattedTotal": render.FormatCurrency(totals.Total, inv.Currency),
		"textColor":      render.ContrastTextColor(inv.ThemeColor),
	}
	if inv.Currency == models.CurrencyINR {
		if words, err := services.AmountInWords(totals.Total); err == nil {
			view["amountInWords"] = words
		}
	}
	if uri, ok := services.PaymentURI(&inv, totals.Total); ok {
		view["upiUri"] = uri
	}
	return view
}

// Get: GET /draft
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// Replace: PUT /draft – full document replacement.
func (h *DraftHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	_ = h.Session.Mutate(func(cur *models.Invoice) error {
		*cur = inv
		return nil
	})
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// UpdateField: POST /draft/field – replace one top-level field.
func (h *DraftHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	err := h.Session.Mutate(func(inv *models.Invoice) error {
		return inv.UpdateField(req.Key, req.Value)
	})
	if err != nil {
		// A valid key with a mismatched value decodes to a type error;
		// anything else means the key itself is not a field.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_value", map[string]string{"key": req.Key})
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "unknown_field", map[string]string{"key": req.Key})
		return
	}
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// AddItem: POST /draft/items
func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var added models.Item
	_ = h.Session.Mutate(func(inv *models.Invoice) error {
		added = inv.AddItem()
		return nil
	})
	httpx.JSON(w, http.StatusCreated, added)
}

// UpdateItem: POST /draft/items/update?index=N
func (h *DraftHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil || index < 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_index", nil)
		return
	}
	var it models.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var outOfRange bool
	_ = h.Session.Mutate(func(inv *models.Invoice) error {
		if index >= len(inv.Items) {
			outOfRange = true
			return nil
		}
		inv.UpdateItem(index, it)
		return nil
	})
	if outOfRange {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_index", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// DeleteItem: POST /draft/items/delete?id=M – unknown ids are a no-op.
func (h *DraftHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	_ = h.Session.Mutate(func(inv *models.Invoice) error {
		inv.RemoveItem(id)
		return nil
	})
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// UploadLogo: POST /draft/logo (multipart field "logo"). A read or
// decode failure notifies the user, keeps the previous logo, and drops
// the theme back to the default since color sampling never ran.
func (h *DraftHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("logo")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "missing_logo_file", nil)
		return
	}
	defer file.Close()

	dataURL, theme, err := logo.Ingest(file)
	if err != nil {
		h.Session.Notices().Push(notify.KindError, "Logo upload failed: "+err.Error())
		_ = h.Session.Mutate(func(inv *models.Invoice) error {
			inv.ThemeColor = models.DefaultThemeColor
			return nil
		})
		httpx.JSONError(w, http.StatusBadRequest, "logo_upload_failed", nil)
		return
	}
	_ = h.Session.Mutate(func(inv *models.Invoice) error {
		inv.SetLogo(dataURL)
		inv.ThemeColor = theme
		return nil
	})
	h.Session.Notices().Push(notify.KindSuccess, "Logo uploaded")
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// ClearLogo: DELETE /draft/logo – also restores the default theme color.
func (h *DraftHandler) ClearLogo(w http.ResponseWriter, r *http.Request) {
	_ = h.Session.Mutate(func(inv *models.Invoice) error {
		inv.SetLogo("")
		return nil
	})
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// PDF: GET /draft/pdf – rejected before any rendering when the invoice
// number is blank; overlapping exports are rejected via the busy flag.
func (h *DraftHandler) PDF(w http.ResponseWriter, r *http.Request) {
	inv := h.Session.Snapshot()
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		h.Session.Notices().Push(notify.KindError, "Enter an invoice number before downloading")
		httpx.JSONError(w, http.StatusBadRequest, "missing_invoice_number", nil)
		return
	}
	if !h.Session.BeginExport() {
		httpx.JSONError(w, http.StatusConflict, "export_in_progress", nil)
		return
	}
	defer h.Session.EndExport()

	totals := h.Svc.ComputeTotals(&inv)
	data, err := pdf.Render(inv, totals)
	if err != nil {
		h.Session.Notices().Push(notify.KindError, "PDF generation failed")
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.Blob(w, "application/pdf", pdf.Filename(inv.InvoiceType, inv.InvoiceNumber), data)
}

// QR: GET /draft/qr – 256px high-error-correction PNG of the UPI link,
// available only for INR drafts with a UPI id.
func (h *DraftHandler) QR(w http.ResponseWriter, r *http.Request) {
	inv := h.Session.Snapshot()
	totals := h.Svc.ComputeTotals(&inv)
	uri, ok := services.PaymentURI(&inv, totals.Total)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "qr_not_available", nil)
		return
	}
	qrCode, err := qr.Encode(uri, qr.H, qr.Auto)
	if err == nil {
		qrCode, err = barcode.Scale(qrCode, 256, 256)
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "qr_generation_failed", nil)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "qr_generation_failed", nil)
		return
	}
	httpx.Blob(w, "image/png", "", buf.Bytes())
}

// Notice: GET /notice – the current transient notice, null once the
// 3-second display window has elapsed.
func (h *DraftHandler) Notice(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Session.Notices().Current())
}
