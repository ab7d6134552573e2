package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/nkrishang/invoicepad/httpx"
	"github.com/nkrishang/invoicepad/internal/handlers"
	"github.com/nkrishang/invoicepad/internal/services"
	"github.com/nkrishang/invoicepad/internal/session"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, sess *session.Session) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight storage check (SELECT 1) – detail stays out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	dh := handlers.NewDraftHandler(sess, services.NewInvoiceService())

	mux.HandleFunc("/draft", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			dh.Get(w, r)
		case http.MethodPut:
			dh.Replace(w, r)
		default:
			w.Header().Set("Allow", "GET,PUT")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/draft/field", requirePost(dh.UpdateField))
	mux.HandleFunc("/draft/items", requirePost(dh.AddItem))
	mux.HandleFunc("/draft/items/update", requirePost(dh.UpdateItem))
	mux.HandleFunc("/draft/items/delete", requirePost(dh.DeleteItem))
	mux.HandleFunc("/draft/logo", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			dh.UploadLogo(w, r)
		case http.MethodDelete:
			dh.ClearLogo(w, r)
		default:
			w.Header().Set("Allow", "POST,DELETE")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/draft/pdf", dh.PDF)
	mux.HandleFunc("/draft/qr", dh.QR)
	mux.HandleFunc("/notice", dh.Notice)
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

func requirePost(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
