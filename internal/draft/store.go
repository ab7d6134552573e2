// Package draft persists the in-progress invoice as a single JSON record
// in local key-value storage and schedules debounced autosaves.
package draft

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nkrishang/invoicepad/internal/models"
)

// Key is the fixed identifier of the one draft a session owns.
const Key = "invoice-draft"

// Record is the stored row: a key and the JSON-encoded invoice.
type Record struct {
	Key       string `gorm:"primaryKey;size:64"`
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Record) TableName() string { return "drafts" }

// Store reads and writes the draft record.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// Load restores the persisted draft, merged field-by-field over the
// session defaults so drafts saved by an older schema are backfilled
// rather than crashing. A missing record yields exactly the defaults; a
// corrupt or unreadable one is logged and falls back to the defaults
// without surfacing an error to the caller.
func (s *Store) Load() models.Invoice {
	inv := models.Default()
	var rec Record
	err := s.db.First(&rec, "key = ?", Key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inv
	}
	if err != nil {
		log.Printf("draft: load failed, starting from defaults: %v", err)
		return inv
	}
	if err := json.Unmarshal([]byte(rec.Data), &inv); err != nil {
		log.Printf("draft: stored draft is corrupt, starting from defaults: %v", err)
		return models.Default()
	}
	if inv.ThemeColor == "" {
		inv.ThemeColor = models.DefaultThemeColor
	}
	return inv
}

// Save upserts the draft under the fixed key. Only the latest snapshot is
// ever kept; there is no history.
func (s *Store) Save(inv models.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	rec := Record{Key: Key, Data: string(data), UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}
