package prediction

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SourceAI    = "ai"
	SourceLocal = "local"

	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Prediction rows for a (user, vehicle) pair are always replaced as a set.
type Prediction struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_prediction_owner,priority:1;column:user_id" json:"user_id"`
	VehicleID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_prediction_owner,priority:2;column:vehicle_id" json:"vehicle_id"`
	Title            string         `gorm:"not null;column:title" json:"title"`
	Description      string         `gorm:"type:text;column:description" json:"description"`
	PredictedDate    *time.Time     `gorm:"type:date;column:predicted_date" json:"predicted_date"`
	PredictedMileage *int           `gorm:"column:predicted_mileage" json:"predicted_mileage"`
	Confidence       int            `gorm:"not null;column:confidence" json:"confidence"`
	Urgency          string         `gorm:"not null;column:urgency" json:"urgency"`
	Basis            datatypes.JSON `gorm:"column:basis" json:"basis"`
	InputsHash       string         `gorm:"not null;index;column:inputs_hash" json:"inputs_hash"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Prediction) TableName() string { return "prediction" }

func (p *Prediction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CacheEntry is one row of the key/value table shared by the suggestion memo and the
// daily refresh counter. Freshness is decided by readers; rows are never evicted here.
type CacheEntry struct {
	Key        string         `gorm:"primaryKey;column:cache_key" json:"key"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Value      datatypes.JSON `gorm:"not null;column:value" json:"value"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime:false;column:updated_at" json:"updated_at"`
	TTLSeconds int            `gorm:"not null;column:ttl_seconds" json:"ttl_seconds"`
}

func (CacheEntry) TableName() string { return "ai_cache" }
