package vehicle

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Make    string    `gorm:"not null;column:make" json:"make"`
	Model   string    `gorm:"not null;column:model" json:"model"`
	Year    int       `gorm:"column:year" json:"year"`
	Mileage *int      `gorm:"column:mileage" json:"mileage"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Vehicle) TableName() string { return "vehicle" }

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// MaintenanceRecord is immutable once written by the records CRUD layer.
// A zero ServiceDate marks a row whose date could not be parsed on import.
type MaintenanceRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_maintenance_record_owner,priority:1;column:user_id" json:"user_id"`
	VehicleID   uuid.UUID `gorm:"type:uuid;not null;index:idx_maintenance_record_owner,priority:2;column:vehicle_id" json:"vehicle_id"`
	Type        string    `gorm:"not null;column:type" json:"type"`
	ServiceDate time.Time `gorm:"type:date;column:service_date" json:"service_date"`
	Mileage     *int      `gorm:"column:mileage" json:"mileage"`
	Notes       string    `gorm:"column:notes" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (MaintenanceRecord) TableName() string { return "maintenance_record" }

func (r *MaintenanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// KnowledgeSnippet is a short service note for a make/model, optionally bounded by model year.
type KnowledgeSnippet struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Make     string    `gorm:"not null;index:idx_vehicle_knowledge_make_model,priority:1;column:make" json:"make"`
	Model    string    `gorm:"index:idx_vehicle_knowledge_make_model,priority:2;column:model" json:"model"`
	YearFrom *int      `gorm:"column:year_from" json:"year_from,omitempty"`
	YearTo   *int      `gorm:"column:year_to" json:"year_to,omitempty"`
	Title    string    `gorm:"column:title" json:"title"`
	Body     string    `gorm:"type:text;not null;column:body" json:"body"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (KnowledgeSnippet) TableName() string { return "vehicle_knowledge" }

func (k *KnowledgeSnippet) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
