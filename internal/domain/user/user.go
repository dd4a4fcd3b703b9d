package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is owned by the account/billing layer; this service only reads the plan columns.
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Plan               string    `gorm:"not null;default:free;column:plan" json:"plan"`
	SubscriptionStatus string    `gorm:"column:subscription_status" json:"subscription_status"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
