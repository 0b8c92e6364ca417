package domain

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel contains common fields for all domain entities.
// Soft deletion is modelled with an explicit flag pair instead of
// gorm.DeletedAt so that no query is ever scoped implicitly; every
// repository read takes an includeDeleted parameter.
type BaseModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
	IsDeleted bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// MarkDeleted flags the entity as deleted. Calling it on an already
// deleted entity is a no-op so the original deletion time is preserved.
func (m *BaseModel) MarkDeleted(now time.Time) {
	if m.IsDeleted {
		return
	}
	m.IsDeleted = true
	m.DeletedAt = &now
}

// Restore clears the soft-delete flags.
func (m *BaseModel) Restore() {
	m.IsDeleted = false
	m.DeletedAt = nil
}
