package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductFilter is the bag of optional predicates a product listing can
// apply. Nil/empty fields add no constraint; all set fields are ANDed.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Size       *Size
	Color      *Color
	IsActive   *bool

	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	MinStock *int
	MaxStock *int

	Sizes       []Size
	Colors      []Color
	CategoryIDs []uuid.UUID

	InStock    *bool
	OutOfStock *bool
	LowStock   *bool

	Search string

	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time

	// Ordering is a column name, '-' prefixed for descending.
	Ordering string
}

// CategoryFilter is the optional predicate bag for category listings.
type CategoryFilter struct {
	Name         string
	IsActive     *bool
	HasProducts  *bool
	CreatedAfter *time.Time
}
