package domain

import "github.com/google/uuid"

// ProductImage is an additional gallery image for a product. The binary
// itself lives in the object store; only its key is recorded here.
// Listings are ordered by (order, created_at) ascending.
type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_product_images_product_id" json:"product_id"`
	ImageKey  string    `gorm:"type:varchar(255);not null" json:"image"`
	AltText   string    `gorm:"type:varchar(200)" json:"alt_text"`
	Order     int       `gorm:"column:display_order;not null;default:0" json:"order"`
}

// TableName specifies the table name for ProductImage
func (ProductImage) TableName() string {
	return "product_images"
}
