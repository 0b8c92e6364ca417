package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Size is a fixed age/size token for children's clothing.
type Size string

const (
	Size0to3m   Size = "0-3m"
	Size3to6m   Size = "3-6m"
	Size6to9m   Size = "6-9m"
	Size9to12m  Size = "9-12m"
	Size12to18m Size = "12-18m"
	Size18to24m Size = "18-24m"
	Size2T      Size = "2T"
	Size3T      Size = "3T"
	Size4T      Size = "4T"
	Size5T      Size = "5T"
	Size6T      Size = "6T"
	Size7T      Size = "7T"
	Size8T      Size = "8T"
	SizeXS      Size = "XS"
	SizeS       Size = "S"
	SizeM       Size = "M"
	SizeL       Size = "L"
	SizeXL      Size = "XL"
)

// SizeNames maps size tokens to their display names.
var SizeNames = map[Size]string{
	Size0to3m:   "0-3 meses",
	Size3to6m:   "3-6 meses",
	Size6to9m:   "6-9 meses",
	Size9to12m:  "9-12 meses",
	Size12to18m: "12-18 meses",
	Size18to24m: "18-24 meses",
	Size2T:      "2 años",
	Size3T:      "3 años",
	Size4T:      "4 años",
	Size5T:      "5 años",
	Size6T:      "6 años",
	Size7T:      "7 años",
	Size8T:      "8 años",
	SizeXS:      "Extra Pequeño",
	SizeS:       "Pequeño",
	SizeM:       "Mediano",
	SizeL:       "Grande",
	SizeXL:      "Extra Grande",
}

// IsValid reports whether s is one of the known size tokens.
func (s Size) IsValid() bool {
	_, ok := SizeNames[s]
	return ok
}

// Display returns the human readable size name.
func (s Size) Display() string {
	return SizeNames[s]
}

// Color is a fixed palette color code.
type Color string

const (
	ColorRed        Color = "RED"
	ColorBlue       Color = "BLUE"
	ColorGreen      Color = "GREEN"
	ColorYellow     Color = "YELLOW"
	ColorPink       Color = "PINK"
	ColorPurple     Color = "PURPLE"
	ColorOrange     Color = "ORANGE"
	ColorBlack      Color = "BLACK"
	ColorWhite      Color = "WHITE"
	ColorGray       Color = "GRAY"
	ColorBrown      Color = "BROWN"
	ColorNavy       Color = "NAVY"
	ColorBeige      Color = "BEIGE"
	ColorTurquoise  Color = "TURQUOISE"
	ColorCoral      Color = "CORAL"
	ColorMint       Color = "MINT"
	ColorMulticolor Color = "MULTICOLOR"
)

// ColorNames maps color codes to their display names.
var ColorNames = map[Color]string{
	ColorRed:        "Rojo",
	ColorBlue:       "Azul",
	ColorGreen:      "Verde",
	ColorYellow:     "Amarillo",
	ColorPink:       "Rosa",
	ColorPurple:     "Morado",
	ColorOrange:     "Naranja",
	ColorBlack:      "Negro",
	ColorWhite:      "Blanco",
	ColorGray:       "Gris",
	ColorBrown:      "Café",
	ColorNavy:       "Azul Marino",
	ColorBeige:      "Beige",
	ColorTurquoise:  "Turquesa",
	ColorCoral:      "Coral",
	ColorMint:       "Menta",
	ColorMulticolor: "Multicolor",
}

// IsValid reports whether c is one of the known color codes.
func (c Color) IsValid() bool {
	_, ok := ColorNames[c]
	return ok
}

// Display returns the human readable color name.
func (c Color) Display() string {
	return ColorNames[c]
}

// StockOperation selects the direction of a stock adjustment.
type StockOperation string

const (
	StockAdd      StockOperation = "add"
	StockSubtract StockOperation = "subtract"
)

// Product represents a sellable clothing item.
type Product struct {
	BaseModel
	Name        string           `gorm:"type:varchar(200);not null" json:"name"`
	SKU         string           `gorm:"type:varchar(50);not null;uniqueIndex" json:"sku"`
	CategoryID  uuid.UUID        `gorm:"type:uuid;not null;index:idx_products_category_active" json:"category_id"`
	Category    Category         `gorm:"foreignKey:CategoryID" json:"-"`
	Size        Size             `gorm:"type:varchar(10);not null;index:idx_products_size_color" json:"size"`
	Color       Color            `gorm:"type:varchar(20);not null;index:idx_products_size_color" json:"color"`
	Price       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost,omitempty"`
	Stock       int              `gorm:"not null;default:0;index" json:"stock"`
	MinStock    int              `gorm:"not null;default:5" json:"min_stock"`
	IsActive    bool             `gorm:"not null;default:true;index:idx_products_category_active" json:"is_active"`
	Description string           `gorm:"type:text" json:"description"`
	ImageKey    string           `gorm:"type:varchar(255)" json:"image,omitempty"`
	Barcode     *string          `gorm:"type:varchar(50)" json:"barcode,omitempty"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// NewProduct builds a product and generates its SKU when none is given.
// Generation happens here, before any persistence, so the entity never
// exists with an empty SKU.
func NewProduct(name string, category *Category, size Size, color Color, sku string) *Product {
	p := &Product{
		BaseModel: BaseModel{ID: uuid.New()},
		Name:      name,
		Size:      size,
		Color:     color,
		SKU:       sku,
		IsActive:  true,
		MinStock:  5,
	}
	if category != nil {
		p.CategoryID = category.ID
		p.Category = *category
	}
	if p.SKU == "" {
		categoryName := ""
		if category != nil {
			categoryName = category.Name
		}
		p.SKU = GenerateSKU(categoryName, size, color)
	}
	return p
}

// GenerateSKU derives a unique product code from category, size and
// color plus a random 8-character uppercase hex suffix.
func GenerateSKU(categoryName string, size Size, color Color) string {
	categoryCode := "GEN"
	if categoryName != "" {
		runes := []rune(categoryName)
		if len(runes) > 3 {
			runes = runes[:3]
		}
		categoryCode = strings.ToUpper(string(runes))
	}

	sizeCode := strings.ReplaceAll(string(size), "-", "")
	sizeCode = strings.TrimSuffix(sizeCode, "T")

	colorCode := string(color)
	if len(colorCode) > 3 {
		colorCode = colorCode[:3]
	}

	suffix := strings.ToUpper(uuid.New().String()[:8])

	return categoryCode + sizeCode + colorCode + "-" + suffix
}

// IsLowStock reports whether the stock is at or below the restock threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// IsOutOfStock reports whether the product is sold out.
func (p *Product) IsOutOfStock() bool {
	return p.Stock == 0
}

// StockStatus returns the stock state as a display string.
func (p *Product) StockStatus() string {
	switch {
	case p.IsOutOfStock():
		return "Agotado"
	case p.IsLowStock():
		return "Stock Bajo"
	default:
		return "Disponible"
	}
}

// ProfitMargin returns (price - cost) / cost * 100, or nil when no
// positive cost is recorded.
func (p *Product) ProfitMargin() *decimal.Decimal {
	if p.Cost == nil || !p.Cost.IsPositive() {
		return nil
	}
	margin := p.Price.Sub(*p.Cost).Div(*p.Cost).Mul(decimal.NewFromInt(100))
	return &margin
}

// UpdateStock applies an in-memory stock adjustment. Subtracting more
// than the available stock fails and leaves the stock unchanged.
func (p *Product) UpdateStock(quantity int, op StockOperation) bool {
	if quantity <= 0 {
		return false
	}
	switch op {
	case StockAdd:
		p.Stock += quantity
		return true
	case StockSubtract:
		if p.Stock < quantity {
			return false
		}
		p.Stock -= quantity
		return true
	default:
		return false
	}
}
