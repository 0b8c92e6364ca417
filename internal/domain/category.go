package domain

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category groups products (Camisetas, Pantalones, Vestidos, ...).
type Category struct {
	BaseModel
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Slug        string    `gorm:"type:varchar(120);not null;uniqueIndex" json:"slug"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	Products    []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// NewCategory builds a category, deriving the slug from the name when
// none is given. The slug is generated exactly once here; renaming a
// category later never regenerates it, so external references stay
// stable.
func NewCategory(name, description, slug string) *Category {
	c := &Category{
		BaseModel:   BaseModel{ID: uuid.New()},
		Name:        name,
		Description: description,
		Slug:        slug,
		IsActive:    true,
	}
	if c.Slug == "" {
		c.Slug = Slugify(name)
	}
	return c
}

var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a name into a lowercase, hyphenated, ASCII-folded
// identifier: "Camisetas Niño" -> "camisetas-nino".
func Slugify(name string) string {
	folded, _, err := transform.String(slugFolder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
