package dto

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory-api/internal/domain"
)

// orderings maps the accepted ordering keys to column names. A leading
// '-' on the query value selects descending order.
var orderings = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ParseProductFilter reads product listing predicates from the query
// string. Parsing is permissive: a malformed value is ignored rather
// than failing the request, so a bad filter never turns into an error
// response. Listings are active-only unless show_inactive=true.
func ParseProductFilter(values url.Values) domain.ProductFilter {
	f := domain.ProductFilter{Ordering: "-created_at"}

	if id, err := uuid.Parse(values.Get("category")); err == nil {
		f.CategoryID = &id
	}
	if s := domain.Size(values.Get("size")); s.IsValid() {
		f.Size = &s
	}
	if c := domain.Color(strings.ToUpper(values.Get("color"))); c.IsValid() {
		f.Color = &c
	}
	if b, err := strconv.ParseBool(values.Get("is_active")); err == nil {
		f.IsActive = &b
	}
	f.IsActive = defaultActiveOnly(f.IsActive, values)

	f.MinPrice = parseDecimal(values.Get("min_price"))
	f.MaxPrice = parseDecimal(values.Get("max_price"))
	f.MinStock = parseInt(values.Get("min_stock"))
	f.MaxStock = parseInt(values.Get("max_stock"))

	for _, raw := range splitList(values.Get("sizes")) {
		if s := domain.Size(raw); s.IsValid() {
			f.Sizes = append(f.Sizes, s)
		}
	}
	for _, raw := range splitList(values.Get("colors")) {
		if c := domain.Color(strings.ToUpper(raw)); c.IsValid() {
			f.Colors = append(f.Colors, c)
		}
	}
	for _, raw := range splitList(values.Get("categories")) {
		if id, err := uuid.Parse(raw); err == nil {
			f.CategoryIDs = append(f.CategoryIDs, id)
		}
	}

	f.InStock = parseBool(values.Get("in_stock"))
	f.OutOfStock = parseBool(values.Get("out_of_stock"))
	f.LowStock = parseBool(values.Get("low_stock"))

	f.Search = strings.TrimSpace(values.Get("search"))

	f.CreatedAfter = parseTime(values.Get("created_after"))
	f.CreatedBefore = parseTime(values.Get("created_before"))
	f.UpdatedAfter = parseTime(values.Get("updated_after"))

	if ordering := values.Get("ordering"); ordering != "" {
		key := strings.TrimPrefix(ordering, "-")
		if _, ok := orderings[key]; ok {
			f.Ordering = ordering
		}
	}

	return f
}

// ParseCategoryFilter reads category listing predicates from the query
// string, with the same permissive semantics and active-only default
// as ParseProductFilter.
func ParseCategoryFilter(values url.Values) domain.CategoryFilter {
	f := domain.CategoryFilter{
		Name: strings.TrimSpace(values.Get("name")),
	}
	f.IsActive = defaultActiveOnly(parseBool(values.Get("is_active")), values)
	f.HasProducts = parseBool(values.Get("has_products"))
	f.CreatedAfter = parseTime(values.Get("created_after"))
	return f
}

// defaultActiveOnly pins a listing to active rows when the caller set
// neither is_active nor show_inactive=true.
func defaultActiveOnly(isActive *bool, values url.Values) *bool {
	if isActive != nil {
		return isActive
	}
	if show, err := strconv.ParseBool(values.Get("show_inactive")); err == nil && show {
		return nil
	}
	active := true
	return &active
}

// OrderClause translates an ordering value into an ORDER BY fragment.
// Unknown keys fall back to newest-first.
func OrderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	column, ok := orderings[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return "created_at DESC"
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseInt(raw string) *int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseBool(raw string) *bool {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

func parseDecimal(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// parseTime accepts RFC 3339 timestamps and bare dates.
func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
