package services

import (
	"math"
	"strconv"
	"strings"

	"katalog/internal/models"
)

// DefaultPage is the page served when none, or an invalid one, is requested.
const DefaultPage = 1

// ProductQuery holds the list parameters taken from the query string.
type ProductQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// PageRef points at a neighbouring window.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ProductPage is one window of the filtered product listing.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Next     *PageRef         `json:"next,omitempty"`
	Previous *PageRef         `json:"previous,omitempty"`
}

// ParsePageParam reads the leading integer of raw, ignoring anything after the
// digits ("2abc" and "2.9" are 2). Values too large for an int saturate.
// fallback is returned when raw has no leading digits.
func ParsePageParam(raw string, fallback int) int {
	s := strings.TrimSpace(raw)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return fallback
	}
	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		n = math.MaxInt
	}
	if neg {
		return -n
	}
	return n
}

// ApplyQuery filters products by category, then by name search, then cuts the
// requested window. Page and limit values below 1 fall back to DefaultPage and
// defaultLimit.
func ApplyQuery(products []models.Product, q ProductQuery, defaultLimit int) ProductPage {
	filtered := make([]models.Product, 0, len(products))
	category := strings.ToLower(q.Category)
	search := strings.ToLower(q.Search)
	for _, p := range products {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	n := len(filtered)
	result := ProductPage{Products: filtered[:0]}
	if page > 1 {
		result.Previous = &PageRef{Page: page - 1, Limit: limit}
	}
	// Past the end: (page-1)*limit > n. Checked by division so it cannot overflow.
	if page-1 > n/limit {
		return result
	}

	start := (page - 1) * limit
	end := n
	if limit < n-start {
		end = start + limit
		result.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	result.Products = filtered[start:end]
	return result
}

// CategoryCounts counts products per category over the full listing.
func CategoryCounts(products []models.Product) map[string]int {
	stats := make(map[string]int)
	for _, p := range products {
		stats[p.Category]++
	}
	return stats
}
