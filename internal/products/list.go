package product

import (
	"sort"
	"strings"

	"github.com/boltfit/catalog-backend/pkg/pagination"
)

// ListQuery holds validated filters and page inputs. Nil pointers and empty
// strings disable their filter.
type ListQuery struct {
	IsActive   *bool
	Category   string
	IsFeatured *bool
	Search     string
	Page       int
	PerPage    int
}

// ListResult is one page of filtered products.
type ListResult struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalPages int       `json:"total_pages"`
}

// Query filters, sorts newest first and pages products. The input slice is not modified.
func Query(products []Product, q ListQuery) ListResult {
	matched := make([]Product, 0, len(products))
	search := strings.ToLower(q.Search)
	for _, p := range products {
		if q.matches(p, search) {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	params := pagination.Params{Page: q.Page, PerPage: q.PerPage}
	start, end := pagination.Bounds(params, len(matched))
	page := make([]Product, 0, end-start)
	page = append(page, matched[start:end]...)

	return ListResult{
		Products:   page,
		Total:      len(matched),
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalPages: pagination.TotalPages(len(matched), q.PerPage),
	}
}

func (q ListQuery) matches(p Product, loweredSearch string) bool {
	if q.IsActive != nil && p.IsActive != *q.IsActive {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.IsFeatured != nil && p.IsFeatured != *q.IsFeatured {
		return false
	}
	if loweredSearch != "" &&
		!strings.Contains(strings.ToLower(p.Name), loweredSearch) &&
		!strings.Contains(strings.ToLower(p.Description), loweredSearch) {
		return false
	}
	return true
}
