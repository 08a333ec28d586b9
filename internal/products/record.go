package product

import (
	"encoding/json"
	"fmt"

	"github.com/boltfit/catalog-backend/pkg/docstore"
	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
	"github.com/boltfit/catalog-backend/pkg/validation"
)

// Stored field names.
const (
	fieldName          = "name"
	fieldDescription   = "description"
	fieldPrice         = "price"
	fieldOriginalPrice = "original_price"
	fieldCategory      = "category"
	fieldImages        = "images"
	fieldSizes         = "sizes"
	fieldColors        = "colors"
	fieldMaterial      = "material"
	fieldBrand         = "brand"
	fieldIsFeatured    = "is_featured"
	fieldIsActive      = "is_active"
	fieldCreatedAt     = "created_at"
	fieldUpdatedAt     = "updated_at"
	fieldCreatedBy     = "created_by"
	fieldUpdatedBy     = "updated_by"
)

// storedProduct mirrors the persisted document. IsActive is a pointer so a
// document missing the field reads as active.
type storedProduct struct {
	Product
	IsActive *bool `json:"is_active"`
}

func fromDocument(doc docstore.Document) (Product, error) {
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return Product{}, malformed(doc.ID, err)
	}
	var stored storedProduct
	if err := json.Unmarshal(raw, &stored); err != nil {
		return Product{}, malformed(doc.ID, err)
	}

	p := stored.Product
	p.ID = doc.ID
	p.IsActive = stored.IsActive == nil || *stored.IsActive
	if err := validation.StructWithMessage(&p, fmt.Sprintf("stored product %s is malformed", doc.ID)); err != nil {
		return Product{}, err
	}
	return p.withEmptySlices(), nil
}

func malformed(id string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("stored product %s is malformed", id)).
		WithDetails(map[string]string{"id": id})
}

// toDocument renders every persisted field of p except the id.
func toDocument(p Product) map[string]any {
	data := map[string]any{
		fieldName:        p.Name,
		fieldDescription: p.Description,
		fieldPrice:       p.Price,
		fieldCategory:    p.Category,
		fieldImages:      imagesValue(p.Images),
		fieldSizes:       sizesValue(p.Sizes),
		fieldColors:      colorsValue(p.Colors),
		fieldBrand:       p.Brand,
		fieldIsFeatured:  p.IsFeatured,
		fieldIsActive:    p.IsActive,
		fieldCreatedAt:   p.CreatedAt,
		fieldUpdatedAt:   p.UpdatedAt,
		fieldCreatedBy:   p.CreatedBy,
	}
	data[fieldOriginalPrice] = optionalFloat(p.OriginalPrice)
	data[fieldMaterial] = optionalString(p.Material)
	return data
}

// optionalFloat stores a nil pointer as an explicit null.
func optionalFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optionalString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func imagesValue(images []string) []any {
	out := make([]any, 0, len(images))
	for _, url := range images {
		out = append(out, url)
	}
	return out
}

func sizesValue(sizes []Size) []any {
	out := make([]any, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, map[string]any{"size": s.Size, "stock": s.Stock})
	}
	return out
}

func colorsValue(colors []Color) []any {
	out := make([]any, 0, len(colors))
	for _, c := range colors {
		out = append(out, map[string]any{"name": c.Name, "hex_code": c.HexCode})
	}
	return out
}
