package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/boltfit/catalog-backend/api/middleware"
	"github.com/boltfit/catalog-backend/api/responses"
	"github.com/boltfit/catalog-backend/api/validators"
	productsvc "github.com/boltfit/catalog-backend/internal/products"
	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
	"github.com/boltfit/catalog-backend/pkg/logger"
	"github.com/boltfit/catalog-backend/pkg/pagination"
)

// Pages past the end come back empty; the cap only keeps offsets in range.
const (
	maxPage         = math.MaxInt32
	maxSearchLength = 200
)

// ListProducts serves the storefront listing; inactive products are hidden
// unless is_active is passed explicitly.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	active := true
	return listProducts(svc, logg, &active)
}

// AdminListProducts serves the admin listing, which includes inactive
// products unless is_active narrows it.
func AdminListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return listProducts(svc, logg, nil)
}

func listProducts(svc productsvc.Service, logg *logger.Logger, defaultActive *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		query, err := parseListQuery(r, defaultActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseListQuery(r *http.Request, defaultActive *bool) (productsvc.ListQuery, error) {
	page, err := validators.ParseQueryInt(r, "page", pagination.FirstPage, pagination.FirstPage, maxPage)
	if err != nil {
		return productsvc.ListQuery{}, err
	}
	perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return productsvc.ListQuery{}, err
	}
	isActive, err := validators.ParseQueryBool(r, "is_active")
	if err != nil {
		return productsvc.ListQuery{}, err
	}
	if isActive == nil {
		isActive = defaultActive
	}
	isFeatured, err := validators.ParseQueryBool(r, "is_featured")
	if err != nil {
		return productsvc.ListQuery{}, err
	}

	q := r.URL.Query()
	return productsvc.ListQuery{
		IsActive:   isActive,
		Category:   q.Get("category"),
		IsFeatured: isFeatured,
		Search:     validators.SanitizeString(q.Get("search"), maxSearchLength),
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		id, err := productID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductCategories(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string][]string{"categories": svc.Categories()})
	}
}

// CreateProduct accepts an urlencoded or multipart form. image_urls is a JSON
// array of already uploaded URLs; a malformed value stores no images.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		admin := middleware.AdminEmailFromContext(r.Context())
		if admin == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
			return
		}

		input, err := parseCreateForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), admin, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func parseCreateForm(r *http.Request) (productsvc.CreateInput, error) {
	if err := validators.ParseForm(r); err != nil {
		return productsvc.CreateInput{}, err
	}

	price, err := validators.FormFloat(r, "price")
	if err != nil {
		return productsvc.CreateInput{}, err
	}
	if price == nil {
		return productsvc.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"price": "is required"})
	}
	originalPrice, err := validators.FormFloat(r, "original_price")
	if err != nil {
		return productsvc.CreateInput{}, err
	}
	isFeatured, err := validators.FormBool(r, "is_featured")
	if err != nil {
		return productsvc.CreateInput{}, err
	}
	isActive, err := validators.FormBool(r, "is_active")
	if err != nil {
		return productsvc.CreateInput{}, err
	}

	name, _ := validators.FormString(r, "name")
	description, _ := validators.FormString(r, "description")
	category, _ := validators.FormString(r, "category")
	brand, _ := validators.FormString(r, "brand")
	sizes, _ := validators.FormString(r, "sizes")
	colors, _ := validators.FormString(r, "colors")

	images := []string{}
	if raw, ok := validators.FormString(r, "image_urls"); ok {
		if urls, valid := productsvc.ParseImageURLs(raw); valid {
			images = urls
		}
	}

	input := productsvc.CreateInput{
		Name:          name,
		Description:   description,
		Price:         *price,
		OriginalPrice: originalPrice,
		Category:      category,
		Material:      validators.FormOptionalString(r, "material"),
		Brand:         brand,
		Sizes:         sizes,
		Colors:        colors,
		IsActive:      true,
		Images:        images,
	}
	if isFeatured != nil {
		input.IsFeatured = *isFeatured
	}
	if isActive != nil {
		input.IsActive = *isActive
	}
	return input, nil
}

// UpdateProduct merges only the form fields that were sent.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		admin := middleware.AdminEmailFromContext(r.Context())
		if admin == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
			return
		}
		id, err := productID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parseUpdateForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}
		product, err := svc.Update(ctx, admin, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func parseUpdateForm(r *http.Request) (productsvc.UpdateInput, error) {
	if err := validators.ParseForm(r); err != nil {
		return productsvc.UpdateInput{}, err
	}

	price, err := validators.FormFloat(r, "price")
	if err != nil {
		return productsvc.UpdateInput{}, err
	}
	originalPrice, err := validators.FormFloat(r, "original_price")
	if err != nil {
		return productsvc.UpdateInput{}, err
	}
	isFeatured, err := validators.FormBool(r, "is_featured")
	if err != nil {
		return productsvc.UpdateInput{}, err
	}
	isActive, err := validators.FormBool(r, "is_active")
	if err != nil {
		return productsvc.UpdateInput{}, err
	}

	input := productsvc.UpdateInput{
		Name:          validators.FormOptionalString(r, "name"),
		Description:   validators.FormOptionalString(r, "description"),
		Price:         price,
		OriginalPrice: originalPrice,
		Category:      validators.FormOptionalString(r, "category"),
		Material:      validators.FormOptionalString(r, "material"),
		Brand:         validators.FormOptionalString(r, "brand"),
		Sizes:         validators.FormOptionalString(r, "sizes"),
		Colors:        validators.FormOptionalString(r, "colors"),
		IsFeatured:    isFeatured,
		IsActive:      isActive,
	}
	if raw, ok := validators.FormString(r, "image_urls"); ok {
		if urls, valid := productsvc.ParseImageURLs(raw); valid {
			input.Images = &urls
		}
	}
	return input, nil
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		admin := middleware.AdminEmailFromContext(r.Context())
		if admin == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
			return
		}
		id, err := productID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Delete(r.Context(), admin, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func productID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return id, nil
}
