package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/boltfit/catalog-backend/api/middleware"
	"github.com/boltfit/catalog-backend/internal/auth"
	productsvc "github.com/boltfit/catalog-backend/internal/products"
	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
	"github.com/boltfit/catalog-backend/pkg/logger"
)

type stubProductService struct {
	listQuery   productsvc.ListQuery
	createInput productsvc.CreateInput
	updateInput productsvc.UpdateInput
	actor       string
	id          string
	err         error
}

func (s *stubProductService) List(_ context.Context, q productsvc.ListQuery) (*productsvc.ListResult, error) {
	s.listQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ListResult{Products: []productsvc.Product{}, Page: q.Page, PerPage: q.PerPage}, nil
}

func (s *stubProductService) Get(_ context.Context, id string) (*productsvc.Product, error) {
	s.id = id
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.Product{ID: id, Name: "Tee"}, nil
}

func (s *stubProductService) Create(_ context.Context, actor string, in productsvc.CreateInput) (*productsvc.Product, error) {
	s.actor, s.createInput = actor, in
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.Product{ID: "p1", Name: in.Name}, nil
}

func (s *stubProductService) Update(_ context.Context, actor, id string, in productsvc.UpdateInput) (*productsvc.Product, error) {
	s.actor, s.id, s.updateInput = actor, id, in
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.Product{ID: id}, nil
}

func (s *stubProductService) Delete(_ context.Context, actor, id string) (*productsvc.DeleteResult, error) {
	s.actor, s.id = actor, id
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.DeleteResult{ID: id, Message: "Product " + id + " deleted successfully", DeletedBy: actor}, nil
}

func (s *stubProductService) Categories() []string {
	return []string{"Shirts", "Pants"}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withAdmin(req *http.Request) *http.Request {
	ctx := middleware.WithAdmin(req.Context(), auth.NewIdentity("admin@boltfit.test", "Admin", ""))
	return req.WithContext(ctx)
}

func withProductID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestListProductsDefaultsToActive(t *testing.T) {
	svc := &stubProductService{}
	rec := httptest.NewRecorder()
	ListProducts(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Shirts&search=%20tee%20", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	q := svc.listQuery
	if q.IsActive == nil || !*q.IsActive {
		t.Fatalf("expected is_active to default to true")
	}
	if q.IsFeatured != nil {
		t.Fatalf("expected is_featured filter off")
	}
	if q.Page != 1 || q.PerPage != 10 {
		t.Fatalf("unexpected paging %d/%d", q.Page, q.PerPage)
	}
	if q.Category != "Shirts" || q.Search != "tee" {
		t.Fatalf("unexpected filters %+v", q)
	}
}

func TestAdminListProductsIncludesInactive(t *testing.T) {
	svc := &stubProductService{}
	rec := httptest.NewRecorder()
	AdminListProducts(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.listQuery.IsActive != nil {
		t.Fatalf("expected no is_active filter for admins")
	}

	rec = httptest.NewRecorder()
	AdminListProducts(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products?is_active=false", nil))
	if svc.listQuery.IsActive == nil || *svc.listQuery.IsActive {
		t.Fatalf("expected explicit is_active=false")
	}
}

func TestListProductsRejectsBadPaging(t *testing.T) {
	for _, target := range []string{
		"/api/v1/products?per_page=0",
		"/api/v1/products?per_page=101",
		"/api/v1/products?page=0",
		"/api/v1/products?page=abc",
		"/api/v1/products?is_featured=perhaps",
	} {
		svc := &stubProductService{}
		rec := httptest.NewRecorder()
		ListProducts(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", target, rec.Code)
		}
	}
}

func TestListProductsPastLastPageIsEmpty(t *testing.T) {
	svc := &stubProductService{}
	rec := httptest.NewRecorder()
	ListProducts(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?page=100001", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.listQuery.Page != 100001 {
		t.Fatalf("expected page passed through, got %d", svc.listQuery.Page)
	}
	var body struct {
		Products []json.RawMessage `json:"products"`
		Page     int               `json:"page"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Products == nil || len(body.Products) != 0 || body.Page != 100001 {
		t.Fatalf("expected empty page 100001, got %s", rec.Body.String())
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	req := withProductID(httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil), "missing")
	rec := httptest.NewRecorder()
	GetProduct(svc, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if svc.id != "missing" {
		t.Fatalf("expected id passed through, got %q", svc.id)
	}
}

func TestProductCategories(t *testing.T) {
	rec := httptest.NewRecorder()
	ProductCategories(&stubProductService{}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/meta/categories", nil))
	var body struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Categories) != 2 || body.Categories[0] != "Shirts" {
		t.Fatalf("unexpected categories %v", body.Categories)
	}
}

func TestCreateProductParsesForm(t *testing.T) {
	svc := &stubProductService{}
	form := url.Values{}
	form.Set("name", "Classic Tee")
	form.Set("description", "Cotton tee")
	form.Set("price", "25")
	form.Set("original_price", "40")
	form.Set("category", "T-Shirts")
	form.Set("sizes", "S, M")
	form.Set("colors", "Red")
	form.Set("is_featured", "true")
	form.Set("image_urls", "not-json")

	rec := httptest.NewRecorder()
	CreateProduct(svc, testLogger()).ServeHTTP(rec, withAdmin(formRequest(http.MethodPost, "/api/v1/products", form)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	in := svc.createInput
	if svc.actor != "admin@boltfit.test" {
		t.Fatalf("unexpected actor %q", svc.actor)
	}
	if in.Price != 25 || in.OriginalPrice == nil || *in.OriginalPrice != 40 {
		t.Fatalf("unexpected prices %+v", in)
	}
	if !in.IsActive || !in.IsFeatured {
		t.Fatalf("expected active featured product, got %+v", in)
	}
	if in.Images == nil || len(in.Images) != 0 {
		t.Fatalf("expected malformed image_urls to yield an empty list, got %v", in.Images)
	}
	if in.Material != nil {
		t.Fatalf("expected absent material to stay nil")
	}
	if in.Sizes != "S, M" || in.Colors != "Red" {
		t.Fatalf("expected raw sizes/colors handed to the service")
	}
}

func TestCreateProductRequiresPrice(t *testing.T) {
	svc := &stubProductService{}
	form := url.Values{"name": {"Tee"}, "description": {"d"}, "category": {"Shirts"}}
	rec := httptest.NewRecorder()
	CreateProduct(svc, testLogger()).ServeHTTP(rec, withAdmin(formRequest(http.MethodPost, "/api/v1/products", form)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.actor != "" {
		t.Fatalf("service should not be called")
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateProduct(&stubProductService{}, testLogger()).ServeHTTP(rec, formRequest(http.MethodPost, "/api/v1/products", url.Values{}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestUpdateProductOnlyProvidedFields(t *testing.T) {
	svc := &stubProductService{}
	form := url.Values{}
	form.Set("price", "30")
	form.Set("sizes", "")
	form.Set("image_urls", "{broken")

	req := withProductID(withAdmin(formRequest(http.MethodPut, "/api/v1/products/p1", form)), "p1")
	rec := httptest.NewRecorder()
	UpdateProduct(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	in := svc.updateInput
	if svc.id != "p1" {
		t.Fatalf("unexpected id %q", svc.id)
	}
	if in.Price == nil || *in.Price != 30 {
		t.Fatalf("expected price provided")
	}
	if in.Sizes == nil || *in.Sizes != "" {
		t.Fatalf("expected empty sizes to be provided")
	}
	if in.Images != nil {
		t.Fatalf("expected malformed image_urls to be ignored on update")
	}
	if in.Name != nil || in.Colors != nil || in.IsActive != nil || in.IsFeatured != nil {
		t.Fatalf("expected untouched fields to stay nil: %+v", in)
	}
}

func TestUpdateProductReplacesImages(t *testing.T) {
	svc := &stubProductService{}
	form := url.Values{"image_urls": {`["https://cdn.test/a.png"]`}}
	req := withProductID(withAdmin(formRequest(http.MethodPut, "/api/v1/products/p1", form)), "p1")
	UpdateProduct(svc, testLogger()).ServeHTTP(httptest.NewRecorder(), req)

	if svc.updateInput.Images == nil || len(*svc.updateInput.Images) != 1 {
		t.Fatalf("expected one image, got %v", svc.updateInput.Images)
	}
}

func TestUpdateProductNullImagesLeavesImages(t *testing.T) {
	svc := &stubProductService{}
	form := url.Values{"name": {"Tee"}, "image_urls": {"null"}}
	req := withProductID(withAdmin(formRequest(http.MethodPut, "/api/v1/products/p1", form)), "p1")
	UpdateProduct(svc, testLogger()).ServeHTTP(httptest.NewRecorder(), req)

	if svc.updateInput.Images != nil {
		t.Fatalf("expected images untouched, got %v", *svc.updateInput.Images)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc := &stubProductService{}
	req := withProductID(withAdmin(httptest.NewRequest(http.MethodDelete, "/api/v1/products/p9", nil)), "p9")
	rec := httptest.NewRecorder()
	DeleteProduct(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Product p9 deleted successfully" || body["deleted_by"] != "admin@boltfit.test" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["id"]; ok {
		t.Fatalf("id should not be serialized")
	}
}
