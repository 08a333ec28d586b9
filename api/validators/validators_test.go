package validators

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
)

func TestParseQueryIntBounds(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?per_page=101&page=2", nil)

	if _, err := ParseQueryInt(req, "per_page", 10, 1, 100); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	page, err := ParseQueryInt(req, "page", 1, 1, 1000)
	if err != nil || page != 2 {
		t.Fatalf("expected page 2, got %d (%v)", page, err)
	}
	def, err := ParseQueryInt(req, "missing", 7, 1, 10)
	if err != nil || def != 7 {
		t.Fatalf("expected default 7, got %d (%v)", def, err)
	}
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?is_featured=YES&is_active=maybe", nil)

	featured, err := ParseQueryBool(req, "is_featured")
	if err != nil || featured == nil || !*featured {
		t.Fatalf("expected true, got %v (%v)", featured, err)
	}
	if _, err := ParseQueryBool(req, "is_active"); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad bool, got %v", err)
	}
	absent, err := ParseQueryBool(req, "category")
	if err != nil || absent != nil {
		t.Fatalf("expected nil for absent parameter")
	}
}

func TestFormHelpers(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Tee")
	form.Set("sizes", "")
	form.Set("price", "19.5")
	form.Set("is_active", "off")
	form.Set("bad_price", "abc")
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := ParseForm(req); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if v, ok := FormString(req, "sizes"); !ok || v != "" {
		t.Fatalf("expected empty sizes to count as provided")
	}
	if FormOptionalString(req, "colors") != nil {
		t.Fatalf("expected absent colors to be nil")
	}
	price, err := FormFloat(req, "price")
	if err != nil || price == nil || *price != 19.5 {
		t.Fatalf("unexpected price %v (%v)", price, err)
	}
	if _, err := FormFloat(req, "bad_price"); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad price")
	}
	active, err := FormBool(req, "is_active")
	if err != nil || active == nil || *active {
		t.Fatalf("expected is_active=false, got %v (%v)", active, err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var dest struct {
		IDToken string `json:"id_token" validate:"required"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id_token":"x","extra":1}`))
	if err := DecodeJSONBody(req, &dest); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id_token":""}`))
	if err := DecodeJSONBody(req, &dest); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected required violation, got %v", err)
	}
}

func TestDecodeJSONBodyLenientIgnoresUnknownFields(t *testing.T) {
	var dest struct {
		IDToken string `json:"id_token" validate:"required"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id_token":"x","client":"web"}`))
	if err := DecodeJSONBodyLenient(req, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.IDToken != "x" {
		t.Fatalf("expected id_token decoded, got %q", dest.IDToken)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"client":"web"}`))
	if err := DecodeJSONBodyLenient(req, &dest); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected required violation, got %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello world ", 5); got != "hello" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString(" camisetaé niño ", 9); got != "camisetaé" {
		t.Fatalf("expected rune-safe cut, got %q", got)
	}
	if got := SanitizeString("ñññ", 10); got != "ñññ" {
		t.Fatalf("unexpected %q", got)
	}
}
