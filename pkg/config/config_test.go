package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env dev, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8000" {
		t.Fatalf("expected default port 8000, got %q", cfg.App.Port)
	}
	if got := cfg.Auth.VerifyTimeout; got != 10*time.Second {
		t.Fatalf("expected verify timeout 10s, got %v", got)
	}
	if len(cfg.Auth.AdminEmails) != 2 || cfg.Auth.AdminEmails[0] != "a@x.com" || cfg.Auth.AdminEmails[1] != "b@y.com" {
		t.Fatalf("unexpected admin emails %v", cfg.Auth.AdminEmails)
	}
	if cfg.Store.Collection != "products" {
		t.Fatalf("unexpected collection %q", cfg.Store.Collection)
	}
	if len(cfg.Catalog.Categories) != 4 || cfg.Catalog.Categories[1] != "T-Shirts" {
		t.Fatalf("unexpected categories %v", cfg.Catalog.Categories)
	}
	if cfg.Catalog.DefaultBrand != "BOLT FIT" {
		t.Fatalf("unexpected default brand %q", cfg.Catalog.DefaultBrand)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("expected redis disabled without url")
	}
	if cfg.PubSub.Enabled() {
		t.Fatal("expected pubsub disabled without topic")
	}
	if cfg.PubSub.ImageCleanupSubscription != "product-images-cleanup" {
		t.Fatalf("unexpected cleanup subscription %q", cfg.PubSub.ImageCleanupSubscription)
	}
	if cfg.Storage.BucketName != "" {
		t.Fatalf("expected no bucket by default, got %q", cfg.Storage.BucketName)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_BlankAllowListRejected(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAdminEmails, " , ")

	if _, err := Load(); err == nil {
		t.Fatal("expected blank allow-list to be rejected")
	}
}

func TestLoad_FirestoreNeedsProject(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreDriver, StoreDriverFirestore)

	if _, err := Load(); err == nil {
		t.Fatal("expected firestore without project id to fail")
	}

	t.Setenv(EnvGCPProjectID, "boltfit")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error with project id: %v", err)
	}
}

func TestLoad_DevVerifierRejectedInProd(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvAuthVerifier, VerifierHS256)
	t.Setenv(EnvAuthDevSecret, "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected hs256 verifier to be refused in prod")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
	t.Setenv(EnvGoogleClientID, "client-id.apps.googleusercontent.com")
	t.Setenv(EnvAdminEmails, " A@X.com ,b@y.com,")
	t.Setenv(EnvStoreDriver, StoreDriverSQLite)
	t.Setenv(EnvDBDSN, "file::memory:?cache=shared")
	for _, key := range []string{EnvGCPProjectID, EnvRedisURL, EnvPubSubEventsTopic, EnvAuthVerifier, EnvAuthDevSecret, EnvCatalogCategories, EnvPort} {
		unsetEnv(t, key)
	}
}

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
