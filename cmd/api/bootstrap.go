package main

import (
	"context"
	"fmt"

	"github.com/boltfit/catalog-backend/pkg/auth"
	"github.com/boltfit/catalog-backend/pkg/config"
	"github.com/boltfit/catalog-backend/pkg/db"
	"github.com/boltfit/catalog-backend/pkg/docstore"
	"github.com/boltfit/catalog-backend/pkg/gcp"
	"github.com/boltfit/catalog-backend/pkg/logger"
	"github.com/boltfit/catalog-backend/pkg/migrate"
)

// openStore builds the document store selected by BOLTFIT_STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (docstore.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverFirestore:
		return docstore.NewFirestore(ctx, cfg.GCP.ProjectID, gcp.ClientOptions(cfg.GCP)...)
	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		client, err := db.New(ctx, cfg.Store.Driver, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		return docstore.NewSQL(client), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// newVerifier returns the identity token verifier selected by BOLTFIT_AUTH_VERIFIER.
func newVerifier(ctx context.Context, cfg config.AuthConfig) (auth.Verifier, error) {
	switch cfg.Verifier {
	case config.VerifierGoogle:
		return auth.NewGoogleVerifier(ctx)
	case config.VerifierHS256:
		return auth.NewHS256Verifier(cfg.DevSecret, cfg.DevIssuer)
	default:
		return nil, fmt.Errorf("unsupported verifier %q", cfg.Verifier)
	}
}
