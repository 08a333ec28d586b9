// Command devtoken mints an HS256 ID token accepted by the api when
// BOLTFIT_AUTH_VERIFIER=hs256. It refuses to run in prod.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/boltfit/catalog-backend/pkg/auth"
	"github.com/boltfit/catalog-backend/pkg/config"
	"github.com/boltfit/catalog-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "devtoken"})
	_ = godotenv.Load()

	email := pflag.StringP("email", "e", "", "email claim (defaults to the first allow-listed admin)")
	name := pflag.StringP("name", "n", "Local Admin", "name claim")
	picture := pflag.StringP("picture", "p", "", "picture claim")
	ttl := pflag.DurationP("ttl", "t", time.Hour, "token lifetime")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	if cfg.Auth.Verifier != config.VerifierHS256 {
		fmt.Fprintf(os.Stderr, "devtoken requires %s=%s\n", config.EnvAuthVerifier, config.VerifierHS256)
		os.Exit(1)
	}

	if *email == "" {
		*email = cfg.Auth.AdminEmails[0]
	}

	token, err := auth.MintDevToken(cfg.Auth.DevSecret, time.Now(), auth.DevTokenInput{
		Email:    *email,
		Name:     *name,
		Picture:  *picture,
		Audience: cfg.Auth.GoogleClientID,
		Issuer:   cfg.Auth.DevIssuer,
		TTL:      *ttl,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to mint token", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
