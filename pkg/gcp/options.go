package gcp

import (
	"strings"

	"github.com/boltfit/catalog-backend/pkg/config"
	"google.golang.org/api/option"
)

// ClientOptions returns credential options for Google Cloud clients.
// With neither credential set, clients fall back to Application Default Credentials.
func ClientOptions(cfg config.GCPConfig) []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.ApplicationCredentials) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.ApplicationCredentials))
	}
	return opts
}
