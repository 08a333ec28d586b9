// Package gcs deletes product images from a Cloud Storage (Firebase Storage)
// bucket through the JSON API.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"github.com/boltfit/catalog-backend/pkg/config"
	"github.com/boltfit/catalog-backend/pkg/gcp"
	"github.com/boltfit/catalog-backend/pkg/logger"
)

const (
	scope          = "https://www.googleapis.com/auth/devstorage.read_write"
	defaultBaseURL = "https://storage.googleapis.com/storage/v1"
	pingTimeout    = 5 * time.Second
)

// ErrObjectNotFound is returned when the object is already gone.
var ErrObjectNotFound = errors.New("gcs object not found")

// StatusError carries a non-success JSON API response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("gcs %s failed: %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("gcs %s failed: %d", e.Op, e.StatusCode)
}

// Temporary reports whether retrying the call may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

type Client struct {
	httpClient *http.Client
	bucket     string
	baseURL    string
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// NewClient authenticates with the configured GCP credentials (or ADC) and
// checks the bucket is reachable.
func NewClient(ctx context.Context, cfg config.StorageConfig, gcpCfg config.GCPConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BucketName) == "" {
		return nil, errors.New("gcs bucket name is required")
	}

	opts := append(gcp.ClientOptions(gcpCfg), option.WithScopes(scope))
	httpClient, _, err := htransport.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gcs http client: %w", err)
	}

	client := NewClientWithHTTP(httpClient, cfg.BucketName, "")
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("gcs health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "bucket", client.bucket), "gcs client initialized")
	}
	return client, nil
}

// NewClientWithHTTP builds a client around an already authenticated HTTP
// client. An empty baseURL targets the public JSON API.
func NewClientWithHTTP(httpClient *http.Client, bucket, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		bucket:     strings.TrimSpace(bucket),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

func (c *Client) Bucket() string {
	if c == nil {
		return ""
	}
	return c.bucket
}

func (c *Client) Close() error {
	return nil
}

// Ping lists at most one object (requires storage.objects.list).
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.httpClient == nil {
		return errors.New("gcs client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/b/%s/o?maxResults=1", c.baseURL, url.PathEscape(c.bucket))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError("object check", resp)
	}
	return nil
}

// DeleteObject removes object from the client's bucket.
func (c *Client) DeleteObject(ctx context.Context, object string) error {
	if c == nil || c.httpClient == nil {
		return errors.New("gcs client not initialized")
	}
	if object == "" {
		return errors.New("object name is required")
	}

	u := fmt.Sprintf("%s/b/%s/o/%s", c.baseURL, url.PathEscape(c.bucket), url.PathEscape(object))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrObjectNotFound
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return statusError("delete", resp)
	}
}

func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
