package product

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/boltfit/catalog-backend/pkg/config"
	"github.com/boltfit/catalog-backend/pkg/db"
	"github.com/boltfit/catalog-backend/pkg/docstore"
	"github.com/google/uuid"
)

const testAdmin = "a@x.com"

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

// countingStore wraps a real store and counts mutating calls.
type countingStore struct {
	docstore.Store
	updates int
	deletes int
	failAll bool
}

func (c *countingStore) Update(ctx context.Context, collection, id string, data map[string]any) error {
	c.updates++
	return c.Store.Update(ctx, collection, id, data)
}

func (c *countingStore) Delete(ctx context.Context, collection, id string) error {
	c.deletes++
	return c.Store.Delete(ctx, collection, id)
}

func (c *countingStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if c.failAll {
		return nil, errors.New("backend unavailable")
	}
	return c.Store.List(ctx, collection)
}

type stepClock struct {
	current time.Time
}

func (s *stepClock) Now() time.Time {
	s.current = s.current.Add(time.Second)
	return s.current
}

type testEnv struct {
	svc       Service
	store     *countingStore
	publisher *recordingPublisher
	clock     *stepClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	client, err := db.New(context.Background(), config.StoreDriverSQLite, config.DBConfig{
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlStore := docstore.NewSQL(client)
	if err := sqlStore.AutoMigrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlStore.Close() })

	store := &countingStore{Store: sqlStore}
	repo, err := NewRepository(store, "products", time.Second)
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	publisher := &recordingPublisher{}
	clock := &stepClock{current: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	svc, err := NewService(ServiceParams{
		Repo:         repo,
		Publisher:    publisher,
		Categories:   []string{"Shirts", "T-Shirts", "Pants", "Trending"},
		DefaultBrand: "BOLT FIT",
		Now:          clock.Now,
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return &testEnv{svc: svc, store: store, publisher: publisher, clock: clock}
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:        "Oxford Shirt",
		Description: "Crisp cotton oxford",
		Price:       30,
		Category:    "Shirts",
		Sizes:       "S, M",
		Colors:      "Red, Teal",
		IsActive:    true,
		Images:      []string{"https://cdn/1.png"},
	}
}

func strPtr(v string) *string { return &v }
