package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boltfit/catalog-backend/pkg/docstore"
	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
)

const notFoundMessage = "product not found"

// Repository maps the products collection onto the document store and
// translates store failures into typed errors.
type Repository struct {
	store      docstore.Store
	collection string
	timeout    time.Duration
}

func NewRepository(store docstore.Store, collection string, timeout time.Duration) (*Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("document store required")
	}
	if collection == "" {
		return nil, fmt.Errorf("collection name required")
	}
	return &Repository{store: store, collection: collection, timeout: timeout}, nil
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Get returns the product or NOT_FOUND.
func (r *Repository) Get(ctx context.Context, id string) (Product, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc, err := r.store.Get(ctx, r.collection, id)
	if err != nil {
		return Product{}, r.mapErr(err, "get product")
	}
	return fromDocument(*doc)
}

// List decodes every stored product. A malformed record fails the whole call.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs, err := r.store.List(ctx, r.collection)
	if err != nil {
		return nil, r.mapErr(err, "list products")
	}
	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		p, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *Repository) Create(ctx context.Context, p Product) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id, err := r.store.Add(ctx, r.collection, toDocument(p))
	if err != nil {
		return "", r.mapErr(err, "create product")
	}
	return id, nil
}

// Update writes only the supplied fields.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.store.Update(ctx, r.collection, id, fields); err != nil {
		return r.mapErr(err, "update product")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.store.Delete(ctx, r.collection, id); err != nil {
		return r.mapErr(err, "delete product")
	}
	return nil
}

func (r *Repository) mapErr(err error, op string) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, notFoundMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeStore, err, op)
}
