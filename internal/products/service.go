package product

import (
	"context"
	"fmt"
	"time"

	"github.com/boltfit/catalog-backend/pkg/logger"
	"github.com/boltfit/catalog-backend/pkg/validation"
)

// Service exposes catalog browsing and admin mutations.
type Service interface {
	List(ctx context.Context, query ListQuery) (*ListResult, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, actor string, input CreateInput) (*Product, error)
	Update(ctx context.Context, actor, id string, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, actor, id string) (*DeleteResult, error)
	Categories() []string
}

// CreateInput is a normalized create request. Sizes and Colors are the raw
// comma-separated form values.
type CreateInput struct {
	Name          string
	Description   string
	Price         float64
	OriginalPrice *float64
	Category      string
	Material      *string
	Brand         string
	Sizes         string
	Colors        string
	IsFeatured    bool
	IsActive      bool
	Images        []string
}

// UpdateInput carries only the fields the caller supplied.
type UpdateInput struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	Category      *string
	Material      *string
	Brand         *string
	Sizes         *string
	Colors        *string
	IsFeatured    *bool
	IsActive      *bool
	Images        *[]string
}

// DeleteResult acknowledges a removed product.
type DeleteResult struct {
	ID        string    `json:"-"`
	Message   string    `json:"message"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}

type repository interface {
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// ServiceParams bundles the dependencies required to build a product service.
type ServiceParams struct {
	Repo         repository
	Publisher    EventPublisher
	Logger       *logger.Logger
	Categories   []string
	DefaultBrand string
	Now          func() time.Time
}

type service struct {
	repo         repository
	publisher    EventPublisher
	logg         *logger.Logger
	categories   []string
	defaultBrand string
	now          func() time.Time
}

// NewService constructs a product service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	svc := &service{
		repo:         params.Repo,
		publisher:    params.Publisher,
		logg:         params.Logger,
		categories:   append([]string{}, params.Categories...),
		defaultBrand: params.DefaultBrand,
		now:          params.Now,
	}
	if svc.publisher == nil {
		svc.publisher = noopPublisher{}
	}
	if svc.logg == nil {
		svc.logg = logger.Nop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := Query(products, query)
	return &result, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create stores a new product and returns it as re-read from the store.
func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*Product, error) {
	now := s.timestamp()
	brand := input.Brand
	if brand == "" {
		brand = s.defaultBrand
	}
	images := input.Images
	if images == nil {
		images = []string{}
	}

	p := Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Category:      input.Category,
		Images:        images,
		Sizes:         ParseSizes(input.Sizes),
		Colors:        ParseColors(input.Colors),
		Material:      input.Material,
		Brand:         brand,
		IsFeatured:    input.IsFeatured,
		IsActive:      input.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     actor,
	}
	if err := validation.Struct(&p); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"product_id": id, "admin_email": actor})
	s.logg.Info(ctx, "product.created")
	s.publish(ctx, Event{Type: EventProductCreated, ProductID: id, Actor: actor, OccurredAt: now, Product: &created})
	return &created, nil
}

// Update writes only the supplied fields plus updated_at and updated_by.
func (s *service) Update(ctx context.Context, actor, id string, input UpdateInput) (*Product, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	merged, fields := applyUpdate(existing, input)
	merged.UpdatedAt = now
	merged.UpdatedBy = actor
	fields[fieldUpdatedAt] = now
	fields[fieldUpdatedBy] = actor
	if err := validation.Struct(&merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"product_id": id, "admin_email": actor})
	s.logg.Info(ctx, "product.updated")
	s.publish(ctx, Event{Type: EventProductUpdated, ProductID: id, Actor: actor, OccurredAt: now, Product: &updated})
	return &updated, nil
}

// Delete removes an existing product. Images are left in blob storage; the
// deleted event lists them for external cleanup.
func (s *service) Delete(ctx context.Context, actor, id string) (*DeleteResult, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	now := s.timestamp()
	ctx = s.logg.WithFields(ctx, map[string]any{"product_id": id, "admin_email": actor})
	s.logg.Info(ctx, "product.deleted")
	s.publish(ctx, Event{Type: EventProductDeleted, ProductID: id, Actor: actor, OccurredAt: now, Images: existing.Images})

	return &DeleteResult{
		ID:        id,
		Message:   fmt.Sprintf("Product %s deleted successfully", id),
		DeletedBy: actor,
		DeletedAt: now,
	}, nil
}

func (s *service) Categories() []string {
	return append([]string{}, s.categories...)
}

// publish never fails the caller: the mutation is already committed.
func (s *service) publish(ctx context.Context, event Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "event_type", event.Type), "product.event.publish_failed", err)
	}
}

func (s *service) timestamp() time.Time {
	return s.now().UTC()
}

// applyUpdate merges the provided fields into p and returns the matching store fields.
func applyUpdate(p Product, in UpdateInput) (Product, map[string]any) {
	fields := map[string]any{}
	if in.Name != nil {
		p.Name = *in.Name
		fields[fieldName] = p.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
		fields[fieldDescription] = p.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
		fields[fieldPrice] = p.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = in.OriginalPrice
		fields[fieldOriginalPrice] = *in.OriginalPrice
	}
	if in.Category != nil {
		p.Category = *in.Category
		fields[fieldCategory] = p.Category
	}
	if in.Material != nil {
		p.Material = in.Material
		fields[fieldMaterial] = *in.Material
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
		fields[fieldBrand] = p.Brand
	}
	if in.Sizes != nil {
		p.Sizes = ParseSizes(*in.Sizes)
		fields[fieldSizes] = sizesValue(p.Sizes)
	}
	if in.Colors != nil {
		p.Colors = ParseColors(*in.Colors)
		fields[fieldColors] = colorsValue(p.Colors)
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
		fields[fieldIsFeatured] = p.IsFeatured
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
		fields[fieldIsActive] = p.IsActive
	}
	if in.Images != nil {
		p.Images = append([]string{}, (*in.Images)...)
		fields[fieldImages] = imagesValue(p.Images)
	}
	return p, fields
}
