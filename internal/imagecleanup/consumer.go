// Package imagecleanup removes a deleted product's images from blob storage.
package imagecleanup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"

	product "github.com/boltfit/catalog-backend/internal/products"
	"github.com/boltfit/catalog-backend/pkg/logger"
	"github.com/boltfit/catalog-backend/pkg/storage/gcs"
)

type objectDeleter interface {
	Bucket() string
	DeleteObject(ctx context.Context, object string) error
}

type processResult struct {
	ack  bool
	nack bool
}

// Consumer listens for product.deleted events and deletes the images that
// live in the configured bucket. Images hosted elsewhere are left alone.
type Consumer struct {
	storage      objectDeleter
	subscription *pubsub.Subscriber
	logg         *logger.Logger
}

func NewConsumer(storage objectDeleter, subscription *pubsub.Subscriber, logg *logger.Logger) (*Consumer, error) {
	if storage == nil {
		return nil, errors.New("storage client is required")
	}
	if subscription == nil {
		return nil, errors.New("image cleanup subscription is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Consumer{storage: storage, subscription: subscription, logg: logg}, nil
}

// Run processes events until the context is canceled or the subscription errors.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": msg.Attributes["type"],
		"product_id": msg.Attributes["product_id"],
	})

	if msg.Attributes["type"] != product.EventProductDeleted {
		c.logg.Debug(logCtx, "skipping non-delete event")
		return processResult{ack: true}
	}

	var event product.Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logg.Error(logCtx, "failed to decode product event", err)
		return processResult{ack: true}
	}

	var deleted, skipped int
	for _, image := range event.Images {
		bucket, object, ok := gcs.ObjectFromURL(image)
		if !ok || bucket != c.storage.Bucket() {
			skipped++
			continue
		}

		err := c.storage.DeleteObject(ctx, object)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, gcs.ErrObjectNotFound):
			skipped++
		case isTransient(err):
			c.logg.Error(c.logg.WithField(logCtx, "object", object), "image delete failed, will retry", err)
			return processResult{nack: true}
		default:
			c.logg.Error(c.logg.WithField(logCtx, "object", object), "image delete failed", err)
			skipped++
		}
	}

	c.logg.Info(c.logg.WithFields(logCtx, map[string]any{
		"deleted": deleted,
		"skipped": skipped,
	}), fmt.Sprintf("product images cleaned up (%d of %d)", deleted, len(event.Images)))
	return processResult{ack: true}
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var statusErr *gcs.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	// Transport failures never reached the bucket.
	return true
}
