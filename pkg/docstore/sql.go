package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boltfit/catalog-backend/pkg/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type documentRow struct {
	Collection string    `gorm:"column:collection;primaryKey"`
	ID         string    `gorm:"column:id;primaryKey"`
	Data       string    `gorm:"column:data;type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (documentRow) TableName() string { return "documents" }

// SQL stores documents as JSON rows in a single documents table.
type SQL struct {
	client *db.Client
	now    func() time.Time
}

func NewSQL(client *db.Client) *SQL {
	return &SQL{client: client, now: time.Now}
}

// AutoMigrate creates the documents table without goose. Used by tests.
func (s *SQL) AutoMigrate() error {
	return s.client.DB().AutoMigrate(&documentRow{})
}

func (s *SQL) Get(ctx context.Context, collection, id string) (*Document, error) {
	row, err := findRow(s.client.DB().WithContext(ctx), collection, id)
	if err != nil {
		return nil, err
	}
	return row.document()
}

func (s *SQL) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	err := s.client.DB().WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (s *SQL) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	now := s.now().UTC()
	row := documentRow{
		Collection: collection,
		ID:         uuid.NewString(),
		Data:       string(payload),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.client.DB().WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("inserting into %s: %w", collection, err)
	}
	return row.ID, nil
}

func (s *SQL) Update(ctx context.Context, collection, id string, data map[string]any) error {
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := findRow(tx, collection, id)
		if err != nil {
			return err
		}
		merged := map[string]any{}
		if err := json.Unmarshal([]byte(row.Data), &merged); err != nil {
			return fmt.Errorf("decoding %s/%s: %w", collection, id, err)
		}
		for key, value := range data {
			merged[key] = value
		}
		payload, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		return tx.Model(&documentRow{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]any{"data": string(payload), "updated_at": s.now().UTC()}).Error
	})
}

func (s *SQL) Delete(ctx context.Context, collection, id string) error {
	res := s.client.DB().WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&documentRow{})
	if res.Error != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SQL) Close() error {
	return s.client.Close()
}

func findRow(tx *gorm.DB, collection, id string) (*documentRow, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var row documentRow
	err := tx.Where("collection = ? AND id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s/%s: %w", collection, id, err)
	}
	return &row, nil
}

func (r documentRow) document() (*Document, error) {
	data := map[string]any{}
	if err := json.Unmarshal([]byte(r.Data), &data); err != nil {
		return nil, fmt.Errorf("decoding %s/%s: %w", r.Collection, r.ID, err)
	}
	return &Document{ID: r.ID, Data: data}, nil
}
