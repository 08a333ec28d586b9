package db

import (
	"context"
	"errors"
	"testing"

	"github.com/boltfit/catalog-backend/pkg/config"
	"gorm.io/gorm"
)

type txProbe struct {
	ID    int
	Label string
}

func newSQLiteClient(t *testing.T, dsn string) *Client {
	t.Helper()
	client, err := New(context.Background(), config.StoreDriverSQLite, config.DBConfig{DSN: dsn, MaxOpenConns: 1}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.DB().AutoMigrate(&txProbe{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return client
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	client := newSQLiteClient(t, "file:tx_probe?mode=memory&cache=shared")
	ctx := context.Background()

	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&txProbe{Label: "kept"}).Error
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&txProbe{Label: "dropped"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}

	var count int64
	if err := client.DB().Model(&txProbe{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after rollback, got %d", count)
	}
}

func TestPingAndDriver(t *testing.T) {
	client := newSQLiteClient(t, "file:ping_probe?mode=memory&cache=shared")
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if client.Driver() != config.StoreDriverSQLite {
		t.Fatalf("unexpected driver %q", client.Driver())
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(context.Background(), config.StoreDriverSQLite, config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error for empty DSN")
	}
	if _, err := New(context.Background(), "mysql", config.DBConfig{DSN: "x"}, nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
