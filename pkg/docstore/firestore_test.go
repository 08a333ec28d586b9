package docstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Runs only against the Firestore emulator (FIRESTORE_EMULATOR_HOST).
func TestFirestoreStoreContract(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	store, err := NewFirestore(context.Background(), "boltfit-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	runContract(t, store, fmt.Sprintf("products_%d", time.Now().UnixNano()))
}

func TestNewFirestoreRequiresProject(t *testing.T) {
	_, err := NewFirestore(context.Background(), "")
	require.Error(t, err)
}
