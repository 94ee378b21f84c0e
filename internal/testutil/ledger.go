package testutil

import (
	"testing"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/app"
	"github.com/preston-bernstein/team-ledger/internal/docstore"
	"github.com/preston-bernstein/team-ledger/internal/store"
)

// NewTempLedger returns repositories over a fresh document store in a test temp dir.
func NewTempLedger(t *testing.T, opts ...store.Option) (*docstore.Store, *store.Ledger) {
	t.Helper()
	docs := docstore.NewStore(t.TempDir(), nil, nil)
	if err := docs.Init(); err != nil {
		t.Fatalf("init document store: %v", err)
	}
	return docs, store.NewLedger(docs, opts...)
}

// NewTempServices wires the app services over a temp ledger, evaluating "today" in UTC.
func NewTempServices(t *testing.T, opts ...store.Option) app.Services {
	t.Helper()
	_, ledger := NewTempLedger(t, opts...)
	return app.NewServices(ledger, nil, time.UTC)
}
