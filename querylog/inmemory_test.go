package querylog

import (
	"context"
	"testing"

	"github.com/krishisetu/krishisetu/config"
)

func TestInMemoryStoreAppendAndRecent(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	for _, q := range []string{"first", "second", "third"} {
		if err := s.Append(ctx, &Record{Query: q, Language: "en", QueryType: "general", Mode: "simple"}); err != nil {
			t.Fatalf("Append(%q): %v", q, err)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Query != "third" || recent[1].Query != "second" {
		t.Errorf("order wrong: %q, %q", recent[0].Query, recent[1].Query)
	}
	if recent[0].ID == "" || recent[0].CreatedAt.IsZero() {
		t.Error("Append must fill in ID and CreatedAt")
	}
}

func TestInMemoryStoreRejectsNil(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.Append(context.Background(), nil); err == nil {
		t.Fatal("nil record must be rejected")
	}
}

func TestNewStoreSelectsBackend(t *testing.T) {
	store, err := NewStore(configStore("memory"))
	if err != nil {
		t.Fatalf("NewStore(memory): %v", err)
	}
	if _, ok := store.(*InMemoryStore); !ok {
		t.Errorf("store type = %T", store)
	}

	if _, err := NewStore(configStore("cassandra")); err == nil {
		t.Error("unknown backend must be rejected")
	}
}

func configStore(backend string) config.Store {
	return config.Store{Backend: backend}
}
