package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb), mr
}

func TestSetGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := Record{UserID: "u1", Email: "a@b.c", CreatedAt: created, Token: "tok"}
	if err := store.Set(ctx, "u1", rec, time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Email != "a@b.c" || got.Token != "tok" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "u1", Record{UserID: "u1"}, time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRecordExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "u1", Record{UserID: "u1"}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after TTL, got %v", err)
	}
}

func TestRemainingTTL(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if ttl, err := store.RemainingTTL(ctx, "nobody"); err != nil || ttl != -1 {
		t.Fatalf("missing key should report -1, got %d err %v", ttl, err)
	}

	if err := store.Set(ctx, "u1", Record{UserID: "u1"}, 90*time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	ttl, err := store.RemainingTTL(ctx, "u1")
	if err != nil {
		t.Fatalf("ttl failed: %v", err)
	}
	if ttl <= 0 || ttl > 90 {
		t.Fatalf("unexpected ttl %d", ttl)
	}
}

func TestUpdatePreservesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "u1", Record{UserID: "u1", Email: "old@b.c"}, time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(30 * time.Minute)

	if err := store.Update(ctx, "u1", Record{UserID: "u1", Email: "new@b.c"}, 8*time.Hour); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Email != "new@b.c" {
		t.Fatalf("record not rewritten: %+v", got)
	}
	ttl, err := store.RemainingTTL(ctx, "u1")
	if err != nil {
		t.Fatalf("ttl failed: %v", err)
	}
	// The original hour, minus the elapsed half, not the 8h fallback.
	if ttl > 1900 {
		t.Fatalf("update should preserve remaining TTL, got %ds", ttl)
	}
}

func TestUnavailableStore(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	ctx := context.Background()
	if err := store.Set(ctx, "u1", Record{UserID: "u1"}, time.Hour); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on set, got %v", err)
	}
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on get, got %v", err)
	}
	if err := store.Delete(ctx, "u1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on delete, got %v", err)
	}
}
