package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetCachesWithinTTL(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }

	calls := 0
	c := New(5*time.Minute, clock, func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		v, err := c.Get(ctx)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if v != 1 {
			t.Fatalf("Get = %d, want cached 1", v)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestGetRefetchesAfterExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }

	calls := 0
	c := New(5*time.Minute, clock, func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	})

	ctx := context.Background()
	if v, _ := c.Get(ctx); v != 1 {
		t.Fatalf("first Get = %d, want 1", v)
	}

	now = now.Add(5*time.Minute + time.Second)
	v, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("Get after expiry: %v", err)
	}
	if v != 2 {
		t.Errorf("Get after expiry = %d, want 2", v)
	}
}

func TestGetServesStaleOnFetchError(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }

	fail := false
	c := New(time.Minute, clock, func(ctx context.Context) (string, error) {
		if fail {
			return "", errors.New("backend down")
		}
		return "menu", nil
	})

	ctx := context.Background()
	if v, _ := c.Get(ctx); v != "menu" {
		t.Fatalf("first Get = %q", v)
	}

	now = now.Add(2 * time.Minute)
	fail = true
	v, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("stale Get returned error: %v", err)
	}
	if v != "menu" {
		t.Errorf("stale Get = %q, want %q", v, "menu")
	}
}

func TestGetFirstFetchErrorPropagates(t *testing.T) {
	wantErr := errors.New("backend down")
	c := New[string](time.Minute, nil, func(ctx context.Context) (string, error) {
		return "", wantErr
	})

	if _, err := c.Get(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }

	calls := 0
	c := New(time.Hour, clock, func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	})

	ctx := context.Background()
	c.Get(ctx)
	c.Invalidate()
	v, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("Get after Invalidate: %v", err)
	}
	if v != 2 {
		t.Errorf("Get after Invalidate = %d, want 2", v)
	}
}
