package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	r := miniredis.RunT(t)
	cache, err := NewRedisCache(context.Background(), fmt.Sprintf("redis://%s", r.Addr()))
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return cache, r
}

func TestSetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "test", "test"); err != nil {
		t.Error(err)
	}
	value, err := cache.Get(ctx, "test")
	if err != nil {
		t.Error(err)
	}
	if value != "test" {
		t.Errorf("expected test, got %s", value)
	}
}

func TestGetMissingKey(t *testing.T) {
	cache, _ := newTestCache(t)

	value, err := cache.Get(context.Background(), "nope")
	if err != nil {
		t.Errorf("missing key should not error, got %v", err)
	}
	if value != "" {
		t.Errorf("expected empty value for missing key, got %v", value)
	}
}

func TestSetWithTTL(t *testing.T) {
	cache, r := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetWithTTL(ctx, "ttl", "1", time.Minute); err != nil {
		t.Error(err)
	}
	value, err := cache.Get(ctx, "ttl")
	if err != nil || value != "1" {
		t.Errorf("expected 1 before expiry, got %v (%v)", value, err)
	}

	r.FastForward(2 * time.Minute)
	value, err = cache.Get(ctx, "ttl")
	if err != nil {
		t.Error(err)
	}
	if value != "" {
		t.Errorf("expected key to expire, got %v", value)
	}
}

func TestDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "gone", "soon"); err != nil {
		t.Error(err)
	}
	if err := cache.Delete(ctx, "gone"); err != nil {
		t.Error(err)
	}
	value, err := cache.Get(ctx, "gone")
	if err != nil {
		t.Error(err)
	}
	if value != "" {
		t.Errorf("expected deleted key to be gone, got %v", value)
	}

	// Deleting a missing key is fine.
	if err := cache.Delete(ctx, "never-there"); err != nil {
		t.Errorf("deleting missing key should not error, got %v", err)
	}
}

func TestSetGetJSON(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	// test struct that will be marshalled to JSON
	type Test struct {
		Name string
		Age  int
	}
	test := Test{
		Name: "jsontest",
		Age:  10,
	}
	if err := cache.SetJSON(ctx, "jsontest", test); err != nil {
		t.Error(err)
	}
	// Confirm the value is stored in the cache as a JSON string
	js, err := cache.Get(ctx, "jsontest")
	if err != nil {
		t.Error(err)
	}
	if js != `{"Name":"jsontest","Age":10}` {
		t.Errorf("expected `{\"Name\":\"jsontest\",\"Age\":10}`, got %s", js)
	}

	// Confirm the value is unmarshalled into the given interface
	var test2 Test
	if err := cache.GetJSON(ctx, "jsontest", &test2); err != nil {
		t.Error(err)
	}
	if test2.Name != "jsontest" || test2.Age != 10 {
		t.Errorf("expected {\"Name\":\"jsontest\",\"Age\":10}, got %v", test2)
	}
}
