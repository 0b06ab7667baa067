package cache_test

import (
	"testing"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	val, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "value1" {
		t.Errorf("expected 'value1', got '%s'", val)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	_, ok := c.Get("nonexistent")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)

	c.Set("key1", "value1")
	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	c.Delete("key1")

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestCache_DeletePrefix(t *testing.T) {
	c := cache.New[int](5 * time.Minute)

	c.Set("projects:biz-1:list", 1)
	c.Set("projects:biz-1:board", 2)
	c.Set("projects:biz-2:list", 3)

	c.DeletePrefix("projects:biz-1")

	if _, ok := c.Get("projects:biz-1:list"); ok {
		t.Error("expected biz-1 list entry to be dropped")
	}
	if _, ok := c.Get("projects:biz-1:board"); ok {
		t.Error("expected biz-1 board entry to be dropped")
	}
	if _, ok := c.Get("projects:biz-2:list"); !ok {
		t.Error("expected biz-2 entry to survive")
	}
}
