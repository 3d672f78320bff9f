package cache

import (
    "fmt"
    "testing"
    "time"
)

func TestStore_SetGet(t *testing.T) {
    s := New[string](time.Minute, 10)
    s.Set("k", "v")
    got, ok := s.Get("k")
    if !ok || got != "v" {
        t.Fatalf("want hit with v, got %q %v", got, ok)
    }
    if _, ok := s.Get("missing"); ok {
        t.Fatal("unexpected hit for missing key")
    }
}

func TestStore_Expiry(t *testing.T) {
    s := New[int](30*time.Millisecond, 10)
    s.Set("k", 1)
    if _, ok := s.Get("k"); !ok {
        t.Fatal("want hit before expiry")
    }
    time.Sleep(50 * time.Millisecond)
    if _, ok := s.Get("k"); ok {
        t.Fatal("want miss after expiry")
    }
}

func TestStore_Disabled(t *testing.T) {
    var nilStore *Store[string]
    nilStore.Set("k", "v") // must not panic
    if _, ok := nilStore.Get("k"); ok {
        t.Fatal("nil store should always miss")
    }

    off := New[string](0, 10)
    off.Set("k", "v")
    if _, ok := off.Get("k"); ok {
        t.Fatal("zero-TTL store should always miss")
    }
}

func TestStore_MaxItems(t *testing.T) {
    s := New[int](time.Minute, 3)
    for i := 0; i < 10; i++ {
        s.Set(fmt.Sprintf("k%d", i), i)
    }
    s.mu.RLock()
    n := len(s.items)
    s.mu.RUnlock()
    if n > 3 {
        t.Fatalf("cap not enforced: %d items", n)
    }
}
