package core

import "testing"

func TestExtractionCacheRoundTrip(t *testing.T) {
	c := NewExtractionCache(4)
	source := []byte("package main\n")
	want := Result{Symbols: []Symbol{{ID: "x", Name: "main"}}}

	if _, ok := c.Get("a.go", source); ok {
		t.Fatal("expected a miss before any Put")
	}

	c.Put("a.go", source, want)
	got, ok := c.Get("a.go", source)
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if len(got.Symbols) != 1 || got.Symbols[0].ID != "x" {
		t.Fatalf("unexpected cached result: %+v", got)
	}
}

func TestExtractionCacheDistinguishesContent(t *testing.T) {
	c := NewExtractionCache(4)
	c.Put("a.go", []byte("v1"), Result{Types: map[string]string{"v": "1"}})

	if _, ok := c.Get("a.go", []byte("v2")); ok {
		t.Fatal("expected a miss for different content at the same file path")
	}
}

func TestExtractionCacheDisabledWhenSizeNonPositive(t *testing.T) {
	c := NewExtractionCache(0)
	c.Put("a.go", []byte("x"), Result{})
	if _, ok := c.Get("a.go", []byte("x")); ok {
		t.Fatal("a zero-size cache must never report a hit")
	}
}
