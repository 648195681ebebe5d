package valuehash_test

import (
	"testing"

	"github.com/karupanerura/expiring-value/internal/valuehash"
)

type celsius float64

type point struct {
	X, Y int
}

func TestGetOrCreateValueHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hashFunc func(any) int
		a, b     any
		c        any
	}{
		{"bool", valuehash.GetOrCreateValueHash[bool](), true, true, false},
		{"int", valuehash.GetOrCreateValueHash[int](), int(-42), int(-42), int(42)},
		{"int8", valuehash.GetOrCreateValueHash[int8](), int8(-42), int8(-42), int8(42)},
		{"uint16", valuehash.GetOrCreateValueHash[uint16](), uint16(42), uint16(42), uint16(43)},
		{"uint64", valuehash.GetOrCreateValueHash[uint64](), uint64(42), uint64(42), uint64(43)},
		{"float64", valuehash.GetOrCreateValueHash[float64](), 42.0, 42.0, 42.5},
		{"named float", valuehash.GetOrCreateValueHash[celsius](), celsius(36.5), celsius(36.5), celsius(37)},
		{"string", valuehash.GetOrCreateValueHash[string](), "test", "test", "tset"},
		{"struct", valuehash.GetOrCreateValueHash[point](), point{1, 2}, point{1, 2}, point{2, 1}},
		{"slice", valuehash.GetOrCreateValueHash[[]int](), []int{1, 2}, []int{1, 2}, []int{2, 1}},
		{"interface", valuehash.GetOrCreateValueHash[any](), "test", "test", 42},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, want := tt.hashFunc(tt.a), tt.hashFunc(tt.b); got != want {
				t.Errorf("equal values must have the same hash: %x != %x", got, want)
			}
			if tt.hashFunc(tt.a) == tt.hashFunc(tt.c) {
				t.Errorf("expected different hashes for %v and %v", tt.a, tt.c)
			}
		})
	}
}

func TestGetOrCreateValueHash_Cached(t *testing.T) {
	t.Parallel()

	f1 := valuehash.GetOrCreateValueHash[string]()
	f2 := valuehash.GetOrCreateValueHash[string]()
	if f1("cache") != f2("cache") {
		t.Error("hash functions for the same type must agree")
	}
}

func TestGetOrCreateValueHash_NilInterface(t *testing.T) {
	t.Parallel()

	if got := valuehash.GetOrCreateValueHash[any]()(nil); got != 0 {
		t.Errorf("expected 0 for nil interface, got %x", got)
	}
}

type node struct {
	Value int
	Next  *node
}

func TestGetOrCreateValueHash_Structure(t *testing.T) {
	t.Parallel()

	one, otherOne, two := 1, 1, 2
	hashPtr := valuehash.GetOrCreateValueHash[*int]()
	if hashPtr(&one) != hashPtr(&otherOne) {
		t.Error("pointers to equal values must have the same hash")
	}
	if hashPtr(&one) == hashPtr(&two) {
		t.Error("pointers to different values must have different hashes")
	}
	if hashPtr(&one) == hashPtr((*int)(nil)) {
		t.Error("nil and non-nil pointers must have different hashes")
	}

	hashMap := valuehash.GetOrCreateValueHash[map[int]string]()
	m1 := map[int]string{}
	m2 := map[int]string{}
	for i := 0; i < 32; i++ {
		m1[i] = "v"
		m2[31-i] = "v"
	}
	if hashMap(m1) != hashMap(m2) {
		t.Error("map hashes must not depend on iteration order")
	}
	m2[0] = "w"
	if hashMap(m1) == hashMap(m2) {
		t.Error("maps with different entries must have different hashes")
	}
}

func TestGetOrCreateValueHash_Cyclic(t *testing.T) {
	t.Parallel()

	a := &node{Value: 1}
	a.Next = a
	b := &node{Value: 1}
	b.Next = &node{Value: 1, Next: b}

	hashFunc := valuehash.GetOrCreateValueHash[*node]()
	if hashFunc(a) != hashFunc(b) {
		t.Error("cycles of equal nodes must have the same hash")
	}
}

func TestTypeHash(t *testing.T) {
	t.Parallel()

	if valuehash.TypeHash[point]() != valuehash.TypeHash[point]() {
		t.Error("type hash must be stable")
	}
	if valuehash.TypeHash[point]() == valuehash.TypeHash[celsius]() {
		t.Error("distinct types must have distinct type hashes")
	}
}
