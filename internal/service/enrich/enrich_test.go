package enrich

import (
	"errors"
	"testing"
)

type row struct {
	owner string
}

type profile struct {
	id   string
	name string
}

func TestLookupDeduplicatesKeys(t *testing.T) {
	rows := []row{{owner: "a"}, {owner: "b"}, {owner: "a"}, {owner: "b"}}

	var fetched []string
	index, err := Lookup(rows,
		func(r row) string { return r.owner },
		func(keys []string) ([]profile, error) {
			fetched = keys
			out := make([]profile, 0, len(keys))
			for _, k := range keys {
				out = append(out, profile{id: k, name: "nome-" + k})
			}
			return out, nil
		},
		func(p profile) string { return p.id },
	)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if len(fetched) != 2 {
		t.Fatalf("expected 2 distinct keys fetched, got %v", fetched)
	}
	if len(index) != 2 {
		t.Fatalf("expected 2 indexed values, got %d", len(index))
	}
	if index["a"].name != "nome-a" {
		t.Errorf("wrong value for key a: %+v", index["a"])
	}
}

func TestLookupMissingValueAbsentNotError(t *testing.T) {
	rows := []row{{owner: "a"}, {owner: "gone"}}

	index, err := Lookup(rows,
		func(r row) string { return r.owner },
		func(keys []string) ([]profile, error) {
			return []profile{{id: "a", name: "nome-a"}}, nil
		},
		func(p profile) string { return p.id },
	)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if _, ok := index["gone"]; ok {
		t.Error("missing key should be absent from the index")
	}
	if _, ok := index["a"]; !ok {
		t.Error("present key should be indexed")
	}
}

func TestLookupEmptyRowsSkipsFetch(t *testing.T) {
	called := false
	index, err := Lookup(nil,
		func(r row) string { return r.owner },
		func(keys []string) ([]profile, error) {
			called = true
			return nil, nil
		},
		func(p profile) string { return p.id },
	)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if called {
		t.Error("fetch must not run for empty input")
	}
	if len(index) != 0 {
		t.Errorf("expected empty index, got %d entries", len(index))
	}
}

func TestLookupPropagatesFetchError(t *testing.T) {
	wantErr := errors.New("backend down")
	_, err := Lookup([]row{{owner: "a"}},
		func(r row) string { return r.owner },
		func(keys []string) ([]profile, error) { return nil, wantErr },
		func(p profile) string { return p.id },
	)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error to pass through, got %v", err)
	}
}
