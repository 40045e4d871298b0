package storage

import (
	"encoding/json"
	"testing"
)

type sample struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func TestPrepareDocument(t *testing.T) {
	t.Run("generates id", func(t *testing.T) {
		id, body, err := PrepareDocument(sample{Name: "x"}, func() string { return "gen-1" })
		if err != nil {
			t.Fatalf("PrepareDocument() error: %v", err)
		}
		if id != "gen-1" {
			t.Errorf("id = %q, want gen-1", id)
		}
		got, err := Decode[sample](Document{ID: id, Body: body})
		if err != nil {
			t.Fatalf("Decode() error: %v", err)
		}
		if got.ID != "gen-1" || got.Name != "x" {
			t.Errorf("decoded = %+v", got)
		}
	})

	t.Run("keeps preset id", func(t *testing.T) {
		id, _, err := PrepareDocument(sample{ID: "mine"}, func() string {
			t.Error("generator should not be called")
			return ""
		})
		if err != nil || id != "mine" {
			t.Errorf("PrepareDocument() = %q, %v", id, err)
		}
	})

	t.Run("rejects non-objects", func(t *testing.T) {
		for _, rec := range []any{42, []string{"a"}, nil} {
			if _, _, err := PrepareDocument(rec, func() string { return "x" }); err == nil {
				t.Errorf("expected error for %v", rec)
			}
		}
	})
}

func TestMergeDocument(t *testing.T) {
	body := []byte(`{"id":"1","name":"old","extra":true}`)
	merged, err := MergeDocument(body, map[string]any{"name": "new", "id": "hijack"})
	if err != nil {
		t.Fatalf("MergeDocument() error: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(merged, &fields); err != nil {
		t.Fatal(err)
	}
	if fields["id"] != "1" || fields["name"] != "new" || fields["extra"] != true {
		t.Errorf("merged = %s", merged)
	}
}

func TestDecodeAll(t *testing.T) {
	docs := []Document{
		{ID: "a", Body: json.RawMessage(`{"id":"a","name":"first"}`)},
		{ID: "b", Body: json.RawMessage(`{"id":"b","name":"second"}`)},
	}
	got, err := DecodeAll[sample](docs)
	if err != nil {
		t.Fatalf("DecodeAll() error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "first" || got[1].Name != "second" {
		t.Errorf("DecodeAll() = %+v", got)
	}

	if _, err := DecodeAll[sample]([]Document{{ID: "bad", Body: json.RawMessage(`{`)}}); err == nil {
		t.Error("expected decode error")
	}
}
