package reference

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestFileSourceLoad(t *testing.T) {
	path := writeDataset(t, `[
		{"name": "Virat Kohli", "country": "India", "role": "bat"},
		{"name": "Rashid Khan", "country": "Afghanistan", "role": "BOWL"},
		{"name": "Mystery Player", "country": "", "role": "goalkeeper"}
	]`)

	entries, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Role != playerstats.RoleBatter {
		t.Fatalf("expected role to fold case, got %s", entries[0].Role)
	}
	if entries[2].Role != playerstats.RoleUnknown {
		t.Fatalf("expected unrecognized role to map to unknown, got %s", entries[2].Role)
	}
}

func TestFileSourceLoadRejectsNamelessEntries(t *testing.T) {
	path := writeDataset(t, `[{"name": "  ", "country": "India", "role": "BAT"}]`)
	if _, err := NewFileSource(path).Load(context.Background()); err == nil {
		t.Fatal("expected an error for a nameless entry")
	}
}

func TestFileSourceLoadRejectsMalformedJSON(t *testing.T) {
	path := writeDataset(t, `{"not": "a list"`)
	if _, err := NewFileSource(path).Load(context.Background()); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestFileSourceLoadMissingFile(t *testing.T) {
	if _, err := NewFileSource("/nonexistent/players.json").Load(context.Background()); err == nil {
		t.Fatal("expected a read error")
	}
}
