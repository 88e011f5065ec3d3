package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	"github.com/pitchside/dream-eleven/internal/domain/reference"
	"github.com/pitchside/dream-eleven/internal/platform/logging"
)

type fakeReferenceSource struct {
	entries []reference.Entry
	err     error
}

func (s *fakeReferenceSource) Load(context.Context) ([]reference.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func sampleEntries() []reference.Entry {
	return []reference.Entry{
		{Name: "Virat Kohli", Country: "India", Role: playerstats.RoleBatter},
		{Name: "Vijay Shankar", Country: "India", Role: playerstats.RoleAllRounder},
		{Name: "Jasprit Bumrah", Country: "India", Role: playerstats.RoleBowler},
		{Name: "Jos Buttler", Country: "England", Role: playerstats.RoleWicketkeeper},
	}
}

func TestReferenceSuggestMatchesByNormalizedPrefix(t *testing.T) {
	svc := NewReferenceService(&fakeReferenceSource{entries: sampleEntries()}, logging.NewNop())
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	matches, err := svc.Suggest(context.Background(), "  VI ", 10)
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %v", matches)
	}
	if matches[0].Name != "Vijay Shankar" || matches[1].Name != "Virat Kohli" {
		t.Fatalf("unexpected match order: %v", matches)
	}
}

func TestReferenceSuggestHonorsLimit(t *testing.T) {
	svc := NewReferenceService(&fakeReferenceSource{entries: sampleEntries()}, logging.NewNop())
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	matches, err := svc.Suggest(context.Background(), "j", 1)
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %v", matches)
	}
}

func TestReferenceSuggestRejectsEmptyQuery(t *testing.T) {
	svc := NewReferenceService(&fakeReferenceSource{entries: sampleEntries()}, logging.NewNop())
	if _, err := svc.Suggest(context.Background(), "   ", 5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReferenceReloadKeepsOldDataOnFailure(t *testing.T) {
	source := &fakeReferenceSource{entries: sampleEntries()}
	svc := NewReferenceService(source, logging.NewNop())
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	source.err = errors.New("dataset file missing")
	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected reload failure")
	}

	matches, err := svc.Suggest(context.Background(), "virat", 5)
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected the previous dataset to survive, got %v", matches)
	}
}

func TestReferenceSuggestBeforeReloadReturnsNoMatches(t *testing.T) {
	svc := NewReferenceService(&fakeReferenceSource{entries: sampleEntries()}, logging.NewNop())
	matches, err := svc.Suggest(context.Background(), "virat", 5)
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches before reload, got %v", matches)
	}
}
