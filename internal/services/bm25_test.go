package services

import (
	"errors"
	"testing"

	"hirely/matching-api/internal/apperrors"
)

func TestNewBM25IndexEmptyCorpus(t *testing.T) {
	_, err := NewBM25Index(nil)
	if err == nil {
		t.Fatal("expected error for empty corpus")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
}

func TestScoresOnePerDocument(t *testing.T) {
	corpus := [][]string{
		{"go", "developer"},
		{"python", "backend", "developer"},
		{"designer"},
	}

	index, err := NewBM25Index(corpus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores := index.Scores([]string{"python", "backend"})
	if len(scores) != len(corpus) {
		t.Fatalf("expected %d scores, got %d", len(corpus), len(scores))
	}
}

func TestScoresRanksMatchingDocumentFirst(t *testing.T) {
	// Middle document contains every query term; the others contain none.
	corpus := [][]string{
		{"accountant", "ledger", "audit"},
		{"python", "backend", "engineer"},
		{"nurse", "hospital", "care"},
	}

	index, err := NewBM25Index(corpus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores := index.Scores([]string{"python", "backend"})

	if scores[1] <= 0 {
		t.Fatalf("expected strictly positive score for matching document, got %f", scores[1])
	}
	if scores[0] != 0 || scores[2] != 0 {
		t.Fatalf("expected zero scores for non-matching documents, got %f and %f", scores[0], scores[2])
	}

	order := TopK(scores, 3)
	if order[0] != 1 {
		t.Fatalf("expected document 1 ranked first, got %d", order[0])
	}
	// Zero-score tie breaks by ascending original index.
	if order[1] != 0 || order[2] != 2 {
		t.Fatalf("expected tie order [0 2], got [%d %d]", order[1], order[2])
	}
}

func TestScoresDeterministic(t *testing.T) {
	corpus := [][]string{
		{"go", "backend", "engineer"},
		{"go", "frontend", "engineer"},
	}
	query := []string{"go", "engineer", "backend"}

	index, err := NewBM25Index(corpus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := index.Scores(query)
	second := index.Scores(query)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("scores differ between calls at index %d: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestScoresSingleDocumentCorpus(t *testing.T) {
	index, err := NewBM25Index([][]string{{"senior", "python", "developer"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores := index.Scores([]string{"python"})
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}
	// With a single document every term occurs in all documents, so its
	// IDF is floored at the epsilon value. The score is nonzero but its
	// sign carries no meaning here; only vocabulary membership does.
	if scores[0] == 0 {
		t.Fatalf("expected nonzero score for matching term, got %f", scores[0])
	}

	if !index.HasTerm("python") {
		t.Fatal("expected python in vocabulary")
	}
	if index.HasTerm("java") {
		t.Fatal("did not expect java in vocabulary")
	}
}

func TestScoresEmptyQuery(t *testing.T) {
	index, err := NewBM25Index([][]string{{"go"}, {"python"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, score := range index.Scores(nil) {
		if score != 0 {
			t.Fatalf("expected zero score at %d, got %f", i, score)
		}
	}
}

func TestScoresAllEmptyDocuments(t *testing.T) {
	// Empty token sequences must not produce NaN scores.
	index, err := NewBM25Index([][]string{{}, {}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, score := range index.Scores([]string{"go"}) {
		if score != 0 {
			t.Fatalf("expected zero score at %d, got %f", i, score)
		}
	}
}

func TestTopK(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		k      int
		expect []int
	}{
		{
			name:   "descending by score",
			scores: []float64{0.2, 1.5, 0.9},
			k:      3,
			expect: []int{1, 2, 0},
		},
		{
			name:   "ties break by ascending index",
			scores: []float64{0.5, 0.5, 0.5},
			k:      3,
			expect: []int{0, 1, 2},
		},
		{
			name:   "fewer candidates than k returns all ranked",
			scores: []float64{0.1, 0.7},
			k:      5,
			expect: []int{1, 0},
		},
		{
			name:   "k limits results",
			scores: []float64{0.1, 0.7, 0.4, 0.9},
			k:      2,
			expect: []int{3, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopK(tt.scores, tt.k)
			if len(got) != len(tt.expect) {
				t.Fatalf("expected %d indices, got %d", len(tt.expect), len(got))
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Fatalf("expected order %v, got %v", tt.expect, got)
				}
			}
		})
	}
}
