package search

import (
	"math"
	"testing"
)

func results(ids ...string) []SearchResult {
	out := make([]SearchResult, 0, len(ids))
	for i, id := range ids {
		out = append(out, SearchResult{
			ChunkID: id,
			Content: "content-" + id,
			Rank:    i + 1,
		})
	}
	return out
}

func order(t *testing.T, fused []SearchResult) []string {
	t.Helper()
	ids := make([]string, 0, len(fused))
	for _, r := range fused {
		ids = append(ids, r.ChunkID)
	}
	return ids
}

func TestFuse_ReferenceExample(t *testing.T) {
	// semantic = [A, B, C], keyword = [B, D], k = 60
	fused := fuse(results("A", "B", "C"), results("B", "D"), 60.0, 10)

	want := []string{"B", "A", "D", "C"}
	got := order(t, fused)
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	// B appears in both lists: 1/62 + 1/61
	wantScore := 1.0/62.0 + 1.0/61.0
	if math.Abs(fused[0].Score-wantScore) > 1e-9 {
		t.Errorf("expected B score %.6f, got %.6f", wantScore, fused[0].Score)
	}

	if len(fused[0].Sources) != 2 {
		t.Errorf("expected B to come from both lists, got %v", fused[0].Sources)
	}
	if len(fused[1].Sources) != 1 || fused[1].Sources[0] != "semantic" {
		t.Errorf("expected A to come from semantic only, got %v", fused[1].Sources)
	}
}

func TestFuse_RanksAssignedSequentially(t *testing.T) {
	fused := fuse(results("A", "B"), results("C"), 60.0, 10)

	for i, r := range fused {
		if r.Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, r.Rank)
		}
	}
}

func TestFuse_Monotonicity(t *testing.T) {
	// A outranks B in both lists, so A's fused score can never be lower.
	fused := fuse(results("A", "B"), results("A", "B"), 60.0, 10)

	if fused[0].ChunkID != "A" {
		t.Fatalf("expected A first, got %s", fused[0].ChunkID)
	}
	if fused[0].Score < fused[1].Score {
		t.Errorf("chunk ranked better in both lists got lower fused score: %.6f < %.6f",
			fused[0].Score, fused[1].Score)
	}
}

func TestFuse_EmptyKeywordDegradesToSemantic(t *testing.T) {
	semantic := results("A", "B", "C", "D", "E")

	fused := fuse(semantic, nil, 60.0, 3)

	want := []string{"A", "B", "C"}
	got := order(t, fused)
	if len(got) != 3 {
		t.Fatalf("expected top-3, got %d results", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestFuse_EmptySemanticDegradesToKeyword(t *testing.T) {
	fused := fuse(nil, results("X", "Y"), 60.0, 10)

	got := order(t, fused)
	if len(got) != 2 || got[0] != "X" || got[1] != "Y" {
		t.Errorf("expected [X Y], got %v", got)
	}
}

func TestFuse_BothEmpty(t *testing.T) {
	fused := fuse(nil, nil, 60.0, 10)

	if len(fused) != 0 {
		t.Errorf("expected empty result, got %d", len(fused))
	}
}

func TestFuse_LimitRespected(t *testing.T) {
	fused := fuse(results("A", "B", "C", "D"), results("E", "F", "G"), 60.0, 2)

	if len(fused) != 2 {
		t.Errorf("expected 2 results, got %d", len(fused))
	}
}

func TestFuse_TieBreaksBySemanticRankThenID(t *testing.T) {
	// A at semantic rank 1 and B at keyword rank 1 have equal scores;
	// the semantic occurrence wins.
	fused := fuse(results("A"), results("B"), 60.0, 10)

	got := order(t, fused)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("expected [A B], got %v", got)
	}

	// Neither in the semantic list: equal scores fall back to chunk id.
	fused = fuse(nil, results("Z"), 60.0, 10)
	fused2 := fuse(nil, results("Z"), 60.0, 10)
	if fused[0].ChunkID != fused2[0].ChunkID {
		t.Error("fusion is not deterministic")
	}
}

func TestDistanceToScore(t *testing.T) {
	cases := []struct {
		distance float64
		want     float64
	}{
		{0.0, 1.0},
		{0.25, 0.75},
		{1.0, 0.0},
		{2.0, 0.0},  // clamped
		{-0.5, 1.0}, // clamped
	}

	for _, tc := range cases {
		if got := distanceToScore(tc.distance); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("distanceToScore(%g): expected %g, got %g", tc.distance, tc.want, got)
		}
	}
}
