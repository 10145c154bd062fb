package memory

import (
	"context"
	"testing"

	"word-quiz/internal/domain"
)

func TestScoreStoreAssignsIncreasingIDs(t *testing.T) {
	store := NewScoreStore()
	ctx := context.Background()

	first, _ := store.Append(ctx, domain.ScoreRecord{Score: 100, Difficulty: domain.Easy})
	second, _ := store.Append(ctx, domain.ScoreRecord{Score: 71.4, Difficulty: domain.Hard})
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1,2 got %d,%d", first.ID, second.ID)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0] != first || all[1] != second {
		t.Fatalf("expected insertion order, got %+v", all)
	}
}
