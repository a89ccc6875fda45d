package challenges

import (
	"testing"

	"github.com/google/uuid"

	"example.com/moneyquest/backend/internal/models"
)

// TestMissingDefinitionIDs проверяет выбор определений без записи прогресса.
func TestMissingDefinitionIDs(t *testing.T) {
	existing := []models.UserChallenge{
		{ID: uuid.New(), DefinitionID: "weekly_track_10"},
		{ID: uuid.New(), DefinitionID: "weekly_save_20"},
	}

	missing := missingDefinitionIDs([]string{"weekly_track_10", "weekly_save_20", "weekly_lessons_3"}, existing)
	if len(missing) != 1 || missing[0] != "weekly_lessons_3" {
		t.Fatalf("expected [weekly_lessons_3], got %v", missing)
	}
}

// TestMissingDefinitionIDsIdempotent проверяет, что при полном покрытии создавать нечего.
func TestMissingDefinitionIDsIdempotent(t *testing.T) {
	existing := []models.UserChallenge{
		{ID: uuid.New(), DefinitionID: "weekly_track_10"},
	}

	if missing := missingDefinitionIDs([]string{"weekly_track_10"}, existing); len(missing) != 0 {
		t.Fatalf("expected no missing definitions, got %v", missing)
	}

	if missing := missingDefinitionIDs(nil, nil); len(missing) != 0 {
		t.Fatalf("expected empty result for no active definitions, got %v", missing)
	}
}
