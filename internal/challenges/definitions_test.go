package challenges

import (
	"testing"

	"example.com/moneyquest/backend/internal/models"
)

// TestRegistryIndexes проверяет индексацию определений по id и периоду.
func TestRegistryIndexes(t *testing.T) {
	registry := NewRegistry()

	def, ok := registry.Get("weekly_save_20")
	if !ok {
		t.Fatal("expected weekly_save_20 to exist")
	}
	if def.Type != models.ChallengeTypeSavings {
		t.Fatalf("expected savings type, got %s", def.Type)
	}
	if def.Target != 2000 {
		t.Fatalf("expected target 2000, got %d", def.Target)
	}

	if _, ok := registry.Get("unknown"); ok {
		t.Fatal("expected unknown id to be absent")
	}

	weekly := registry.ByPeriod(models.PeriodWeekly)
	monthly := registry.ByPeriod(models.PeriodMonthly)
	if len(weekly)+len(monthly) != len(registry.All()) {
		t.Fatalf("period split mismatch: %d + %d != %d", len(weekly), len(monthly), len(registry.All()))
	}

	for _, def := range weekly {
		if def.Period != models.PeriodWeekly {
			t.Fatalf("weekly index holds %s definition %s", def.Period, def.ID)
		}
	}
}

// TestRegistryCoversAllTypes проверяет, что каждый тип челленджа представлен.
func TestRegistryCoversAllTypes(t *testing.T) {
	registry := NewRegistry()

	types := map[models.ChallengeType]bool{}
	for _, def := range registry.All() {
		types[def.Type] = true

		if def.Target <= 0 {
			t.Fatalf("definition %s has non-positive target", def.ID)
		}
		if def.XPReward <= 0 {
			t.Fatalf("definition %s has non-positive reward", def.ID)
		}
	}

	want := []models.ChallengeType{
		models.ChallengeTypeTransactions,
		models.ChallengeTypeSavings,
		models.ChallengeTypeBudget,
		models.ChallengeTypeLessons,
		models.ChallengeTypeStreak,
		models.ChallengeTypeWorlds,
		models.ChallengeTypeGoals,
		models.ChallengeTypeLevel,
	}
	for _, typ := range want {
		if !types[typ] {
			t.Fatalf("no definition for type %s", typ)
		}
	}
}
