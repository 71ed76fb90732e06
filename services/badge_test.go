package services

import (
	"testing"

	"fitness-club-backend/models"
)

func TestEvaluateBadges_CoversEveryAutomaticDimension(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{}
	badges := NewBadgeService(store, notifier)
	seedUser(store, models.UserProgression{
		UserID:              "u1",
		XP:                  10000,
		TotalWorkouts:       250,
		ChallengesCompleted: 25,
		ClassesCompleted:    50,
		SocialInteractions:  100,
		LongestStreak:       100,
	})

	unlocked, err := badges.EvaluateBadges("u1")
	if err != nil {
		t.Fatalf("EvaluateBadges failed: %v", err)
	}

	got := make(map[models.BadgeDimension]int)
	for _, def := range unlocked {
		got[def.Dimension]++
	}
	for _, dim := range []models.BadgeDimension{
		models.DimensionWorkout,
		models.DimensionStreak,
		models.DimensionXP,
		models.DimensionLevel,
		models.DimensionChallenge,
		models.DimensionClass,
		models.DimensionSocial,
	} {
		if got[dim] == 0 {
			t.Errorf("dimension %s awarded nothing at max counters", dim)
		}
	}
	if got[models.DimensionSpecial] != 0 {
		t.Error("special badges must never auto-unlock")
	}
}

func TestEvaluateBadges_ReturnsCatalogOrder(t *testing.T) {
	store := newMemStore()
	badges := NewBadgeService(store, &recordingNotifier{})
	seedUser(store, models.UserProgression{UserID: "u1", XP: 1200, TotalWorkouts: 15})

	unlocked, err := badges.EvaluateBadges("u1")
	if err != nil {
		t.Fatalf("EvaluateBadges failed: %v", err)
	}

	pos := make(map[string]int, len(models.BadgeCatalog))
	for i, def := range models.BadgeCatalog {
		pos[def.ID] = i
	}
	for i := 1; i < len(unlocked); i++ {
		if pos[unlocked[i-1].ID] > pos[unlocked[i].ID] {
			t.Fatalf("unlocks out of catalog order: %s before %s", unlocked[i-1].ID, unlocked[i].ID)
		}
	}
}

func TestGrantSpecialBadge(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{}
	badges := NewBadgeService(store, notifier)
	seedUser(store, models.UserProgression{UserID: "u1"})

	def, err := badges.GrantSpecialBadge("u1", "early_bird")
	if err != nil {
		t.Fatalf("GrantSpecialBadge failed: %v", err)
	}
	if def == nil || def.ID != "early_bird" {
		t.Fatalf("got %v, want early_bird definition", def)
	}
	if got := notifier.countKind(models.NotificationBadgeUnlocked); got != 1 {
		t.Errorf("notifications = %d, want 1", got)
	}

	// Second grant is a silent no-op.
	def, err = badges.GrantSpecialBadge("u1", "early_bird")
	if err != nil {
		t.Fatalf("repeat grant errored: %v", err)
	}
	if def != nil {
		t.Errorf("repeat grant returned %v, want nil", def)
	}
	if got := notifier.countKind(models.NotificationBadgeUnlocked); got != 1 {
		t.Errorf("notifications = %d after repeat grant, want still 1", got)
	}
}

func TestGrantSpecialBadge_RejectsAutomaticBadges(t *testing.T) {
	store := newMemStore()
	badges := NewBadgeService(store, &recordingNotifier{})
	seedUser(store, models.UserProgression{UserID: "u1"})

	if _, err := badges.GrantSpecialBadge("u1", "first_workout"); err == nil {
		t.Error("expected error granting an auto-awarded badge manually")
	}
	if _, err := badges.GrantSpecialBadge("u1", "no_such_badge"); err == nil {
		t.Error("expected error for unknown badge id")
	}
}

func TestMeetsThreshold_BoundaryValues(t *testing.T) {
	def := models.BadgeDefinition{ID: "workout_10", Dimension: models.DimensionWorkout, Threshold: 10}

	if meetsThreshold(&models.UserProgression{TotalWorkouts: 9}, def) {
		t.Error("9 workouts should not meet a threshold of 10")
	}
	if !meetsThreshold(&models.UserProgression{TotalWorkouts: 10}, def) {
		t.Error("10 workouts should meet a threshold of 10 exactly")
	}
	if !meetsThreshold(&models.UserProgression{TotalWorkouts: 11}, def) {
		t.Error("11 workouts should meet a threshold of 10")
	}
}
