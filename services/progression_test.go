package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fitness-club-backend/models"
)

// memStore is an in-memory ProgressionStore with the same concurrency
// contract as the Postgres-backed one: versioned conditional writes for
// xp/level and first-writer-wins badge inserts.
type memStore struct {
	mu     sync.Mutex
	progs  map[string]*models.UserProgression
	earned map[string]map[string]bool
	rows   []models.UserBadge
}

func newMemStore() *memStore {
	return &memStore{
		progs:  make(map[string]*models.UserProgression),
		earned: make(map[string]map[string]bool),
	}
}

func (m *memStore) Get(userID string) (*models.UserProgression, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prog, ok := m.progs[userID]
	if !ok {
		return nil, ErrProgressionNotFound
	}
	cp := *prog
	return &cp, nil
}

func (m *memStore) Create(prog *models.UserProgression) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *prog
	m.progs[prog.UserID] = &cp
	return nil
}

func (m *memStore) UpdateXPVersioned(userID string, newXP int64, newLevel int, leveledUp bool, expectedVersion int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prog, ok := m.progs[userID]
	if !ok || prog.Version != expectedVersion {
		return false, nil
	}
	prog.XP = newXP
	prog.Level = newLevel
	prog.Version = expectedVersion + 1
	if leveledUp {
		now := time.Now()
		prog.LastLevelUpAt = &now
	}
	return true, nil
}

func (m *memStore) IncrementCounter(userID, column string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prog, ok := m.progs[userID]
	if !ok {
		return ErrProgressionNotFound
	}
	switch column {
	case "total_workouts":
		prog.TotalWorkouts += delta
	case "classes_completed":
		prog.ClassesCompleted += delta
	case "challenges_completed":
		prog.ChallengesCompleted += delta
	case "social_interactions":
		prog.SocialInteractions += delta
	default:
		return fmt.Errorf("unknown counter column %q", column)
	}
	return nil
}

func (m *memStore) UpdateStreak(userID string, current, longest int, workoutAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prog, ok := m.progs[userID]
	if !ok {
		return ErrProgressionNotFound
	}
	prog.CurrentStreak = current
	prog.LongestStreak = longest
	prog.LastWorkoutAt = &workoutAt
	return nil
}

func (m *memStore) EarnedBadgeIDs(userID string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool, len(m.earned[userID]))
	for id := range m.earned[userID] {
		out[id] = true
	}
	return out, nil
}

func (m *memStore) InsertBadge(badge *models.UserBadge) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.earned[badge.UserID]
	if !ok {
		set = make(map[string]bool)
		m.earned[badge.UserID] = set
	}
	if set[badge.BadgeID] {
		return false, nil
	}
	set[badge.BadgeID] = true
	badge.AwardedAt = time.Now()
	m.rows = append(m.rows, *badge)
	return true, nil
}

func (m *memStore) ListBadges(userID string) ([]models.UserBadge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.UserBadge
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type notifyRecord struct {
	userID string
	kind   models.NotificationKind
	title  string
	icon   string
}

type recordingNotifier struct {
	mu      sync.Mutex
	records []notifyRecord
}

func (n *recordingNotifier) Notify(userID string, kind models.NotificationKind, title, body, icon string, priority models.NotificationPriority) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.records = append(n.records, notifyRecord{userID: userID, kind: kind, title: title, icon: icon})
	return nil
}

func (n *recordingNotifier) countKind(kind models.NotificationKind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, r := range n.records {
		if r.kind == kind {
			count++
		}
	}
	return count
}

func newTestEngine() (*ProgressionService, *memStore, *recordingNotifier) {
	store := newMemStore()
	notifier := &recordingNotifier{}
	badges := NewBadgeService(store, notifier)
	return NewProgressionService(store, badges, notifier), store, notifier
}

func seedUser(store *memStore, prog models.UserProgression) {
	if prog.Level == 0 {
		prog.Level = models.LevelForXP(prog.XP)
	}
	store.Create(&prog)
}

func TestRecordActivity_XPSumAndLevelInvariant(t *testing.T) {
	svc, store, _ := newTestEngine()
	seedUser(store, models.UserProgression{UserID: "u1"})

	amounts := []int64{50, 30, 100, 5, 50, 30}
	var sum int64
	for _, amount := range amounts {
		result, err := svc.RecordActivity("u1", amount, "test")
		if err != nil {
			t.Fatalf("RecordActivity(%d) failed: %v", amount, err)
		}
		sum += amount
		if result.XP != sum {
			t.Errorf("xp = %d after applying %v, want %d", result.XP, amounts, sum)
		}
		if want := models.LevelForXP(result.XP); result.Level != want {
			t.Errorf("level = %d at xp %d, want %d", result.Level, result.XP, want)
		}
	}
}

func TestRecordActivity_NegativeAmountClampsAtZero(t *testing.T) {
	svc, store, _ := newTestEngine()
	seedUser(store, models.UserProgression{UserID: "u1", XP: 50})

	result, err := svc.RecordActivity("u1", -100, "correction")
	if err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if result.XP != 0 {
		t.Errorf("xp = %d after clamped negative grant, want 0", result.XP)
	}
	if result.Level != 1 {
		t.Errorf("level = %d, want 1", result.Level)
	}
	if result.LeveledUp {
		t.Error("LeveledUp should be false when xp decreases")
	}
}

func TestRecordActivity_UnknownUser(t *testing.T) {
	svc, _, _ := newTestEngine()
	if _, err := svc.RecordActivity("missing", 50, "workout"); !errors.Is(err, ErrProgressionNotFound) {
		t.Errorf("err = %v, want ErrProgressionNotFound", err)
	}
}

func TestLevelUpNotification_OncePerCrossing(t *testing.T) {
	svc, store, notifier := newTestEngine()
	seedUser(store, models.UserProgression{UserID: "u1", XP: 95})

	result, err := svc.RecordActivity("u1", 10, "workout")
	if err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if !result.LeveledUp {
		t.Error("expected level-up crossing 100 xp")
	}
	if got := notifier.countKind(models.NotificationLevelUp); got != 1 {
		t.Errorf("level-up notifications = %d, want 1", got)
	}

	// Stay inside level 2: no further notification.
	result, err = svc.RecordActivity("u1", 10, "workout")
	if err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if result.LeveledUp {
		t.Error("LeveledUp should be false at 105→115 xp")
	}
	if got := notifier.countKind(models.NotificationLevelUp); got != 1 {
		t.Errorf("level-up notifications = %d after non-crossing call, want still 1", got)
	}
}

func TestRecordActivity_WorkoutLevelUpUnlocksInCatalogOrder(t *testing.T) {
	svc, store, _ := newTestEngine()
	// First workout just logged: counter already incremented by the workout
	// service before progression is recorded.
	seedUser(store, models.UserProgression{UserID: "u1", XP: 95, TotalWorkouts: 1})

	result, err := svc.RecordActivity("u1", 10, "workout")
	if err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if result.XP != 105 || result.Level != 2 || !result.LeveledUp {
		t.Fatalf("got xp=%d level=%d leveledUp=%t, want 105/2/true", result.XP, result.Level, result.LeveledUp)
	}

	var ids []string
	for _, def := range result.UnlockedBadges {
		ids = append(ids, def.ID)
	}
	want := []string{"first_workout", "xp_100"}
	if len(ids) != len(want) {
		t.Fatalf("unlocked %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("unlocked %v, want %v (catalog declaration order)", ids, want)
		}
	}
}

func TestRecordActivity_ZeroAmountStillEvaluatesBadges(t *testing.T) {
	svc, store, _ := newTestEngine()
	// Class attendance was just marked: counter crossed a threshold but the
	// XP step is a no-op.
	seedUser(store, models.UserProgression{UserID: "u1", XP: 40, ClassesCompleted: 1})

	result, err := svc.RecordActivity("u1", 0, "class")
	if err != nil {
		t.Fatalf("RecordActivity(0) failed: %v", err)
	}
	if result.XP != 40 || result.Level != 1 || result.LeveledUp {
		t.Errorf("zero amount changed xp/level: got xp=%d level=%d leveledUp=%t", result.XP, result.Level, result.LeveledUp)
	}
	found := false
	for _, def := range result.UnlockedBadges {
		if def.ID == "first_class" {
			found = true
		}
	}
	if !found {
		t.Errorf("first_class not unlocked by zero-amount call, got %v", result.UnlockedBadges)
	}
}

func TestEvaluateBadges_Idempotent(t *testing.T) {
	_, store, notifier := newTestEngine()
	badges := NewBadgeService(store, notifier)
	seedUser(store, models.UserProgression{UserID: "u1", XP: 250, TotalWorkouts: 12})

	first, err := badges.EvaluateBadges("u1")
	if err != nil {
		t.Fatalf("EvaluateBadges failed: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected unlocks on first evaluation")
	}

	second, err := badges.EvaluateBadges("u1")
	if err != nil {
		t.Fatalf("EvaluateBadges failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second evaluation returned %v, want none (idempotent)", second)
	}
}

func TestStreakBadge_NotReEmittedWhenStreakUnchanged(t *testing.T) {
	svc, store, notifier := newTestEngine()
	seedUser(store, models.UserProgression{UserID: "u1", XP: 10, LongestStreak: 7, CurrentStreak: 7})

	// First activity earns the streak badges.
	if _, err := svc.RecordActivity("u1", 10, "workout"); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	before := notifier.countKind(models.NotificationBadgeUnlocked)

	// Streak untouched by this activity: no streak badge may re-fire.
	result, err := svc.RecordActivity("u1", 10, "workout")
	if err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	for _, def := range result.UnlockedBadges {
		if def.Dimension == models.DimensionStreak {
			t.Errorf("streak badge %s re-emitted without streak change", def.ID)
		}
	}
	if after := notifier.countKind(models.NotificationBadgeUnlocked); after != before {
		t.Errorf("badge notifications grew from %d to %d without new qualification", before, after)
	}
}

func TestConcurrentRecordActivity_ExactlyOneUnlock(t *testing.T) {
	svc, store, notifier := newTestEngine()
	seedUser(store, models.UserProgression{UserID: "u1", TotalWorkouts: 1})

	const workers = 16
	var wg sync.WaitGroup
	unlocks := make(chan string, workers*2)
	var conflicts, successes int64
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.RecordActivity("u1", 0, "workout")
			if err != nil {
				if !errors.Is(err, ErrConcurrencyConflict) {
					t.Errorf("unexpected error: %v", err)
				}
				mu.Lock()
				conflicts++
				mu.Unlock()
				return
			}
			mu.Lock()
			successes++
			mu.Unlock()
			for _, def := range result.UnlockedBadges {
				unlocks <- def.ID
			}
		}()
	}
	wg.Wait()
	close(unlocks)

	if successes == 0 {
		t.Fatalf("all %d calls conflicted, expected at least one success", workers)
	}

	total := 0
	for id := range unlocks {
		if id != "first_workout" {
			t.Errorf("unexpected unlock %q", id)
		}
		total++
	}
	if total != 1 {
		t.Errorf("first_workout unlocked %d times across %d concurrent calls, want exactly 1", total, workers)
	}
	if got := notifier.countKind(models.NotificationBadgeUnlocked); got != 1 {
		t.Errorf("badge notifications = %d, want exactly 1", got)
	}
}

// failingBadgeStore errors on the badge side only; XP application must
// succeed and the badge failure must be swallowed.
type failingBadgeStore struct {
	*memStore
}

func (f *failingBadgeStore) EarnedBadgeIDs(userID string) (map[string]bool, error) {
	return nil, errors.New("storage unavailable")
}

func TestRecordActivity_BadgeFailureDoesNotFailXP(t *testing.T) {
	store := newMemStore()
	seedUser(store, models.UserProgression{UserID: "u1", XP: 95})
	notifier := &recordingNotifier{}
	wrapped := &failingBadgeStore{memStore: store}
	badges := NewBadgeService(wrapped, notifier)
	svc := NewProgressionService(store, badges, notifier)

	result, err := svc.RecordActivity("u1", 10, "workout")
	if err != nil {
		t.Fatalf("RecordActivity should swallow badge errors, got: %v", err)
	}
	if result.XP != 105 || !result.LeveledUp {
		t.Errorf("xp step degraded: got xp=%d leveledUp=%t", result.XP, result.LeveledUp)
	}
	if len(result.UnlockedBadges) != 0 {
		t.Errorf("unlocked = %v despite badge storage failure", result.UnlockedBadges)
	}
}

func TestEnsureProgressionRecord_Idempotent(t *testing.T) {
	svc, store, _ := newTestEngine()

	first, err := svc.EnsureProgressionRecord("u1")
	if err != nil {
		t.Fatalf("EnsureProgressionRecord failed: %v", err)
	}
	if first.XP != 0 || first.Level != 1 {
		t.Errorf("new record has xp=%d level=%d, want 0/1", first.XP, first.Level)
	}

	if _, err := svc.RecordActivity("u1", 30, "class"); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}

	again, err := svc.EnsureProgressionRecord("u1")
	if err != nil {
		t.Fatalf("EnsureProgressionRecord failed: %v", err)
	}
	if again.XP != 30 {
		t.Errorf("EnsureProgressionRecord reset xp to %d, want 30", again.XP)
	}
	_ = store
}
