package session_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/saulo-duarte/quizdeck/internal/session"
	"github.com/saulo-duarte/quizdeck/internal/storage"
)

func openKV(t *testing.T) storage.KV {
	t.Helper()
	kv, err := storage.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSampleIndices(t *testing.T) {
	t.Run("TwoFromThree", func(t *testing.T) {
		for seed := uint64(0); seed < 50; seed++ {
			r := rand.New(rand.NewPCG(seed, seed+1))
			ids := session.SampleIndices(3, 2, r.IntN)
			if len(ids) != 2 {
				t.Fatalf("seed %d: expected 2 ids, got %v", seed, ids)
			}
			if ids[0] == ids[1] {
				t.Fatalf("seed %d: duplicate index in %v", seed, ids)
			}
			for _, id := range ids {
				if id < 0 || id >= 3 {
					t.Fatalf("seed %d: index %d out of [0,3)", seed, id)
				}
			}
		}
	})

	t.Run("CappedAtPool", func(t *testing.T) {
		ids := session.SampleIndices(4, 10, rand.IntN)
		if len(ids) != 4 {
			t.Fatalf("expected the whole pool, got %v", ids)
		}
		seen := map[int]bool{}
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("duplicate index %d in %v", id, ids)
			}
			seen[id] = true
		}
	})

	t.Run("RemovesFromShrinkingList", func(t *testing.T) {
		// always picking the first remaining candidate walks the pool in order
		ids := session.SampleIndices(5, 3, func(int) int { return 0 })
		if !reflect.DeepEqual(ids, []int{0, 1, 2}) {
			t.Errorf("expected [0 1 2], got %v", ids)
		}
		ids = session.SampleIndices(5, 3, func(n int) int { return n - 1 })
		if !reflect.DeepEqual(ids, []int{4, 3, 2}) {
			t.Errorf("expected [4 3 2], got %v", ids)
		}
	})
}

func TestSequentialIndices(t *testing.T) {
	if got := session.SequentialIndices(5, 3); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("expected [0 1 2], got %v", got)
	}
	if got := session.SequentialIndices(3, 0); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("count 0 should mean all, got %v", got)
	}
	if got := session.SequentialIndices(2, 9); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("expected capping at pool size, got %v", got)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := session.NewRepository(openKV(t))

	t.Run("EmptyLoad", func(t *testing.T) {
		snap, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load on empty store: %v", err)
		}
		if len(snap.Sessions) != 0 || snap.Sessions == nil {
			t.Errorf("expected an empty non-nil list, got %#v", snap.Sessions)
		}
		if snap.CurrentSessionID != nil {
			t.Errorf("expected a nil active id, got %q", *snap.CurrentSessionID)
		}
	})

	t.Run("SaveThenLoad", func(t *testing.T) {
		sessions := []session.Session{
			{ID: "a", Timestamp: 1, TotalQuestions: 2, CurrentQuestionIndex: 1, Score: 1, IsTest: true,
				QuestionIDs: []int{2, 0}, AnsweredQuestions: []int{0}, Completed: false},
			{ID: "b", Timestamp: 2, TotalQuestions: 1, QuestionIDs: []int{0}, AnsweredQuestions: []int{0}, Completed: true},
		}
		current := "a"
		if err := repo.Save(ctx, sessions, &current); err != nil {
			t.Fatalf("Save: %v", err)
		}

		snap, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !reflect.DeepEqual(snap.Sessions, sessions) {
			t.Errorf("sessions differ after round trip:\n got %#v\nwant %#v", snap.Sessions, sessions)
		}
		if snap.CurrentSessionID == nil || *snap.CurrentSessionID != "a" {
			t.Errorf("expected active id a, got %v", snap.CurrentSessionID)
		}
		if snap.LastUpdated == "" {
			t.Error("lastUpdated should be stamped")
		}
	})

	t.Run("NilActiveID", func(t *testing.T) {
		if err := repo.Save(ctx, nil, nil); err != nil {
			t.Fatalf("Save: %v", err)
		}
		snap, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(snap.Sessions) != 0 || snap.CurrentSessionID != nil {
			t.Errorf("expected empty snapshot, got %#v", snap)
		}
	})
}

func TestCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := openKV(t)
	if err := kv.Put(ctx, "sessionData", []byte(`{"sessions": 12}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, err := session.NewRepository(kv).Load(ctx); err == nil {
		t.Fatal("expected a decode error for a malformed blob")
	}

	svc := session.NewService(session.NewRepository(kv))
	defer svc.Close()
	if err := svc.Load(ctx); err == nil {
		t.Error("Load should report the decode error")
	}
	if len(svc.List()) != 0 {
		t.Error("service should start empty after a corrupt load")
	}
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := openKV(t)
	now := time.UnixMilli(1_700_000_000_000)

	svc := session.NewService(session.NewRepository(kv),
		session.WithRand(rand.New(rand.NewPCG(7, 11))),
		session.WithClock(func() time.Time { return now }),
	)

	practice, err := svc.Create(ctx, session.ModePractice, 0, 4)
	if err != nil {
		t.Fatalf("Create practice: %v", err)
	}
	if !reflect.DeepEqual(practice.QuestionIDs, []int{0, 1, 2, 3}) || practice.IsTest {
		t.Errorf("unexpected practice session %+v", practice)
	}
	if practice.Timestamp != now.UnixMilli() {
		t.Errorf("expected timestamp %d, got %d", now.UnixMilli(), practice.Timestamp)
	}

	test, err := svc.Create(ctx, session.ModeTest, 2, 3)
	if err != nil {
		t.Fatalf("Create test: %v", err)
	}
	if len(test.QuestionIDs) != 2 || test.TotalQuestions != 2 || !test.IsTest {
		t.Errorf("unexpected test session %+v", test)
	}

	current, ok := svc.Current()
	if !ok || current.ID != test.ID {
		t.Fatalf("newest session should be current, got %+v ok=%v", current, ok)
	}

	test.Score = 1
	test.AnsweredQuestions = []int{0}
	test.CurrentQuestionIndex = 1
	if err := svc.Update(ctx, test); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Update(ctx, session.Session{ID: "missing"}); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	if err := svc.SetCurrent(ctx, practice.ID); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	if err := svc.SetCurrent(ctx, "missing"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, practice.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := svc.Current(); ok {
		t.Error("deleting the current session should clear the active id")
	}

	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	svc.Close()

	reloaded := session.NewService(session.NewRepository(kv))
	defer reloaded.Close()
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	list := reloaded.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 persisted session, got %d", len(list))
	}
	got := list[0]
	if got.ID != test.ID || got.Score != 1 || got.CurrentQuestionIndex != 1 || !got.IsAnswered(0) {
		t.Errorf("resumed session differs: %+v", got)
	}
	if _, ok := reloaded.Current(); ok {
		t.Error("no session should be current after reload")
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := session.NewService(session.NewRepository(openKV(t)))
	defer svc.Close()

	if _, err := svc.Create(context.Background(), session.ModeTest, 2, 0); !errors.Is(err, session.ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
	if _, err := svc.Create(context.Background(), session.Mode("exam"), 2, 3); !errors.Is(err, session.ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
	if _, err := session.ParseMode("exam"); !errors.Is(err, session.ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode from ParseMode, got %v", err)
	}
}

type slowRepo struct {
	mu      sync.Mutex
	release chan struct{}
	saves   [][]session.Session
	fail    bool
}

func (r *slowRepo) Save(ctx context.Context, sessions []session.Session, currentID *string) error {
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, sessions)
	if r.fail {
		return errors.New("disk full")
	}
	return nil
}

func (r *slowRepo) Load(ctx context.Context) (session.Snapshot, error) {
	return session.Snapshot{Sessions: []session.Session{}}, nil
}

func (r *slowRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func TestWriterCoalescesPendingSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := &slowRepo{release: make(chan struct{})}
	svc := session.NewService(repo)
	defer svc.Close()

	first, err := svc.Create(ctx, session.ModePractice, 0, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// the writer is now blocked inside Save; the next updates queue up
	for i := 1; i <= 5; i++ {
		first.Score = i
		if err := svc.Update(ctx, first); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	close(repo.release)

	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	n := repo.count()
	if n < 1 || n > 6 {
		t.Fatalf("unexpected number of saves %d", n)
	}
	repo.mu.Lock()
	last := repo.saves[len(repo.saves)-1]
	repo.mu.Unlock()
	if last[0].Score != 5 {
		t.Errorf("last persisted snapshot should carry the latest score, got %d", last[0].Score)
	}
}

func TestPersistenceFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	repo := &slowRepo{fail: true}
	svc := session.NewService(repo)
	defer svc.Close()

	s, err := svc.Create(ctx, session.ModePractice, 1, 3)
	if err != nil {
		t.Fatalf("Create should succeed despite failing persistence: %v", err)
	}
	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, err := svc.Get(s.ID); err != nil || got.ID != s.ID {
		t.Errorf("in-memory state should survive persistence failure, got %+v err=%v", got, err)
	}
}

func TestFlushHonoursContext(t *testing.T) {
	repo := &slowRepo{release: make(chan struct{})}
	svc := session.NewService(repo)

	if _, err := svc.Create(context.Background(), session.ModePractice, 1, 1); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := svc.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}

	// abandoned flushes must not leave waiters behind while the save is stuck
	before := runtime.NumGoroutine()
	for i := 0; i < 50; i++ {
		done, stop := context.WithCancel(context.Background())
		stop()
		if err := svc.Flush(done); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected Canceled, got %v", err)
		}
	}
	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if after := runtime.NumGoroutine(); after > before {
		t.Errorf("flush leaked goroutines: %d before, %d after", before, after)
	}

	close(repo.release)
	if err := svc.Flush(context.Background()); err != nil {
		t.Errorf("Flush after release: %v", err)
	}
	svc.Close()
}
