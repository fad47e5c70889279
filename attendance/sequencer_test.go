package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/juancarlosGilardi/flask-marcaciones/location"
	"github.com/juancarlosGilardi/flask-marcaciones/models"
)

// fakeStore serializes mutations with a real mutex, the in-memory
// equivalent of the row lock the gorm store takes.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]*models.AttendanceRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*models.AttendanceRecord)}
}

func key(email, date string) string {
	return email + "|" + date
}

func (s *fakeStore) Mutate(_ context.Context, email, date string, fn func(rec *models.AttendanceRecord, found bool) error) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var work models.AttendanceRecord
	existing, found := s.records[key(email, date)]
	if found {
		work = *existing
	}
	if err := fn(&work, found); err != nil {
		return nil, err
	}
	stored := work
	s.records[key(email, date)] = &stored
	out := work
	return &out, nil
}

func (s *fakeStore) Find(_ context.Context, email, date string) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.records[key(email, date)]
	if !found {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

func (s *fakeStore) Recent(_ context.Context, email string, limit int) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AttendanceRecord
	for _, rec := range s.records {
		if rec.UserEmail == email && len(out) < limit {
			out = append(out, *rec)
		}
	}
	return out, nil
}

var (
	testUser  = Identity{Name: "Juan Perez", Email: "juan.perez@example.com", Dni: "12345678", DeviceID: "dev-1"}
	testCoord = location.Coordinate{Latitude: -12.0464, Longitude: -77.0428}
)

func testSequencer(store Store, at time.Time) *Sequencer {
	seq := NewSequencer(store, time.UTC)
	seq.now = func() time.Time { return at }
	return seq
}

func TestSequencer_FullDay(t *testing.T) {
	store := newFakeStore()
	day := time.Date(2026, 8, 26, 8, 1, 2, 0, time.UTC)
	seq := testSequencer(store, day)
	ctx := context.Background()

	rec, err := seq.Mark(ctx, testUser, Entry, testCoord)
	if err != nil {
		t.Fatalf("entry failed: %v", err)
	}
	if rec.EntryTime == nil || *rec.EntryTime != "08:01:02" {
		t.Fatalf("entry time = %v, want 08:01:02", rec.EntryTime)
	}

	// Second entry the same day: rejected, original time preserved.
	seq.now = func() time.Time { return day.Add(time.Hour) }
	_, err = seq.Mark(ctx, testUser, Entry, testCoord)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("duplicate entry must be a conflict, got %v", err)
	}
	stored, _ := seq.Today(ctx, testUser.Email)
	if *stored.EntryTime != "08:01:02" {
		t.Errorf("rejected event modified the record: entry = %s", *stored.EntryTime)
	}

	if _, err := seq.Mark(ctx, testUser, BreakStart, testCoord); err != nil {
		t.Fatalf("break start failed: %v", err)
	}

	// Exit with an open break: rejected.
	_, err = seq.Mark(ctx, testUser, Exit, testCoord)
	if !errors.As(err, &conflict) {
		t.Fatalf("exit with open break must be a conflict, got %v", err)
	}

	if _, err := seq.Mark(ctx, testUser, BreakEnd, testCoord); err != nil {
		t.Fatalf("break end failed: %v", err)
	}

	rec, err = seq.Mark(ctx, testUser, Exit, testCoord)
	if err != nil {
		t.Fatalf("exit failed: %v", err)
	}
	if rec.ExitTime == nil {
		t.Error("exit time not set")
	}
}

func TestSequencer_EntryRequiredFirst(t *testing.T) {
	seq := testSequencer(newFakeStore(), time.Now())
	ctx := context.Background()

	for _, kind := range []Kind{BreakStart, BreakEnd, Exit} {
		_, err := seq.Mark(ctx, testUser, kind, testCoord)
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			t.Errorf("%s without entry must be a conflict, got %v", kind, err)
		}
	}
	if rec, _ := seq.Today(ctx, testUser.Email); rec != nil {
		t.Error("rejected events must not create a record")
	}
}

func TestSequencer_BreakEndRequiresBreakStart(t *testing.T) {
	seq := testSequencer(newFakeStore(), time.Now())
	ctx := context.Background()

	if _, err := seq.Mark(ctx, testUser, Entry, testCoord); err != nil {
		t.Fatalf("entry failed: %v", err)
	}
	_, err := seq.Mark(ctx, testUser, BreakEnd, testCoord)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("break end without break start must be a conflict, got %v", err)
	}
}

func TestSequencer_ExitWithoutBreakAllowed(t *testing.T) {
	seq := testSequencer(newFakeStore(), time.Now())
	ctx := context.Background()

	if _, err := seq.Mark(ctx, testUser, Entry, testCoord); err != nil {
		t.Fatalf("entry failed: %v", err)
	}
	if _, err := seq.Mark(ctx, testUser, Exit, testCoord); err != nil {
		t.Fatalf("exit without break must be allowed: %v", err)
	}
}

func TestSequencer_ConcurrentBreakStart(t *testing.T) {
	store := newFakeStore()
	seq := testSequencer(store, time.Now())
	ctx := context.Background()

	if _, err := seq.Mark(ctx, testUser, Entry, testCoord); err != nil {
		t.Fatalf("entry failed: %v", err)
	}

	const attempts = 2
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := seq.Mark(ctx, testUser, BreakStart, testCoord)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		var conflict *ConflictError
		switch {
		case err == nil:
			successes++
		case errors.As(err, &conflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Errorf("got %d successes and %d conflicts, want exactly 1 and 1", successes, conflicts)
	}
}

func TestSequencer_CrossDayIsolation(t *testing.T) {
	store := newFakeStore()
	day1 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	seq := testSequencer(store, day1)
	if _, err := seq.Mark(ctx, testUser, Entry, testCoord); err != nil {
		t.Fatalf("day1 entry failed: %v", err)
	}

	seq.now = func() time.Time { return day2 }
	if _, err := seq.Mark(ctx, testUser, Entry, testCoord); err != nil {
		t.Fatalf("day2 entry must not collide with day1: %v", err)
	}

	if len(store.records) != 2 {
		t.Errorf("expected two independent records, got %d", len(store.records))
	}
}

func TestSequencer_EventCoordinatesOverwritten(t *testing.T) {
	store := newFakeStore()
	seq := testSequencer(store, time.Now())
	ctx := context.Background()

	if _, err := seq.Mark(ctx, testUser, Entry, testCoord); err != nil {
		t.Fatalf("entry failed: %v", err)
	}

	elsewhere := location.Coordinate{Latitude: -12.05, Longitude: -77.05}
	rec, err := seq.Mark(ctx, testUser, BreakStart, elsewhere)
	if err != nil {
		t.Fatalf("break start failed: %v", err)
	}
	if rec.Latitude != elsewhere.Latitude || rec.Location != elsewhere.String() {
		t.Error("each accepted event must overwrite the last-known coordinates")
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"Entry", "BreakStart", "BreakEnd", "Exit"} {
		if _, err := ParseKind(valid); err != nil {
			t.Errorf("ParseKind(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseKind("Lunch"); err == nil {
		t.Error("unknown kinds must be rejected")
	}
}
