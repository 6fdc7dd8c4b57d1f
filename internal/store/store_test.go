package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/interaction"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestObjectRepository_CreateAndGet(t *testing.T) {
	s := testStore(t)

	cfg := interaction.DefaultConfig()
	cfg.ScaleMax = 4

	obj := &Object{
		ID:     uuid.NewString(),
		Name:   "Cube",
		Kind:   "cube",
		Config: cfg,
	}

	if err := s.Objects().Create(obj); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Objects().GetByID(obj.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Name != "Cube" || got.Kind != "cube" {
		t.Errorf("got %+v, want name Cube kind cube", got)
	}
	if got.Config != cfg {
		t.Errorf("config roundtrip mismatch: got %+v, want %+v", got.Config, cfg)
	}
}

func TestObjectRepository_GetByID_NotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Objects().GetByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestObjectRepository_UpdateConfig(t *testing.T) {
	s := testStore(t)

	obj := &Object{ID: uuid.NewString(), Name: "Sphere", Kind: "sphere", Config: interaction.DefaultConfig()}
	if err := s.Objects().Create(obj); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cfg := obj.Config
	cfg.PositionClampX = 5
	if err := s.Objects().UpdateConfig(obj.ID, cfg); err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}

	got, _ := s.Objects().GetByID(obj.ID)
	if got.Config.PositionClampX != 5 {
		t.Errorf("PositionClampX = %f, want 5", got.Config.PositionClampX)
	}

	if err := s.Objects().UpdateConfig("missing", cfg); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateConfig(missing) error = %v, want ErrNotFound", err)
	}
}

func TestObjectRepository_SeedDefaults(t *testing.T) {
	s := testStore(t)

	objects, err := s.Objects().SeedDefaults()
	if err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}
	if len(objects) != 4 {
		t.Fatalf("seeded %d objects, want 4", len(objects))
	}

	// Seeding again is a no-op.
	again, err := s.Objects().SeedDefaults()
	if err != nil {
		t.Fatalf("SeedDefaults() second call error = %v", err)
	}
	if len(again) != 4 {
		t.Errorf("second seed returned %d objects, want 4", len(again))
	}

	kinds := make(map[string]bool)
	for _, o := range again {
		kinds[o.Kind] = true
	}
	if !kinds["solar-system"] {
		t.Error("seeded objects missing solar-system")
	}
}

func TestEventRepository_RecordAndList(t *testing.T) {
	s := testStore(t)

	obj := &Object{ID: uuid.NewString(), Name: "Cube", Kind: "cube", Config: interaction.DefaultConfig()}
	s.Objects().Create(obj)

	for _, g := range []string{"fist", "open-hand", "fist"} {
		if _, err := s.Events().Record(g, obj.ID); err != nil {
			t.Fatalf("Record(%s) error = %v", g, err)
		}
	}

	events, err := s.Events().ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("ListRecent() = %d events, want 3", len(events))
	}

	counts, err := s.Events().CountByGesture()
	if err != nil {
		t.Fatalf("CountByGesture() error = %v", err)
	}
	if counts["fist"] != 2 || counts["open-hand"] != 1 {
		t.Errorf("counts = %v, want fist:2 open-hand:1", counts)
	}
}

func TestEventRepository_RecordWithoutObject(t *testing.T) {
	s := testStore(t)

	// No object reference: the FK column must be stored as NULL, not "".
	if _, err := s.Events().Record("fist", ""); err != nil {
		t.Fatalf("Record() without object error = %v", err)
	}

	events, err := s.Events().ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("ListRecent() = %d events, want 1", len(events))
	}
	if events[0].ObjectID != "" {
		t.Errorf("ObjectID = %q, want empty", events[0].ObjectID)
	}
}

func TestEventRepository_Prune(t *testing.T) {
	s := testStore(t)

	if _, err := s.Events().Record("peace", ""); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// Nothing is older than an hour yet.
	n, err := s.Events().Prune(time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Prune(1h) deleted %d, want 0", n)
	}

	// Everything is older than a negative age.
	n, err = s.Events().Prune(-time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Prune(-1h) deleted %d, want 1", n)
	}
}

func TestSettingsRepository(t *testing.T) {
	s := testStore(t)

	if _, err := s.Settings().Get(SettingCameraID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on empty settings error = %v, want ErrNotFound", err)
	}

	if err := s.Settings().Set(SettingCameraID, "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Settings().Set(SettingCameraID, "2"); err != nil {
		t.Fatalf("Set() upsert error = %v", err)
	}

	got, err := s.Settings().Get(SettingCameraID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "2" {
		t.Errorf("Get() = %q, want 2", got)
	}
}
