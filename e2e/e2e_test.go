package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application, err := app.New(app.Config{Store: s})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	application.SetDetector(detector.NewMockDetector())

	srv := server.New(server.Config{
		Store: s,
		Scene: application.Scene(),
	})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	var objects struct {
		Objects []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"objects"`
	}

	t.Run("ListSeededObjects", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/objects")
		if err != nil {
			t.Fatalf("list objects error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if len(objects.Objects) != 4 {
			t.Fatalf("seeded %d objects, want 4", len(objects.Objects))
		}
	})

	var solarID string
	for _, o := range objects.Objects {
		if o.Kind == "solar-system" {
			solarID = o.ID
		}
	}
	if solarID == "" {
		t.Fatal("no solar-system object seeded")
	}

	t.Run("SelectSolarSystem", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/objects/"+solarID+"/select", "application/json", nil)
		if err != nil {
			t.Fatalf("select error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		sel := application.Scene().Selected()
		if sel == nil || sel.ID != solarID {
			t.Error("scene selection did not follow the API call")
		}

		// Selection survives restarts via the settings table.
		persisted, err := s.Settings().Get(store.SettingSelectedObject)
		if err != nil || persisted != solarID {
			t.Errorf("persisted selection = %q, %v; want %q", persisted, err, solarID)
		}
	})

	t.Run("UpdateConfig", func(t *testing.T) {
		body := `{"scaleMin": 0.5, "scaleMax": 2.0, "positionClampX": 4, "positionClampY": 2,
			"rotationSmoothing": 0.2, "positionSmoothing": 0.2, "scaleSmoothing": 0.1}`
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/objects/"+solarID, strings.NewReader(body))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("update config error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		sel := application.Scene().Selected()
		if sel.Config.ScaleMin != 0.5 {
			t.Errorf("live config scaleMin = %f, want 0.5", sel.Config.ScaleMin)
		}
	})

	t.Run("InvalidConfigRejected", func(t *testing.T) {
		body := `{"scaleMin": 3.0, "scaleMax": 0.5}`
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/objects/"+solarID, strings.NewReader(body))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("update config error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("GestureEventsShowUpInAPI", func(t *testing.T) {
		classifier := gesture.NewClassifier()
		edges := gesture.NewEdgeDetector()

		fist := detector.FistLandmarks()
		state := classifier.Classify(&fist)
		application.Scene().Advance(state, 1)
		for _, kind := range edges.Rising(state) {
			if _, err := s.Events().Record(string(kind), solarID); err != nil {
				t.Fatalf("record event error = %v", err)
			}
		}

		resp, err := client.Get(ts.URL + "/api/events")
		if err != nil {
			t.Fatalf("list events error = %v", err)
		}
		defer resp.Body.Close()

		var events struct {
			Events []struct {
				Gesture string `json:"gesture"`
			} `json:"events"`
			Counts map[string]int `json:"counts"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if len(events.Events) != 1 || events.Events[0].Gesture != "fist" {
			t.Errorf("events = %+v, want one fist event", events.Events)
		}
		if events.Counts["fist"] != 1 {
			t.Errorf("counts = %v, want fist: 1", events.Counts)
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_FreezeWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application, err := app.New(app.Config{Store: s})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	classifier := gesture.NewClassifier()
	sc := application.Scene()

	// Rotate with an open hand, freeze with a fist, confirm the frozen
	// target stops moving, then unfreeze with a peace sign.
	open := detector.OpenPalmLandmarks()
	sc.Advance(classifier.Classify(&open), 0)
	moved := open.Translated(0.05, 0.03)
	snap := sc.Advance(classifier.Classify(&moved), 1)
	if snap.Transform.Frozen {
		t.Fatal("open hand froze the transform")
	}
	if snap.Transform.Rotation.Len() == 0 {
		t.Fatal("open-hand motion produced no rotation")
	}

	fist := detector.FistLandmarks()
	snap = sc.Advance(classifier.Classify(&fist), 2)
	if !snap.Transform.Frozen {
		t.Fatal("fist did not freeze the transform")
	}

	frozenMoved := fist.Translated(0.1, 0.1)
	after := sc.Advance(classifier.Classify(&frozenMoved), 3)
	if !after.Transform.Frozen {
		t.Fatal("motion while frozen unfroze the transform")
	}

	peace := detector.PeaceLandmarks()
	snap = sc.Advance(classifier.Classify(&peace), 4)
	if snap.Transform.Frozen {
		t.Error("peace sign did not unfreeze the transform")
	}
}
