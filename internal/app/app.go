// Package app wires the capture, detection, classification and scene
// components into the per-frame interaction pipeline.
package app

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/cue"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is the still time in milliseconds before the
	// pipeline drops back to idle mode.
	IdleTimeoutMs = 2000
	// CueTimeoutMs bounds how long one cue command may run.
	CueTimeoutMs = 5000
)

// Publisher receives one scene snapshot per processed frame.
type Publisher interface {
	Publish(v any)
}

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	CuePath      string
}

// App owns the detection pipeline and the scene it drives.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	edges      *gesture.EdgeDetector
	scene      *scene.Scene
	cues       *cue.Player
	publisher  Publisher
	onGesture  func(kind gesture.Kind)
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
}

// New creates an App, loading the controllable objects from the store.
// Camera device and motion threshold left at their zero values fall back
// to the persisted settings, then to the built-in defaults.
func New(config Config) (*App, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("app requires a store")
	}

	if config.CameraID == 0 {
		if v, err := config.Store.Settings().Get(store.SettingCameraID); err == nil {
			if id, err := strconv.Atoi(v); err == nil {
				config.CameraID = id
			}
		}
	}

	if config.MotionThresh <= 0 {
		if v, err := config.Store.Settings().Get(store.SettingMotionThresh); err == nil {
			if th, err := strconv.ParseFloat(v, 64); err == nil && th > 0 {
				config.MotionThresh = th
			}
		}
	}
	if config.MotionThresh <= 0 {
		config.MotionThresh = 1.0 // Default threshold: 1% pixel change
	}

	objects, err := config.Store.Objects().SeedDefaults()
	if err != nil {
		return nil, fmt.Errorf("seed objects: %w", err)
	}

	sceneObjects := make([]*scene.Object, 0, len(objects))
	for _, o := range objects {
		sceneObjects = append(sceneObjects, &scene.Object{
			ID:     o.ID,
			Name:   o.Name,
			Kind:   scene.Kind(o.Kind),
			Config: o.Config,
		})
	}

	sc, err := scene.New(sceneObjects)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	// Restore the previous selection if one was persisted.
	if id, err := config.Store.Settings().Get(store.SettingSelectedObject); err == nil {
		if err := sc.Select(id); err != nil {
			log.Printf("Persisted selection %q no longer exists", id)
		}
	}

	cues := cue.NewPlayer(CueTimeoutMs)
	if config.CuePath != "" {
		if err := cues.LoadBindings(config.CuePath); err != nil {
			log.Printf("Failed to load cue bindings: %v", err)
		}
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(config.MotionThresh),
		classifier: gesture.NewClassifier(),
		edges:      gesture.NewEdgeDetector(),
		scene:      sc,
		cues:       cues,
	}

	// Try MediaPipe first, fall back to the mock detector.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables gesture tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetPublisher sets the sink for per-frame scene snapshots.
func (a *App) SetPublisher(p Publisher) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.publisher = p
}

// OnGesture registers a callback fired on each gesture activation edge.
func (a *App) OnGesture(fn func(kind gesture.Kind)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onGesture = fn
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Scene returns the scene driven by the pipeline.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Cues returns the cue player.
func (a *App) Cues() *cue.Player {
	return a.cues
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
