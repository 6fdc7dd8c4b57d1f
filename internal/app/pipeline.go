package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
)

// runPipeline is the frame loop. It manages the idle/active cadence from
// motion detection and advances the scene once per tick whether or not a
// hand is visible, so smoothing keeps converging and freezes hold.
//
// Per tick:
//  1. Read a frame and run the motion gate.
//  2. In active mode, run hand detection and take the first hand.
//  3. Classify the landmarks (nil hand yields a neutral state).
//  4. Advance the selected object's interaction machine.
//  5. Fire activation edges: event log, cues, gesture callback.
//  6. Publish the scene snapshot.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			var hand *detector.HandLandmarks
			if activeMode {
				hands, err := a.detector.Detect(frame)
				if err != nil {
					log.Printf("Error detecting hands: %v", err)
				} else if len(hands) > 0 {
					hand = &hands[0]
				}
			}
			frame.Close()

			a.step(hand, time.Now().UnixMilli())
		}
	}
}

// step runs one frame of the gesture-to-transform pipeline and returns
// the published snapshot.
func (a *App) step(hand *detector.HandLandmarks, nowMillis int64) scene.Snapshot {
	g := a.classifier.Classify(hand)
	snap := a.scene.Advance(g, nowMillis)

	for _, kind := range a.edges.Rising(g) {
		a.fireGesture(kind, snap.ObjectID)
	}

	a.mu.RLock()
	publisher := a.publisher
	a.mu.RUnlock()

	if publisher != nil {
		publisher.Publish(snap)
	}

	return snap
}

// fireGesture handles one activation edge: persists it, plays any bound
// cue off the frame loop and notifies the UI callback.
func (a *App) fireGesture(kind gesture.Kind, objectID string) {
	if a.config.Store != nil {
		if _, err := a.config.Store.Events().Record(string(kind), objectID); err != nil {
			log.Printf("Failed to record %s event: %v", kind, err)
		}
	}

	if a.cues.Bound(kind) {
		go func() {
			if err := a.cues.Play(kind); err != nil {
				log.Printf("Cue error: %v", err)
			}
		}()
	}

	a.mu.RLock()
	callback := a.onGesture
	a.mu.RUnlock()

	if callback != nil {
		callback(kind)
	}
}
