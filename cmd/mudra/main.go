package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

const serverAddr = ":8080"

func main() {
	fmt.Println("Mudra - Gesture-Driven 3D Control")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "mudra.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a, err := app.New(app.Config{
		Store:   st,
		CuePath: filepath.Join(dataDir, "cues.json"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}

	hub := server.NewStateHub()
	a.SetPublisher(hub)

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Scene:     a.Scene(),
		Hub:       hub,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", serverAddr)
		if err := srv.ListenAndServe(serverAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	a.SetEnabled(true)
	if err := a.Start(); err != nil {
		log.Printf("Failed to start tracking pipeline: %v", err)
	}

	t := tray.New()
	if sel := a.Scene().Selected(); sel != nil {
		t.SetSelectedObject(sel.Name)
	}
	a.OnGesture(func(kind gesture.Kind) {
		t.SetLastGesture(string(kind))
		if sel := a.Scene().Selected(); sel != nil {
			t.SetSelectedObject(sel.Name)
		}
	})
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnOpenViewer(func() {
		if err := openBrowser("http://localhost" + serverAddr); err != nil {
			log.Printf("Failed to open viewer: %v", err)
		}
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Blocks until quit is selected from the tray menu.
	t.Run()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
