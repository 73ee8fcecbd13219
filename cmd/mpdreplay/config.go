package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures the replay harness: which MPD fixture to feed the
// parser, how large a chunk to hand it per resumption, and whether to keep
// following the fixture as data is appended to it. Modeled directly on the teacher's config.Config
// and its reload-on-write lifecycle.
type Config struct {
	FixturePath string `json:"fixture_path"`
	ChunkSize   int    `json:"chunk_size"`
	Watch       bool   `json:"watch"`
}

var (
	appConfig   Config
	configPath  string
	configMutex sync.RWMutex
)

func LoadConfig(path string) error {
	configPath = path
	return reloadConfig()
}

func Get() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return appConfig
}

func reloadConfig() error {
	file, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var newConfig Config
	if err := json.NewDecoder(file).Decode(&newConfig); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}
	if err := validateConfig(newConfig); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	configMutex.Lock()
	appConfig = newConfig
	configMutex.Unlock()

	log.Println("mpdreplay: config reloaded")
	return nil
}

func validateConfig(c Config) error {
	if c.FixturePath == "" {
		return fmt.Errorf("fixture_path cannot be empty")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be greater than 0")
	}
	return nil
}

// WatchConfig watches the config file itself for edits, the same debounced
// reload the teacher's config package uses for its own config file.
func WatchConfig() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Println("mpdreplay: failed to create config watcher:", err)
		return
	}
	if err := watcher.Add(configPath); err != nil {
		log.Println("mpdreplay: failed to watch config file:", err)
		return
	}

	go func() {
		var debounceTimer *time.Timer
		var debounceMutex sync.Mutex
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					debounceMutex.Lock()
					if debounceTimer != nil {
						debounceTimer.Stop()
					}
					debounceTimer = time.AfterFunc(200*time.Millisecond, func() {
						retryReloadConfig(3, 100*time.Millisecond)
					})
					debounceMutex.Unlock()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("mpdreplay: config watcher error:", err)
			}
		}
	}()
}

func retryReloadConfig(retries int, delay time.Duration) {
	for i := 0; i < retries; i++ {
		if err := reloadConfig(); err == nil {
			return
		} else if i == retries-1 {
			log.Println("mpdreplay: error reloading config after retries:", err)
		}
		time.Sleep(delay)
	}
}
