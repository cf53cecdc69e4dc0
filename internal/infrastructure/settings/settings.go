// Package settings persists player preferences between runs. Game
// progress is never stored; every run starts from the level spawn.
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// Settings are the preferences that survive a restart of the program.
type Settings struct {
	Muted        bool `json:"muted"`
	ShowHitboxes bool `json:"showHitboxes"`
}

// Store is the key-value storage settings are kept in. *gdata.Manager
// satisfies it.
type Store interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Open returns the per-user store for appName.
func Open(appName string) (Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	return m, nil
}

// Load reads the saved settings. A store with nothing saved yet yields
// the zero Settings.
func Load(store Store) (Settings, error) {
	var s Settings
	data, err := store.LoadItem(settingsKey)
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Save writes s to the store.
func Save(store Store, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := store.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
