package boltstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Setting is one runtime configuration entry. Value is arbitrary JSON so a
// setting can hold a number, a string or a structured object.
type Setting struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SettingsStore persists runtime settings in BoltDB.
type SettingsStore struct {
	db *bolt.DB
}

// Get returns the setting for key, or (nil, nil) when it does not exist.
func (s *SettingsStore) Get(key string) (*Setting, error) {
	var setting *Setting
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(BucketSettings).Get([]byte(key))
		if data == nil {
			return nil
		}
		var st Setting
		if err := json.Unmarshal(data, &st); err != nil {
			return fmt.Errorf("decode setting %s: %w", key, err)
		}
		setting = &st
		return nil
	})
	return setting, err
}

// Set stores or replaces the setting for key, stamping UpdatedAt.
func (s *SettingsStore) Set(key string, value json.RawMessage, description string) (*Setting, error) {
	setting := Setting{
		Key:         key,
		Value:       value,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		// keep the existing description when the update omits one
		if description == "" {
			if data := tx.Bucket(BucketSettings).Get([]byte(key)); data != nil {
				var prev Setting
				if err := json.Unmarshal(data, &prev); err == nil {
					setting.Description = prev.Description
				}
			}
		}
		data, err := json.Marshal(setting)
		if err != nil {
			return fmt.Errorf("encode setting %s: %w", key, err)
		}
		return tx.Bucket(BucketSettings).Put([]byte(key), data)
	})
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// List returns all settings sorted by key.
func (s *SettingsStore) List() ([]Setting, error) {
	var settings []Setting
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketSettings).ForEach(func(_, v []byte) error {
			var st Setting
			if err := json.Unmarshal(v, &st); err != nil {
				return nil // skip corrupt entries rather than failing the listing
			}
			settings = append(settings, st)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}
