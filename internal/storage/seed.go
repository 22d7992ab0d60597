package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeedUsers returns the built-in initial user records. The store is
// memory-resident only, so this set is loaded on every process start.
func DefaultSeedUsers() []User {
	return []User{
		{
			ID:          1,
			Email:       "ironman@avengers.com",
			Telephone:   "+123456789",
			Preferences: ChannelPreferences{Email: true, SMS: true},
		},
		{
			ID:          2,
			Email:       "loki@avengers.com",
			Telephone:   "+123456788",
			Preferences: ChannelPreferences{Email: true, SMS: false},
		},
		{
			ID:          3,
			Email:       "hulk@avengers.com",
			Telephone:   "+123456787",
			Preferences: ChannelPreferences{Email: false, SMS: false},
		},
		{
			ID:          4,
			Email:       "blackwidow@avengers.com",
			Telephone:   "+123456786",
			Preferences: ChannelPreferences{Email: true, SMS: true},
		},
	}
}

// LoadSeedUsers reads initial user records from a YAML file. An empty path
// returns the built-in set.
func LoadSeedUsers(path string) ([]User, error) {
	if path == "" {
		return DefaultSeedUsers(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %q: %w", path, err)
	}

	var users []User
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing seed file %q: %w", path, err)
	}
	return users, nil
}
