// Package storage implements the in-memory user preference registry and the
// SQLite-backed delivery log.
package storage

import "errors"

// Sentinel errors returned by UserStore implementations.
var (
	// ErrUserNotFound is returned when no record matches the given ID or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when a create or update would leave two
	// records sharing one email address.
	ErrDuplicateEmail = errors.New("email already in use")
)

// ChannelPreferences holds a user's per-channel opt-in flags.
// The flags are independent; both may be false.
type ChannelPreferences struct {
	Email bool `json:"email" yaml:"email"`
	SMS   bool `json:"sms" yaml:"sms"`
}

// User is a single notification preference record.
type User struct {
	ID          int                `json:"userId" yaml:"userId"`
	Email       string             `json:"email" yaml:"email"`
	Telephone   string             `json:"telephone" yaml:"telephone"`
	Preferences ChannelPreferences `json:"preferences" yaml:"preferences"`
}

// UserStore defines the interface for user preference persistence.
// Records are keyed by numeric ID with a secondary unique index by email.
type UserStore interface {
	// List returns every record. Order is unspecified but stable within
	// a single snapshot.
	List() []User

	// GetByID returns the record with the given ID, or ErrUserNotFound.
	GetByID(id int) (User, error)

	// GetByEmail returns the record with the given email, or ErrUserNotFound.
	GetByEmail(email string) (User, error)

	// ExistsByID reports whether a record with the given ID exists.
	ExistsByID(id int) bool

	// ExistsByEmail reports whether a record with the given email exists.
	ExistsByEmail(email string) bool

	// NextID returns the ID the next Create would assign: one plus the
	// highest existing ID, or 1 for an empty store. Deleting the
	// highest-ID record makes its ID eligible for reuse.
	NextID() int

	// Create inserts a new record, assigning its ID. The caller's ID field
	// is ignored. Returns ErrDuplicateEmail if the email is already indexed.
	Create(user User) (User, error)

	// Update replaces the record with the given ID. The record's ID field is
	// forced to id regardless of caller input. If the email changed, the
	// email index is re-pointed in the same step. Returns ErrUserNotFound
	// if no record exists, ErrDuplicateEmail if the new email belongs to
	// another record.
	Update(id int, user User) (User, error)

	// Delete removes the record and its email index entry.
	// Reports whether a record existed.
	Delete(id int) bool
}
