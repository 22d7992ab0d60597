package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifyd/notifyd/internal/storage"
)

func newStore(users ...storage.User) *storage.MemoryUserStore {
	return storage.NewMemoryUserStore(users)
}

func sampleUser(id int, email string) storage.User {
	return storage.User{
		ID:          id,
		Email:       email,
		Telephone:   "+123456789",
		Preferences: storage.ChannelPreferences{Email: true, SMS: false},
	}
}

func TestNextID(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		assert.Equal(t, 1, newStore().NextID())
	})

	t.Run("one plus max", func(t *testing.T) {
		s := newStore(sampleUser(3, "a@x.com"), sampleUser(7, "b@x.com"))
		assert.Equal(t, 8, s.NextID())
	})

	t.Run("deleting the max frees its id", func(t *testing.T) {
		s := newStore(sampleUser(1, "a@x.com"), sampleUser(2, "b@x.com"))
		require.True(t, s.Delete(2))
		assert.Equal(t, 2, s.NextID())
	})
}

func TestCreate(t *testing.T) {
	s := newStore()

	created, err := s.Create(storage.User{
		Email:       "tony@avengers.com",
		Telephone:   "+111",
		Preferences: storage.ChannelPreferences{Email: true, SMS: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	got, err := s.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	byEmail, err := s.GetByEmail("tony@avengers.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestCreate_IgnoresCallerID(t *testing.T) {
	s := newStore(sampleUser(5, "a@x.com"))

	created, err := s.Create(storage.User{ID: 99, Email: "b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	s := newStore(sampleUser(1, "a@x.com"))

	_, err := s.Create(storage.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestUpdate_ForcesID(t *testing.T) {
	s := newStore(sampleUser(1, "a@x.com"))

	in := sampleUser(42, "a@x.com")
	in.Telephone = "+999"

	updated, err := s.Update(1, in)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ID)

	got, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "+999", got.Telephone)
}

func TestUpdate_EmailReindex(t *testing.T) {
	s := newStore(sampleUser(1, "old@x.com"))

	in := sampleUser(1, "new@x.com")
	_, err := s.Update(1, in)
	require.NoError(t, err)

	_, err = s.GetByEmail("old@x.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	got, err := s.GetByEmail("new@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)
}

func TestUpdate_Errors(t *testing.T) {
	s := newStore(sampleUser(1, "a@x.com"), sampleUser(2, "b@x.com"))

	_, err := s.Update(99, sampleUser(99, "c@x.com"))
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	// Taking another record's email is a conflict.
	_, err = s.Update(1, sampleUser(1, "b@x.com"))
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)

	// Keeping your own email is fine.
	_, err = s.Update(1, sampleUser(1, "a@x.com"))
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	s := newStore(sampleUser(1, "a@x.com"))

	assert.True(t, s.Delete(1))
	assert.False(t, s.Delete(1))

	_, err := s.GetByID(1)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	_, err = s.GetByEmail("a@x.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestExists(t *testing.T) {
	s := newStore(sampleUser(1, "a@x.com"))

	assert.True(t, s.ExistsByID(1))
	assert.False(t, s.ExistsByID(2))
	assert.True(t, s.ExistsByEmail("a@x.com"))
	assert.False(t, s.ExistsByEmail("b@x.com"))
}

func TestList(t *testing.T) {
	s := newStore(sampleUser(1, "a@x.com"), sampleUser(2, "b@x.com"))
	assert.Len(t, s.List(), 2)
	assert.Empty(t, newStore().List())
}

func TestDefaultSeedUsers(t *testing.T) {
	seed := storage.DefaultSeedUsers()
	require.Len(t, seed, 4)

	s := newStore(seed...)
	got, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "ironman@avengers.com", got.Email)
	assert.True(t, got.Preferences.Email)
	assert.Equal(t, 5, s.NextID())
}
