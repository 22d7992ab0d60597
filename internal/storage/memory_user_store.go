package storage

import "sync"

// MemoryUserStore implements UserStore with two in-memory maps: records by ID
// and an email-to-ID index. All access is serialized through a single RWMutex
// so that ID allocation and email re-indexing are atomic; no observer ever
// sees the two indices disagree.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[int]User
	byEmail map[string]int
}

// NewMemoryUserStore creates a MemoryUserStore pre-populated with the given
// seed records. Seed records keep their IDs as-is; duplicate seed emails keep
// the last occurrence.
func NewMemoryUserStore(seed []User) *MemoryUserStore {
	s := &MemoryUserStore{
		byID:    make(map[int]User, len(seed)),
		byEmail: make(map[string]int, len(seed)),
	}
	for _, u := range seed {
		s.byID[u.ID] = u
		s.byEmail[u.Email] = u.ID
	}
	return s
}

func (s *MemoryUserStore) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		users = append(users, u)
	}
	return users
}

func (s *MemoryUserStore) GetByID(id int) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) GetByEmail(email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryUserStore) ExistsByID(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

func (s *MemoryUserStore) ExistsByEmail(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[email]
	return ok
}

func (s *MemoryUserStore) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextIDLocked()
}

// nextIDLocked computes max(existing IDs)+1, or 1 for an empty store.
// Callers must hold at least the read lock.
func (s *MemoryUserStore) nextIDLocked() int {
	next := 1
	for id := range s.byID {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// Create assigns the new record's ID under the write lock, so two concurrent
// creates can never be handed the same ID.
func (s *MemoryUserStore) Create(user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return User{}, ErrDuplicateEmail
	}

	user.ID = s.nextIDLocked()
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return user, nil
}

func (s *MemoryUserStore) Update(id int, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	if owner, taken := s.byEmail[user.Email]; taken && owner != id {
		return User{}, ErrDuplicateEmail
	}

	// The ID is the stable identifier — it cannot be changed via an update.
	user.ID = id

	if old.Email != user.Email {
		delete(s.byEmail, old.Email)
		s.byEmail[user.Email] = id
	}
	s.byID[id] = user
	return user, nil
}

func (s *MemoryUserStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byEmail, u.Email)
	delete(s.byID, id)
	return true
}
