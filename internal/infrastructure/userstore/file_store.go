// Package userstore persists user accounts in a JSON file keyed by
// username. The file is the source of truth for identity; callers see
// only the narrow List/Get/Add/Delete surface so the format can be
// swapped for a database without touching policy or normalization
// logic.
package userstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
)

var (
	// ErrUserExists means the username is already taken
	ErrUserExists = errors.New("username already exists")
	// ErrUserNotExist means no account has that username
	ErrUserNotExist = errors.New("user does not exist")
)

// FileStore is a JSON-file-backed user store. All operations rewrite
// the whole file under a mutex; the file holds a map of username to
// account record.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens (or creates) the user store at path
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(map[string]models.UserAccount{}); err != nil {
			return nil, fmt.Errorf("failed to initialize user store: %w", err)
		}
	}
	// verify the file parses before handing the store out
	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns all accounts sorted by username
func (s *FileStore) List() ([]models.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.UserAccount, 0, len(users))
	for _, name := range names {
		u := users[name]
		u.Username = name
		out = append(out, u)
	}
	return out, nil
}

// Get returns the account with the given username
func (s *FileStore) Get(username string) (*models.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return nil, err
	}

	u, ok := users[username]
	if !ok {
		return nil, ErrUserNotExist
	}
	u.Username = username
	return &u, nil
}

// Add inserts a new account. The username must not be taken.
func (s *FileStore) Add(user models.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := users[user.Username]; ok {
		return ErrUserExists
	}
	users[user.Username] = user

	return s.write(users)
}

// Delete removes the account with the given username
func (s *FileStore) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := users[username]; !ok {
		return ErrUserNotExist
	}
	delete(users, username)

	return s.write(users)
}

func (s *FileStore) read() (map[string]models.UserAccount, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user store %s: %w", s.path, err)
	}

	users := map[string]models.UserAccount{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user store %s: %w", s.path, err)
	}
	return users, nil
}

func (s *FileStore) write(users map[string]models.UserAccount) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}

	// write to a temp file and rename so a crash mid-write cannot
	// truncate the store
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write user store %s: %w", s.path, err)
	}
	return os.Rename(tmp, s.path)
}
