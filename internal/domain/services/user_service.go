package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/manjito26/ESTOP-System/internal/domain/access"
	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/userstore"
)

// UserStore is the narrow surface of the external user store the core
// depends on
type UserStore interface {
	List() ([]models.UserAccount, error)
	Get(username string) (*models.UserAccount, error)
	Add(user models.UserAccount) error
	Delete(username string) error
}

// InterfaceUserService defines the user account service
type InterfaceUserService interface {
	ListUsers() ([]models.PublicUser, error)
	AddUser(actor Actor, input NewUserInput) (*models.PublicUser, error)
	DeleteUser(actor Actor, username string) error
	Authenticate(username, password string) (*models.UserAccount, error)
}

// NewUserInput carries the unvalidated fields for a new account
type NewUserInput struct {
	Username  string `json:"username" binding:"required" example:"mhiggins"`
	FirstName string `json:"first_name" example:"mary"`
	LastName  string `json:"last_name" example:"higgins"`
	Email     string `json:"email" example:"mhiggins@example.com"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role" binding:"required" example:"user"` // user, supervisor, admin
}

// UserService manages user accounts in the file-backed store
type UserService struct {
	Store UserStore
}

// NewUserService creates a new user service
func NewUserService(store UserStore) InterfaceUserService {
	return &UserService{Store: store}
}

// NormalizeName capitalizes a name: first letter upper, remainder
// lower. Applied to every first/last name entering the store, whatever
// the entry path. Idempotent.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	r := []rune(lower)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ListUsers returns all accounts without their password hashes
func (s *UserService) ListUsers() ([]models.PublicUser, error) {
	users, err := s.Store.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// AddUser creates a new account. Admin only; names are normalized and
// the password is stored as a bcrypt hash.
func (s *UserService) AddUser(actor Actor, input NewUserInput) (*models.PublicUser, error) {
	if !access.Authorize(actor.Role, access.ActionManageUsers, access.ResourceUser) {
		return nil, ErrNotPermitted
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if input.Password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	role := models.Role(input.Role)
	if !models.ValidRole(role) {
		return nil, &ValidationError{Field: "role", Reason: "must be one of user, supervisor, admin"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := models.UserAccount{
		Username:  username,
		FirstName: NormalizeName(input.FirstName),
		LastName:  NormalizeName(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Password:  string(hash),
		Role:      role,
		CreatedAt: time.Now().Format("2006-01-02 15:04:05"),
	}

	if err := s.Store.Add(user); err != nil {
		if errors.Is(err, userstore.ErrUserExists) {
			return nil, fmt.Errorf("username %q: %w", username, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	pub := user.Public()
	return &pub, nil
}

// DeleteUser removes an account. Admin only; admins cannot delete
// their own account.
func (s *UserService) DeleteUser(actor Actor, username string) error {
	if !access.Authorize(actor.Role, access.ActionManageUsers, access.ResourceUser) {
		return ErrNotPermitted
	}

	if username == actor.Username {
		return ErrSelfDelete
	}

	if err := s.Store.Delete(username); err != nil {
		if errors.Is(err, userstore.ErrUserNotExist) {
			return fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Authenticate checks a username/password pair against the store and
// returns the account on success
func (s *UserService) Authenticate(username, password string) (*models.UserAccount, error) {
	user, err := s.Store.Get(username)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotExist) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}
