// Package auth covers the two independent sessions of the site: the
// customer account and the admin panel. They are never unioned; the admin
// session is a bare authenticated flag with no profile behind it.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hariharanp05/eaclothingfrontend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLen = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Verifier is the credential-verification collaborator. The real
// implementation belongs to the external backend; this repo ships only the
// stub below.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*models.User, error)
	Signup(ctx context.Context, email, password, name string) (*models.User, error)
}

// StubVerifier accepts any syntactically valid email with a long enough
// password and fabricates the user record. It performs no credential
// check against any store.
type StubVerifier struct {
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (v *StubVerifier) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func (v *StubVerifier) Verify(ctx context.Context, email, password string) (*models.User, error) {
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: v.now(),
	}, nil
}

func (v *StubVerifier) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	user, err := v.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	return user, nil
}

// ProfileUpdate carries the optional account fields; blank fields are left
// as they were.
type ProfileUpdate struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	ZipCode string
}

// ApplyProfileUpdate merges the non-empty fields of upd into user and
// returns the result. A nil user stays nil.
func ApplyProfileUpdate(user *models.User, upd ProfileUpdate) *models.User {
	if user == nil {
		return nil
	}
	merged := *user
	if upd.Name != "" {
		merged.Name = upd.Name
	}
	if upd.Phone != "" {
		merged.Phone = upd.Phone
	}
	if upd.Address != "" {
		merged.Address = upd.Address
	}
	if upd.City != "" {
		merged.City = upd.City
	}
	if upd.State != "" {
		merged.State = upd.State
	}
	if upd.ZipCode != "" {
		merged.ZipCode = upd.ZipCode
	}
	return &merged
}

// Admin checks panel logins against the configured credential pair. The
// hash comes from the environment, never from a source literal.
type Admin struct {
	Email        string
	PasswordHash string
}

// Login returns ErrInvalidCredentials unless both the email and the bcrypt
// hash match.
func (a Admin) Login(email, password string) error {
	if a.Email == "" || a.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if email != a.Email {
		// Burn a compare anyway so a bad email costs the same as a bad password.
		bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
