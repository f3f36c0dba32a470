package domain

import "time"

// Role identifies the kind of actor behind an account.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleClubManager   Role = "club_manager"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleClubManager
}

// Account models a credentialed identity: a federation administrator or the
// manager of an affiliated club.
//
// Credential state is mutually exclusive: once PasswordHash is set,
// TemporaryPassword must be cleared, and only RegenerateCredentials reverses
// the transition. Constructors and mutators below are the single place this
// invariant is enforced.
type Account struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	ClubID      string    `json:"club_id,omitempty"` // set iff Role == RoleClubManager
	IsActive    bool      `json:"is_active"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Never serialized.
	PasswordHash      string `json:"-"`
	TemporaryPassword string `json:"-"`
}

// NewAdministrator builds an active administrator with a permanent password hash.
func NewAdministrator(email, name, passwordHash string, now time.Time) *Account {
	return &Account{
		Email:        email,
		Name:         name,
		Role:         RoleAdministrator,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewClubManager builds an active club manager holding only a temporary
// password; the permanent hash is set later via SetPermanentPassword.
func NewClubManager(email, name, clubID, temporaryPassword string, now time.Time) *Account {
	return &Account{
		Email:             email,
		Name:              name,
		Role:              RoleClubManager,
		ClubID:            clubID,
		TemporaryPassword: temporaryPassword,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// IsClubManager reports whether the account belongs to a club manager.
func (a *Account) IsClubManager() bool {
	return a.Role == RoleClubManager
}

// PendingFirstPassword reports whether the account still runs on a temporary
// password and must complete the forced reset before a normal login.
func (a *Account) PendingFirstPassword() bool {
	return a.TemporaryPassword != "" && a.PasswordHash == ""
}

// SetPermanentPassword records the permanent hash and clears the temporary
// password, completing the temporary → permanent transition.
func (a *Account) SetPermanentPassword(hash string, now time.Time) {
	a.PasswordHash = hash
	a.TemporaryPassword = ""
	a.UpdatedAt = now
}

// RegenerateCredentials is the only path back from permanent to temporary:
// it installs a fresh temporary password, drops the permanent hash, and
// reactivates the account.
func (a *Account) RegenerateCredentials(temporaryPassword string, now time.Time) {
	a.TemporaryPassword = temporaryPassword
	a.PasswordHash = ""
	a.IsActive = true
	a.UpdatedAt = now
}

// Summary is the public projection of an account returned to API clients.
// It never carries credential material.
type Summary struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	ClubID      string    `json:"club_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
}

// Summarize returns the public projection of the account.
func (a *Account) Summarize() Summary {
	return Summary{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		Role:        a.Role,
		ClubID:      a.ClubID,
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
	}
}
