package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a member's role in the system.
type Role string

const (
	RoleRegular Role = "regular"
	RoleDecider Role = "decider"
	RoleAdmin   Role = "admin"
)

// MemberStatus represents a member's account status.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
	MemberBanned   MemberStatus = "banned"
)

// Member is a registered participant. The role and managed-profession set
// gate who may change profession standards.
type Member struct {
	ID                 string
	Email              string
	Username           string
	PasswordHash       string
	Status             MemberStatus
	Role               Role
	ManagedProfessions []ProfessionType
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewMember creates an active regular member.
func NewMember(email, username, passwordHash string) *Member {
	now := time.Now().UTC()
	return &Member{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Status:       MemberActive,
		Role:         RoleRegular,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsActive reports whether the member may act in the system.
func (m *Member) IsActive() bool {
	return m.Status == MemberActive
}

// IsAdmin reports whether the member holds the admin role.
func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// IsDecider reports whether the member holds the decider role.
func (m *Member) IsDecider() bool {
	return m.Role == RoleDecider
}

// CanManageProfession reports whether the member may change the standard
// for the given profession type: admins always, deciders only for types in
// their managed set.
func (m *Member) CanManageProfession(professionType ProfessionType) bool {
	if m.IsAdmin() {
		return true
	}
	if !m.IsDecider() {
		return false
	}
	for _, p := range m.ManagedProfessions {
		if p == professionType {
			return true
		}
	}
	return false
}

// PromoteToDecider grants the decider role with the given managed set,
// replacing any previous set.
func (m *Member) PromoteToDecider(professions []ProfessionType) {
	m.Role = RoleDecider
	m.ManagedProfessions = professions
	m.UpdatedAt = time.Now().UTC()
}

// PromoteToAdmin grants the admin role. Admins manage every profession, so
// the explicit set is cleared.
func (m *Member) PromoteToAdmin() {
	m.Role = RoleAdmin
	m.ManagedProfessions = nil
	m.UpdatedAt = time.Now().UTC()
}

// DemoteToRegular revokes any elevated role and clears the managed set.
func (m *Member) DemoteToRegular() {
	m.Role = RoleRegular
	m.ManagedProfessions = nil
	m.UpdatedAt = time.Now().UTC()
}

// Activate enables the member.
func (m *Member) Activate() {
	m.Status = MemberActive
	m.UpdatedAt = time.Now().UTC()
}

// Deactivate disables the member without deleting it.
func (m *Member) Deactivate() {
	m.Status = MemberInactive
	m.UpdatedAt = time.Now().UTC()
}

// Ban blocks the member permanently.
func (m *Member) Ban() {
	m.Status = MemberBanned
	m.UpdatedAt = time.Now().UTC()
}
