// Package account provides users, their role and subscription tier, and the
// access policy derived from them.
package account

import (
	"fmt"
	"time"
)

// Role is the administrative axis of a user.
type Role string

const (
	RoleRegular       Role = "regular"
	RoleAdministrator Role = "administrator"
)

// Tier is the subscription axis of a user.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

const (
	// MaxFreeLevel is the highest level a free-tier user can open.
	MaxFreeLevel = 3
	// MaxLevel is the highest level in the catalog.
	MaxLevel = 9
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleRegular, RoleAdministrator:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case TierFree, TierPro:
		return t, nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	Role         Role      `db:"role"`
	Tier         Tier      `db:"tier"`
	RegisteredAt time.Time `db:"registered_at"`
}

// IsAdministrator reports whether u bypasses every access check.
func IsAdministrator(u User) bool {
	return u.Role == RoleAdministrator
}

func IsElevatedTier(u User) bool {
	return u.Tier == TierPro
}

// MaxLevelForTier returns the highest level u may open.
func MaxLevelForTier(u User) int {
	if IsAdministrator(u) || IsElevatedTier(u) {
		return MaxLevel
	}
	return MaxFreeLevel
}

func CanAccessLevel(u User, level int) bool {
	return IsAdministrator(u) || IsElevatedTier(u) || level <= MaxFreeLevel
}
