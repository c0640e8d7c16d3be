package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of permission tiers a user can hold.
type Role string

const (
	RoleSuperUser Role = "SuperUser"
	RoleAdmin     Role = "Admin"
	RoleUser      Role = "User"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperUser, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// OneOf reports whether r is contained in the given allow-list.
func (r Role) OneOf(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}

// IsStaff reports whether r may perform catalog and sale administration.
func (r Role) IsStaff() bool {
	return r.OneOf(RoleSuperUser, RoleAdmin)
}

// User is the identity and credential record.
// Password holds the bcrypt hash, never the plaintext, and is excluded
// from JSON output. ResetToken stores the SHA-256 digest of the issued
// reset token; the plaintext token only ever travels in the reset email.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	ResetToken   string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetExpires time.Time          `bson:"resetPasswordExpires,omitempty" json:"-"`
}

// UserPatch carries a partial user update. Nil pointers mean "leave the
// field unchanged"; a present pointer is applied even when it points at
// a zero value.
type UserPatch struct {
	Username *string `json:"username" validate:"nullable,min=2,max=100"`
	Email    *string `json:"email" validate:"nullable,email"`
	Role     *Role   `json:"role"`
}
