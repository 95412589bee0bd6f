// Package models holds the account service's data types.
package models

import (
	"bytes"

	"github.com/dmitrijs2005/useraccounts/internal/common"
)

// User is a stored account. It has no plaintext password field: passwords
// only travel on NewUser, UpdateUser and login requests.
type User struct {
	ID             int32
	Name           string
	Email          string
	HashedPassword []byte
	Salt           []byte
}

// HasCredentials reports whether both hash and salt are set.
func (u *User) HasCredentials() bool {
	return len(u.HashedPassword) > 0 && len(u.Salt) > 0
}

// CheckCredentials rejects a record carrying only one of hash and salt.
func (u *User) CheckCredentials() error {
	if (len(u.HashedPassword) > 0) != (len(u.Salt) > 0) {
		return common.ErrorValidation
	}
	return nil
}

// Clone returns a deep copy, so callers never share byte slices with the
// registry.
func (u User) Clone() User {
	u.HashedPassword = bytes.Clone(u.HashedPassword)
	u.Salt = bytes.Clone(u.Salt)
	return u
}

// NewUser is a creation request.
type NewUser struct {
	ID       int32  `json:"id" validate:"gte=1"`
	Name     string `json:"name" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=256"`
}

// UpdateUser is a full replacement of a user's attributes. An empty
// Password keeps the stored credentials.
type UpdateUser struct {
	Name     string `json:"name" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=4,max=256"`
}
