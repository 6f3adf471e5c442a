package catalog

import (
	"fmt"
	"slices"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost for admin passwords.
var PasswordCost = bcrypt.DefaultCost

// prepare hashes a supplied password. A create without a password or
// existing hash is rejected.
func (u *AdminUser) prepare() error {
	if u.Password == "" {
		if u.PasswordHash == "" && u.ID == "" {
			return invalid("password", "password is required")
		}
		return nil
	}
	if len(u.Password) < 8 {
		return invalid("password", "password must be at least 8 characters")
	}
	if len(u.Password) > 72 {
		return invalid("password", "password must be at most 72 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), PasswordCost)
	if err != nil {
		return fmt.Errorf("catalog: hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.Password = ""
	return nil
}

// updateColumns keeps the stored hash when no new password was supplied.
func (u *AdminUser) updateColumns(cols []string) []string {
	if u.PasswordHash != "" {
		return cols
	}
	return slices.DeleteFunc(slices.Clone(cols), func(c string) bool { return c == "password_hash" })
}

// CheckPassword reports whether password matches the stored hash.
func (u *AdminUser) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
