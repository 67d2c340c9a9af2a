// Package user defines the account model used throughout the application,
// particularly for authentication and URL ownership.
package user

// User represents a registered account.
// Users are created on registration and never change or disappear afterwards.
type User struct {
	// ID is the opaque unique identifier of the user.
	ID string

	// Email is unique across all users and compared case-sensitively.
	Email string

	// PasswordHash is the one-way hash of the user's password. The plaintext
	// password is never stored.
	PasswordHash string
}
