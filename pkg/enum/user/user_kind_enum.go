// Package user defines the account kind tags carried by profiles.
package user

const (
	Common       = "comum"
	Psychologist = "psychologist"
)
