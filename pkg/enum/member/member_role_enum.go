// Package member defines role tags within a group.
package member

const (
	Member = "membro"
	Admin  = "admin"
)
