// Package role defines the authorization role tags attached to identities.
package role

const (
	User         = "user"
	Psychologist = "psychologist"
	Admin        = "admin"
)

// Valid reports whether r is a known role tag.
func Valid(r string) bool {
	switch r {
	case User, Psychologist, Admin:
		return true
	}
	return false
}
