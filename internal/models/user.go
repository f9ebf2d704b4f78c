package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity decoded from a bearer token and carried in the
// request context. It is not persisted here; accounts live in a separate
// identity service.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Anonymous reports whether the user carries no identity at all.
func (u User) Anonymous() bool { return u.ID == "" && u.Email == "" }
