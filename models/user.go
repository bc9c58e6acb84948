package models

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// StoredUser is the shape kept in the user blob; it carries the hash that
// User deliberately hides from JSON responses.
type StoredUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

func (u StoredUser) Public() User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email}
}
