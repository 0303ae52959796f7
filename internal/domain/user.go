package domain

import "time"

// User is a person authenticated through the identity provider.
type User struct {
	ID         string
	SubjectID  string
	Name       string
	Email      string
	PictureURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Identity is the verified claim extracted from an identity assertion.
type Identity struct {
	SubjectID  string
	Name       string
	Email      string
	PictureURL string
}

// Apply overwrites the mutable profile fields from a verified claim.
func (u *User) Apply(identity Identity) {
	u.Name = identity.Name
	u.Email = identity.Email
	u.PictureURL = identity.PictureURL
}
