package dto

import "github.com/signin-labs/account-service/internal/domain"

// GoogleLoginRequest carries the identity assertion obtained by the client.
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

// UserProfile is the public projection of a user.
type UserProfile struct {
	SubjectID  string `json:"subjectId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	PictureURL string `json:"pictureUrl"`
}

// UserResponse wraps the profile returned by login and session checks.
type UserResponse struct {
	User UserProfile `json:"user"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserProfile projects the public fields of user.
func NewUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		SubjectID:  user.SubjectID,
		Name:       user.Name,
		Email:      user.Email,
		PictureURL: user.PictureURL,
	}
}
