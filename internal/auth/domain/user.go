package domain

import "time"

// User is the canonical identity record. Username and email are stored
// lowercase and unique. RefreshToken is the single session slot: nil means
// no active session, otherwise it holds exactly the most recently issued
// refresh token and implicitly invalidates every earlier one.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	Avatar       string
	CoverImage   string
	PasswordHash string // argon2id encoded
	RefreshToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the sanitized projection used in responses and in the
// request context. It never carries the password hash or the session slot.
type PublicUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullname"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public strips the secret-bearing fields.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
