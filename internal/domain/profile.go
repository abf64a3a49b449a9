package domain

import "time"

// Profile is an account together with its public profile data.
type Profile struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool

	Bio        string
	AvatarURL  string
	WebsiteURL string

	EmailVerified    bool
	VerificationCode string

	CreatedAt time.Time
}

// Actor is the authenticated identity a request acts as.
type Actor struct {
	ID    int64
	Staff bool
}

// ProfilePage is one page of a profile listing.
type ProfilePage struct {
	Profiles []Profile
	Cursor   string
}

type RegisterCommand struct {
	Username string
	Email    string
	Password string
}

// UpdateProfileCommand is a partial update; nil fields are left unchanged.
type UpdateProfileCommand struct {
	Bio        *string
	AvatarURL  *string
	WebsiteURL *string
}
