package domain

import "time"

// User is the stored account record.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"fullName" db:"full_name"`
	Avatar       string    `json:"avatar" db:"avatar"`
	CoverImage   string    `json:"coverImage" db:"cover_image"`
	PasswordHash string    `json:"-" db:"password_hash"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Public strips credentials from the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
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

// PublicUser is the user as seen by clients and by authenticated handlers.
type PublicUser struct {
	ID         string    `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Email      string    `json:"email" db:"email"`
	FullName   string    `json:"fullName" db:"full_name"`
	Avatar     string    `json:"avatar" db:"avatar"`
	CoverImage string    `json:"coverImage" db:"cover_image"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the projection used when a user is embedded in another view.
type UserSummary struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	FullName string `json:"fullName" db:"full_name"`
	Avatar   string `json:"avatar" db:"avatar"`
}

// ChannelProfile is a user's public channel page.
type ChannelProfile struct {
	ID                        string `json:"id" db:"id"`
	Username                  string `json:"username" db:"username"`
	Email                     string `json:"email" db:"email"`
	FullName                  string `json:"fullName" db:"full_name"`
	Avatar                    string `json:"avatar" db:"avatar"`
	CoverImage                string `json:"coverImage" db:"cover_image"`
	SubscribersCount          int64  `json:"subscribersCount" db:"subscribers_count"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount" db:"channels_subscribed_to_count"`
	IsSubscribed              bool   `json:"isSubscribed" db:"is_subscribed"`
}
