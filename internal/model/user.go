package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	WorkOSID  *string   `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  *string   `json:"position,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
