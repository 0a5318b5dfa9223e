package model

import "time"

// User roles.
const (
	RoleAdmin  = "Admin"
	RoleMember = "Member"
)

// User is a board member. Authentication details live in the HTTP
// layer; the core only ever needs identity, display name, and role.
type User struct {
	// ID is the unique identifier for this user.
	ID string `json:"id"`

	// Name is the display name, matched against @mention tokens.
	Name string `json:"name"`

	// Email is the user's contact address.
	Email string `json:"email"`

	// Avatar is the path to the user's avatar image, if any.
	Avatar string `json:"avatar,omitempty"`

	// Role is either RoleAdmin or RoleMember.
	Role string `json:"role"`

	// CreatedAt is when the user was created.
	CreatedAt time.Time `json:"created_at"`
}
