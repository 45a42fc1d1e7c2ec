package models

import "strings"

// DefaultProfileImageURL is used when a signup provides no picture.
const DefaultProfileImageURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

// Name is a person's name as the service stores it.
type Name struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

// Full returns the display form of the name, skipping empty parts.
func (n Name) Full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Middle, n.Last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// User is an account record. IsBusiness and IsAdmin are independent
// capabilities layered on top of plain authentication.
type User struct {
	ID         string  `json:"_id"`
	Name       Name    `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Image      Image   `json:"image"`
	Address    Address `json:"address"`
	IsAdmin    bool    `json:"isAdmin"`
	IsBusiness bool    `json:"isBusiness"`
}

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Name       Name    `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Image      Image   `json:"image"`
	Address    Address `json:"address"`
	IsBusiness bool    `json:"isBusiness"`
}
