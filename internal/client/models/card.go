// Package models defines the card and user records exchanged with the
// BCard directory service.
package models

// Image is a picture reference with alt text, used on cards and profiles.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Address is a postal address. State and Zip are optional on the service.
type Address struct {
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber int    `json:"houseNumber"`
	Zip         int    `json:"zip,omitempty"`
}

// Card is a business card owned by exactly one user. Likes holds the ids of
// the users who favorited the card; membership, not count, is the unit of
// state, and an id appears at most once.
type Card struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Web         string   `json:"web,omitempty"`
	Image       Image    `json:"image"`
	Address     Address  `json:"address"`
	OwnerID     string   `json:"user_id"`
	Likes       []string `json:"likes"`
}

// LikedBy reports whether userID is a member of the card's likes set.
func (c Card) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// OwnedBy reports whether userID owns the card.
func (c Card) OwnedBy(userID string) bool {
	return c.OwnerID != "" && c.OwnerID == userID
}

// CardInput is the editable part of a card, sent on create and on update.
// Updates replace all editable fields at once.
type CardInput struct {
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	Description string  `json:"description"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Web         string  `json:"web,omitempty"`
	Image       Image   `json:"image"`
	Address     Address `json:"address"`
}
