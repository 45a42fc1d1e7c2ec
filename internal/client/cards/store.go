// Package cards holds the fetched card collection, its search-filtered view,
// and the local like state. The store is mutated by gateway responses and by
// optimistic edits; it performs no I/O of its own.
package cards

import (
	"strings"

	"github.com/bcardapp/bcard/internal/client/models"
)

// Store keeps the full card set and a derived filtered view.
// Invariants: filtered is always a subset of all in the same relative order,
// and an empty search term means filtered == all.
type Store struct {
	all      []models.Card
	filtered []models.Card
	term     string
}

func NewStore() *Store {
	return &Store{}
}

// SetAll replaces the full collection and recomputes the filtered view with
// the current search term.
func (s *Store) SetAll(cards []models.Card) {
	s.all = append([]models.Card(nil), cards...)
	s.refilter()
}

// SetSearchTerm replaces the search term and recomputes the filtered view.
// Resetting pagination to page 1 on a term change is the caller's job.
func (s *Store) SetSearchTerm(term string) {
	s.term = term
	s.refilter()
}

func (s *Store) All() []models.Card      { return s.all }
func (s *Store) Filtered() []models.Card { return s.filtered }
func (s *Store) SearchTerm() string      { return s.term }
func (s *Store) Len() int                { return len(s.all) }

// Get returns the card with the given id from the full collection.
func (s *Store) Get(id string) (models.Card, bool) {
	for _, c := range s.all {
		if c.ID == id {
			return c, true
		}
	}
	return models.Card{}, false
}

// LikedBy returns the cards whose likes set contains userID, in collection
// order.
func (s *Store) LikedBy(userID string) []models.Card {
	var out []models.Card
	for _, c := range s.all {
		if c.LikedBy(userID) {
			out = append(out, c)
		}
	}
	return out
}

// Add appends a card to the collection, e.g. after a confirmed create.
func (s *Store) Add(card models.Card) {
	s.all = append(s.all, card)
	s.refilter()
}

// Replace substitutes the stored card with the same id, reconciling local
// state with a server response. It reports whether the card was present.
func (s *Store) Replace(card models.Card) bool {
	for i := range s.all {
		if s.all[i].ID == card.ID {
			s.all[i] = card
			s.refilter()
			return true
		}
	}
	return false
}

// Remove drops the card with the given id, e.g. after a confirmed delete.
func (s *Store) Remove(id string) bool {
	for i := range s.all {
		if s.all[i].ID == id {
			s.all = append(s.all[:i], s.all[i+1:]...)
			s.refilter()
			return true
		}
	}
	return false
}

// ToggleLike flips userID's membership in the addressed card's likes set
// locally, before any network call resolves. It returns whether the card is
// now liked and whether the card was found. Applying it twice with the same
// arguments restores the original membership.
func (s *Store) ToggleLike(cardID, userID string) (liked bool, ok bool) {
	for i := range s.all {
		if s.all[i].ID != cardID {
			continue
		}
		likes := s.all[i].Likes
		for j, id := range likes {
			if id == userID {
				s.all[i].Likes = append(append([]string(nil), likes[:j]...), likes[j+1:]...)
				s.refilter()
				return false, true
			}
		}
		s.all[i].Likes = append(append([]string(nil), likes...), userID)
		s.refilter()
		return true, true
	}
	return false, false
}

func (s *Store) refilter() {
	term := strings.ToLower(strings.TrimSpace(s.term))
	if term == "" {
		s.filtered = s.all
		return
	}
	filtered := make([]models.Card, 0, len(s.all))
	for _, c := range s.all {
		if matches(c, term) {
			filtered = append(filtered, c)
		}
	}
	s.filtered = filtered
}

// matches implements the search rule: case-insensitive substring match
// against title, subtitle, description, city, and country.
func matches(c models.Card, term string) bool {
	for _, field := range []string{c.Title, c.Subtitle, c.Description, c.Address.City, c.Address.Country} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
