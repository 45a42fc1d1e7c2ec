package cli

import (
	"fmt"
	"strings"

	"github.com/bcardapp/bcard/internal/client/cards"
	"github.com/bcardapp/bcard/internal/client/models"
)

// renderPage prints the current page of the (possibly filtered) listing,
// a results summary, and the page-number strip.
func (a *App) renderPage() {
	filtered := a.cards.Filtered()
	term := strings.TrimSpace(a.cards.SearchTerm())

	if len(filtered) == 0 {
		if term != "" {
			a.notify(fmt.Sprintf("No cards found matching %q", term))
		} else {
			a.notify("No cards available yet.")
		}
		return
	}

	size := a.pageSize()
	total := len(filtered)
	totalPages := cards.TotalPages(total, size)
	slice := cards.PageSlice(filtered, a.page, size)

	start := (a.page-1)*size + 1
	summary := fmt.Sprintf("Showing %d-%d of %d results", start, start+len(slice)-1, total)
	if term != "" {
		summary += fmt.Sprintf(" for %q", term)
	}
	a.notify(summary)

	a.renderCards(slice)

	if totalPages > 1 {
		a.notify(pageStrip(a.page, totalPages))
	}
}

func (a *App) renderCards(list []models.Card) {
	me := ""
	if s := a.session.Current(); s.Authenticated {
		me = s.Identity.ID
	}
	for _, c := range list {
		a.notify(cardLine(c, me))
	}
}

func cardLine(c models.Card, me string) string {
	line := fmt.Sprintf("%s  %s — %s (%s, %s)", c.ID, c.Title, c.Subtitle, c.Address.City, c.Address.Country)
	if n := len(c.Likes); n > 0 {
		line += fmt.Sprintf("  [%d likes]", n)
	}
	if me != "" {
		if c.OwnedBy(me) {
			line += " (yours)"
		} else if c.LikedBy(me) {
			line += " (liked)"
		}
	}
	return line
}

func (a *App) renderCardDetails(c models.Card) {
	a.notify(c.Title, "—", c.Subtitle)
	if c.Description != "" {
		a.notify(c.Description)
	}
	a.notify("Phone:", c.Phone)
	a.notify("Email:", c.Email)
	if c.Web != "" {
		a.notify("Web:", c.Web)
	}
	addr := fmt.Sprintf("%s %d, %s, %s", c.Address.Street, c.Address.HouseNumber, c.Address.City, c.Address.Country)
	a.notify("Address:", addr)
	a.notify("Likes:", len(c.Likes))
	if s := a.session.Current(); s.Authenticated && c.LikedBy(s.Identity.ID) {
		a.notify("You like this card.")
	}
}

func (a *App) renderUsers(users []models.User) {
	for _, u := range users {
		roles := make([]string, 0, 2)
		if u.IsAdmin {
			roles = append(roles, "admin")
		}
		if u.IsBusiness {
			roles = append(roles, "business")
		}
		line := fmt.Sprintf("%s  %s <%s>", u.ID, u.Name.Full(), u.Email)
		if len(roles) > 0 {
			line += "  [" + strings.Join(roles, ",") + "]"
		}
		a.notify(line)
	}
	a.notify(fmt.Sprintf("%d users", len(users)))
}

// pageStrip renders the sliding page-number window, e.g. «  1 … 4 [5] 6 … 12  ».
func pageStrip(current, total int) string {
	parts := []string{"«"}
	for _, p := range cards.PageNumbers(current, total) {
		switch {
		case p == cards.Gap:
			parts = append(parts, "…")
		case p == current:
			parts = append(parts, fmt.Sprintf("[%d]", p))
		default:
			parts = append(parts, fmt.Sprintf("%d", p))
		}
	}
	parts = append(parts, "»")
	return "Pages: " + strings.Join(parts, " ")
}
