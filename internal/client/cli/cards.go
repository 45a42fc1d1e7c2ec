package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/bcardapp/bcard/internal/client/cards"
	"github.com/bcardapp/bcard/internal/client/guard"
	"github.com/bcardapp/bcard/internal/client/models"
)

// refreshCards replaces the collection with the server's card list and
// resets paging.
func (a *App) refreshCards(ctx context.Context) error {
	list, err := a.api.Cards(ctx)
	if err != nil {
		a.reportError(ctx, err, "Could not load cards. Please try again later.")
		return err
	}
	a.cards.SetAll(list)
	a.page = 1
	return nil
}

// ensureCards fetches the collection on first use; later commands reuse the
// loaded state until an explicit 'list' refresh.
func (a *App) ensureCards(ctx context.Context) error {
	if a.cards.Len() > 0 {
		return nil
	}
	return a.refreshCards(ctx)
}

// List fetches the card collection and renders the current page.
func (a *App) List(ctx context.Context) error {
	if err := a.refreshCards(ctx); err != nil {
		return err
	}
	a.renderPage()
	return nil
}

// Search filters the listing by a case-insensitive term and jumps back to
// page 1. An empty term clears the filter.
func (a *App) Search(ctx context.Context, term string) error {
	if err := a.ensureCards(ctx); err != nil {
		return err
	}
	a.cards.SetSearchTerm(term)
	a.page = 1
	a.renderPage()
	return nil
}

// Page jumps to the given page. Out-of-range requests are rejected here,
// leaving the current page untouched.
func (a *App) Page(ctx context.Context, arg string) error {
	if err := a.ensureCards(ctx); err != nil {
		return err
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		a.notify("Usage: page <n>")
		return nil
	}
	total := cards.TotalPages(len(a.cards.Filtered()), a.pageSize())
	if n < 1 || n > total {
		a.notify("No such page:", arg)
		return nil
	}
	a.page = n
	a.renderPage()
	return nil
}

func (a *App) Next(ctx context.Context) error {
	return a.Page(ctx, strconv.Itoa(a.page+1))
}

func (a *App) Prev(ctx context.Context) error {
	return a.Page(ctx, strconv.Itoa(a.page-1))
}

// Show renders one card in full, fetching it when it is not in the loaded
// collection.
func (a *App) Show(ctx context.Context, id string) error {
	card, ok := a.cards.Get(id)
	if !ok {
		var err error
		card, err = a.api.Card(ctx, id)
		if err != nil {
			a.reportError(ctx, err, "Card not found")
			return err
		}
	}
	a.renderCardDetails(card)
	return nil
}

// Like optimistically flips the signed-in user's like on a card, then
// reconciles with the server: the response card replaces the local one, and
// a failed call reverts the optimistic flip.
func (a *App) Like(ctx context.Context, id string) error {
	if !a.gate(ctx, guard.Authenticated) {
		return nil
	}
	if err := a.ensureCards(ctx); err != nil {
		return err
	}
	me := a.session.Current().Identity.ID

	liked, ok := a.cards.ToggleLike(id, me)
	if !ok {
		a.notify("Card not found:", id)
		return nil
	}

	card, err := a.api.ToggleLike(ctx, id)
	if err != nil {
		a.cards.ToggleLike(id, me) // roll the optimistic flip back
		a.reportError(ctx, err, "Could not update favorites")
		return err
	}
	a.cards.Replace(card)

	if liked {
		a.notify("Added to favorites.")
	} else {
		a.notify("Removed from favorites.")
	}
	return nil
}

// Favorites lists the cards the signed-in user has liked.
func (a *App) Favorites(ctx context.Context) error {
	if !a.gate(ctx, guard.Authenticated) {
		return nil
	}
	if err := a.ensureCards(ctx); err != nil {
		return err
	}
	favs := a.cards.LikedBy(a.session.Current().Identity.ID)
	if len(favs) == 0 {
		a.notify("No favorite cards yet. Use 'like <id>' to add one.")
		return nil
	}
	a.renderCards(favs)
	return nil
}

// MyCards lists the cards owned by the signed-in business user.
func (a *App) MyCards(ctx context.Context) error {
	if !a.gate(ctx, guard.Business) {
		return nil
	}
	mine, err := a.api.MyCards(ctx)
	if err != nil {
		a.reportError(ctx, err, "Could not load your cards")
		return err
	}
	if len(mine) == 0 {
		a.notify("You have no cards yet. Use 'create' to add one.")
		return nil
	}
	a.renderCards(mine)
	return nil
}

// Create prompts for the card fields and creates a card on the service.
func (a *App) Create(ctx context.Context) error {
	if !a.gate(ctx, guard.Business) {
		return nil
	}
	in, err := a.promptCard(models.CardInput{})
	if err != nil {
		return err
	}

	card, err := a.api.CreateCard(ctx, in)
	if err != nil {
		a.reportError(ctx, err, "Could not create the card")
		return err
	}
	if a.cards.Len() > 0 {
		a.cards.Add(card)
	}
	a.notify("Card created:", card.ID)
	return nil
}

// Edit replaces all editable fields of an owned card. Enter keeps the value
// shown in brackets.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.gate(ctx, guard.Business) {
		return nil
	}
	card, ok := a.cards.Get(id)
	if !ok {
		var err error
		card, err = a.api.Card(ctx, id)
		if err != nil {
			a.reportError(ctx, err, "Card not found")
			return err
		}
	}
	if !card.OwnedBy(a.session.Current().Identity.ID) {
		a.notify("You can only edit your own cards.")
		return nil
	}

	in, err := a.promptCard(models.CardInput{
		Title:       card.Title,
		Subtitle:    card.Subtitle,
		Description: card.Description,
		Phone:       card.Phone,
		Email:       card.Email,
		Web:         card.Web,
		Image:       card.Image,
		Address:     card.Address,
	})
	if err != nil {
		return err
	}

	updated, err := a.api.UpdateCard(ctx, id, in)
	if err != nil {
		a.reportError(ctx, err, "Could not update the card")
		return err
	}
	a.cards.Replace(updated)
	a.notify("Card updated.")
	return nil
}

// Delete removes an owned card after confirmation. The action is hidden
// from non-owners: the client refuses before any request is made, and the
// server enforces the same rule with a 403. Admins may delete any card.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.gate(ctx, guard.Authenticated) {
		return nil
	}
	card, ok := a.cards.Get(id)
	if !ok {
		var err error
		card, err = a.api.Card(ctx, id)
		if err != nil {
			a.reportError(ctx, err, "Card not found")
			return err
		}
	}

	s := a.session.Current()
	if !card.OwnedBy(s.Identity.ID) && !s.IsAdmin {
		a.notify("You can only delete your own cards.")
		return nil
	}

	confirm, err := getSimpleText(a.reader, "Delete card '"+card.Title+"'? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "yes" {
		a.notify("Cancelled.")
		return nil
	}

	if err := a.api.DeleteCard(ctx, id); err != nil {
		a.reportError(ctx, err, "Could not delete the card")
		return err
	}
	a.cards.Remove(id)
	a.notify("Card deleted.")
	return nil
}

// promptCard collects the editable card fields, using current values as
// defaults when present.
func (a *App) promptCard(current models.CardInput) (models.CardInput, error) {
	in := current
	var err error

	read := func(prompt, fallback string) (string, error) {
		v, err := getSimpleText(a.reader, withDefault(prompt, fallback), os.Stdout)
		if err != nil {
			return "", err
		}
		if v == "" {
			return fallback, nil
		}
		return v, nil
	}

	if in.Title, err = read("Title", current.Title); err != nil {
		return in, err
	}
	if in.Subtitle, err = read("Subtitle", current.Subtitle); err != nil {
		return in, err
	}
	if in.Description, err = GetMultiline(a.reader, withDefault("Description", current.Description), os.Stdout); err != nil {
		return in, err
	}
	if in.Description == "" {
		in.Description = current.Description
	}
	if in.Phone, err = read("Phone", current.Phone); err != nil {
		return in, err
	}
	if in.Email, err = read("Email", current.Email); err != nil {
		return in, err
	}
	if in.Web, err = read("Web (optional)", current.Web); err != nil {
		return in, err
	}
	if in.Image.URL, err = read("Image URL (optional)", current.Image.URL); err != nil {
		return in, err
	}
	if in.Image.URL != "" && in.Image.Alt == "" {
		in.Image.Alt = in.Title
	}
	if in.Address, err = a.promptAddress(current.Address); err != nil {
		return in, err
	}
	return in, nil
}
