// Package cli is the view layer of the bcard client: a REPL that renders
// session and card-collection state, issues gateway calls on user commands,
// and derives the paged, searchable card listing.
//
// Every remote failure is caught here and turned into a transient notice;
// a failed command never ends the program.
package cli
