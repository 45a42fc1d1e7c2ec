// Package guard gates role-restricted views on the client. It is a UX
// affordance only: it keeps unauthorized views from rendering, while real
// authorization is enforced by the server on every privileged call. Never
// treat its verdicts as a security boundary.
package guard

import "github.com/bcardapp/bcard/internal/client/session"

// Capability is what a view requires before it may render.
type Capability int

const (
	None Capability = iota
	Authenticated
	Business
	Admin
)

// Verdict is what should happen to the attempted navigation.
type Verdict int

const (
	Allow Verdict = iota
	RedirectSignIn
	RedirectHome
)

// Decision pairs a verdict with the notice shown to the user when the
// navigation is turned away.
type Decision struct {
	Verdict Verdict
	Notice  string
}

// Check evaluates the session against the required capability.
// Anonymous sessions are sent to sign-in for any requirement above None;
// authenticated sessions missing the business or admin flag are sent home.
func Check(s session.Session, c Capability) Decision {
	if c == None {
		return Decision{Verdict: Allow}
	}
	if !s.Authenticated {
		return Decision{Verdict: RedirectSignIn, Notice: "Please sign in to access this page"}
	}
	switch c {
	case Business:
		if !s.IsBusiness {
			return Decision{Verdict: RedirectHome, Notice: "This page is available only for business accounts"}
		}
	case Admin:
		if !s.IsAdmin {
			return Decision{Verdict: RedirectHome, Notice: "This page is available only for administrators"}
		}
	}
	return Decision{Verdict: Allow}
}
