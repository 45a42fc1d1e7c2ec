// Package api is the remote data gateway for the BCard directory service.
//
// It contains typed request functions against the REST endpoints for users
// and cards, and nothing else: no retries, no caching, no local state beyond
// the default bearer credential. Failures come back as a tagged *Error so
// callers can match on a closed set of kinds.
package api
