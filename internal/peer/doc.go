// Package peer calls sibling services on a best-effort basis.
//
// Calls never return an error to the caller. They return a Result that is
// either available with data or unavailable with the reason, and the caller
// decides what default stands in for a missing peer.
package peer
