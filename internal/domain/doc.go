// Package domain contains the entities served by the clinic services and the
// value types used to describe changes to them. It is independent of any
// storage backend or transport.
package domain
