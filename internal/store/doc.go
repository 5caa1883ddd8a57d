// Package store defines interfaces for data persistence operations.
// These interfaces keep the HTTP handlers independent of whether records live
// in PostgreSQL or in a static fixture.
package store
