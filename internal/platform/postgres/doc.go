// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It owns the
// connection pool, the schema bootstrap, the generic statement adapter and the
// mapping of driver errors to store errors.
package postgres
