// Package service contains use cases that combine more than one data source.
//
// Handlers that only read or write a single store call it directly; the
// service layer exists for operations such as the product catalog view, which
// merges local products with a best-effort count from users-api.
package service
