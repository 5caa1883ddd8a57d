// Package fixture serves entities from static JSON data instead of a database.
//
// The data is read once at startup, either from the files embedded in the
// binary or from a path supplied in configuration. Stores in this package
// never mutate that data: writes compute and return what the result would be
// without persisting it.
package fixture
