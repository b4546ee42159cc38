// Package mocks provides function-field test doubles for the store, auth and
// service interfaces. Each mock calls its XxxFn field when set and otherwise
// falls back to a simple default (in-memory storage for the stores).
package mocks
