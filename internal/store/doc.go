// Package store defines the persistence contracts for accounts and tasks.
// Implementations enforce active-only scoping and task ownership in their
// queries, so callers never filter rows themselves.
package store
