// Package store defines the persistence interface for word records and its
// file-backed and SQLite-backed implementations.
package store
