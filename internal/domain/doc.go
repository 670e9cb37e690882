// Package domain defines the core business entities and errors for the
// vocabulary memorization system: word records, definition payloads, and
// the recall quality scale.
package domain
