// Package store defines the persistence interfaces of the application
// together with the shared error taxonomy, the list-query types and the
// transaction helper. Concrete implementations live in
// internal/platform/postgres; tests substitute in-memory fakes behind the
// same interfaces.
package store
