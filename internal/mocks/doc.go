// Package mocks provides centralized in-memory store implementations for
// testing. Each mock is map-backed with the sentinel error behavior of the
// real PostgreSQL stores, and exposes function fields that individual tests
// can set to override a single operation.
//
// MockSaleStore shares state with a MockCarStore so the sale create/delete
// operations reproduce the real store's atomic car status transitions,
// including the guarded AVAILABLE-to-SOLD flip.
package mocks
