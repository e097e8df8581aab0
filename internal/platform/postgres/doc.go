// Package postgres contains the PostgreSQL implementations of the store
// interfaces. Stores accept a store.DBTX so they run against either a
// database connection or a transaction; the sale store additionally owns the
// two-statement atomic units that keep sales and car statuses consistent.
package postgres
