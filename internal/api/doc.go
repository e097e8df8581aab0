// Package api contains the HTTP handlers of the dealership API. Handlers
// decode and validate requests, delegate to stores or services, and map the
// resulting errors onto the HTTP status taxonomy.
package api
