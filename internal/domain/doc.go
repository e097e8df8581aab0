// Package domain contains the core business entities of the dealership
// application and their validation rules. Entities here are persistence
// agnostic; storage concerns live in the store and platform packages.
package domain
