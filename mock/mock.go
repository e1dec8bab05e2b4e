// Package mock provides function-field test doubles for the root package
// interfaces.
package mock
