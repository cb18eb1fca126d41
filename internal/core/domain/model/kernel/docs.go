// Package kernel contains shared value objects used across the domain
// model: UUID identity and the Price/PriceRange types the availability
// configuration and offer matching are built on.
//
// All types in this package are immutable value objects constructed via
// factory functions that enforce their invariants; zero values fail
// validation.
package kernel
