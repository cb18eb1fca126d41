// Package wire holds the JSON order snapshot format shared by the
// backend-facing adapters.
package wire
