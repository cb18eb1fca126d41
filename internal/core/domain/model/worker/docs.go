// Package worker holds the Availability aggregate: the worker's online
// flag, selected service categories and price range. The availability
// controller in the session layer owns the single instance; no other
// component mutates it.
package worker
