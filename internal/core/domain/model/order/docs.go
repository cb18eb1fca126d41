// Package order provides the domain model for marketplace orders as seen
// by a single worker. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: the aggregate root managing identity, offer attributes,
//     requester contacts and the lifecycle
//   - Status: a state machine that enforces valid status transitions and
//     exposes a monotonic rank used by reconciliation to discard stale
//     snapshots
//
// Key business rules:
//   - Lifecycle: offered -> accepted -> approved -> completed, with
//     rejected reachable from any non-terminal state
//   - Acceptance is optimistic; approval comes only from an authoritative
//     backend update and is the point where requester contacts appear
//   - Requester contacts are populated exactly when the order is approved
//     or completed
//   - Accepted orders may roll back to offered (backend rejection or
//     confirmation timeout); no other backward edge exists
//
// The package follows Domain-Driven Design principles, providing rich
// domain behavior, encapsulation, and validation to ensure business rules
// are enforced.
package order
