// Package session implements the serialized mutation core of the worker
// marketplace client. A single Session owns the order lifecycle views
// (offered / mine / history), the availability configuration and the
// reconciliation of optimistic local transitions with backend pull
// results and push events.
//
// Concurrency model: one mutex serializes every mutation. Backend I/O
// happens outside the lock; its results re-enter through the lock and
// are merged idempotently with staleness checks, so commands, jobs and
// event streams can all drive the same session safely.
package session
