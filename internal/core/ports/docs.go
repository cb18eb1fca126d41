// Package ports defines the outbound contracts of the session core:
// the backend request/response gateway, the push-event subscription, the
// best-effort notifier and the settings store. Adapters implement these
// interfaces; the core never depends on a concrete transport.
package ports
