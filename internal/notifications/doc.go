// Package notifications pushes conversion lifecycle events to an ntfy topic.
// When no topic is configured every notification is a no-op, so callers never
// need to branch on whether notifications are enabled.
package notifications
