// Package ports holds the interfaces the layers talk through. HTTP handlers
// depend on the service ports, which the application layer implements; the
// application layer depends on the client and mailer ports, which the
// outbound adapters implement. Nothing here imports an adapter.
package ports
