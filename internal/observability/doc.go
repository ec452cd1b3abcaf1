// Package observability records study activity as JSON Lines events and
// derives metrics and alerts from the event log and the current plan.
package observability
