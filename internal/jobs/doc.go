// Package jobs runs recurring background work on a cron schedule.
//
// The Scheduler wraps robfig/cron with structured logging, panic recovery and
// overlap protection. GuestCleanupJob deactivates guest accounts once their
// TTL has elapsed.
package jobs
