// Package domain defines the accounts and tasks the service manages, the
// value types used to list tasks, and their validation rules. It has no
// knowledge of storage or transport.
package domain
