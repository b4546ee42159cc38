// Package service contains the application use cases: authentication and
// guest sessions (AuthService), task management scoped to the calling
// account (TaskService) and account profile operations (UserService).
//
// Services receive their collaborators through constructors, depend only on
// the store and auth interfaces, and translate store errors into the
// sentinels in errors.go.
package service
