package application

import "errors"

// Sentinel outcomes shared by the application services. Handlers translate
// these to status codes; services never expose storage errors directly for
// expected conditions.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWrongPassword      = errors.New("current password incorrect")
	ErrBadCategory        = errors.New("unknown category")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrThreadLocked       = errors.New("thread is locked")
	ErrSelfRating         = errors.New("cannot rate yourself")
	ErrSelfConversation   = errors.New("cannot start a conversation with yourself")
)
