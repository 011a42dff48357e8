package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Memo errors
	ErrMemoNotFound    = errors.New("memo not found")
	ErrEmptyMemo       = errors.New("memo content is empty")
	ErrCommentDisabled = errors.New("comments are disabled for this memo")

	// Comment errors
	ErrCommentNotFound  = errors.New("comment not found")
	ErrAnonymousBlocked = errors.New("anonymous comments are not allowed")

	// Mention errors
	ErrInvalidMention = errors.New("invalid mention user id")

	// Tag errors
	ErrTagNotFound   = errors.New("tag not found")
	ErrInvalidTag    = errors.New("invalid tag name")
	ErrTagNameExists = errors.New("tag name already exists")

	// Relation errors
	ErrRelationExists   = errors.New("relation already exists")
	ErrRelationNotFound = errors.New("relation not found")
	ErrLikeDisabled     = errors.New("likes are disabled")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrRegisterClosed     = errors.New("registration is closed")
	ErrDevTokenNotFound   = errors.New("api token not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Concurrency errors
	ErrConflict = errors.New("concurrent update conflict")
)
