package user

import "errors"

var (
	ErrReservedUsername = errors.New("username is reserved")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrUsernameTaken    = errors.New("user with this username already exists")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidPassword  = errors.New("current password is incorrect")

	ErrUserNotFound     = errors.New("user not found")
	ErrSelfFollow       = errors.New("cannot subscribe to yourself")
	ErrAlreadyFollowing = errors.New("already subscribed to this author")
	ErrNotFollowing     = errors.New("not subscribed to this author")
)
