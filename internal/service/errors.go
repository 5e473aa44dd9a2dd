package service

import "errors"

var (
	ErrMissingCode        = errors.New("authorization code is required")
	ErrNotApproved        = errors.New("content must be approved before posting")
	ErrTokenExpired       = errors.New("token expired and no refresh token available")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)
