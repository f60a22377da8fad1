package repository

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidVoteType  = errors.New("invalid vote type")
)
