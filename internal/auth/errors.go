package auth

import "errors"

var (
	ErrCollectionNotFound = errors.New("collection not found")  // missing or not auth-capable, deliberately conflated
	ErrUnknownField       = errors.New("unknown field")         // named field not declared by the collection schema
	ErrUnauthorized       = errors.New("authentication failed") // identity or address check failed, low-information
	ErrTokenIssuance      = errors.New("token issuance failed") // collaborator failure after successful authorization
	ErrAdminCredentials   = errors.New("invalid admin credentials")
)
