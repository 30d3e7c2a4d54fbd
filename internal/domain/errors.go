package domain

import "errors"

var (
	ErrDB              = errors.New("database error")
	ErrDecode          = errors.New("decode error")
	ErrNotFound        = errors.New("not found")
	ErrRouteNotMatched = errors.New("route not matched")
)
