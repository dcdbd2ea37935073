package repository

import "errors"

// ErrDuplicate is returned by Create/Update when a store-level uniqueness
// constraint rejects the write (sibling folder name, document title in
// folder, username/email). The constraint is what closes the check-then-act
// race that the service-level pre-checks leave open.
var ErrDuplicate = errors.New("duplicate record")
