package internal

import (
	"context"
	"errors"
	"fmt"
)

// ErrCheckUnsupported indicates a datasource type that can be declared and
// validated but has no connectivity checker.
var ErrCheckUnsupported = errors.New("connection checks are not supported")

// Checker tests that a configured datasource is reachable and that its
// declared assets exist.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// UnsupportedChecker stands in for datasource types without a backend
// integration. Check always fails with ErrCheckUnsupported.
type UnsupportedChecker struct {
	Datasource string
	Type       string
}

func (u UnsupportedChecker) Name() string {
	return u.Datasource
}

func (u UnsupportedChecker) Check(ctx context.Context) error {
	return fmt.Errorf("%w for datasource type %q", ErrCheckUnsupported, u.Type)
}
