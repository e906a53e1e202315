package config

import (
	"errors"
	"fmt"
)

// Error is a validation failure tied to a location in the document. It
// carries the datasource name, the asset name when the failure is below the
// asset level, and the offending field.
type Error struct {
	Datasource string
	Asset      string
	Field      string
	Reason     string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("datasource %q", e.Datasource)
	if e.Asset != "" {
		msg += fmt.Sprintf(": asset %q", e.Asset)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	return msg + ": " + e.Reason
}

// annotate fills in the document location on errors raised below the level
// that knows it, e.g. a sort key that fails to unmarshal.
func annotate(err error, datasource, asset string) error {
	var verr *Error
	if errors.As(err, &verr) {
		if verr.Datasource == "" {
			verr.Datasource = datasource
		}
		if verr.Asset == "" {
			verr.Asset = asset
		}
		return verr
	}
	return &Error{
		Datasource: datasource,
		Asset:      asset,
		Reason:     err.Error(),
	}
}
