package live

import (
	"errors"
	"fmt"
)

// ErrBadConstruction is returned when a resource constructor is given both
// an id and a payload, or neither. It is reported synchronously, before
// any network activity.
var ErrBadConstruction = errors.New("exactly one of id and payload must be provided")

// AttributeError reports access to an attribute that has not been loaded
// on a resource that cannot fetch it on demand.
//
// Live updates are never fetched individually: an Update obtained through
// Thread.Update or NewUpdate only knows its scoping ids, and accessors for
// anything else return this error instead of issuing a request. Updates
// yielded by Thread.Updates arrive fully loaded and never produce it. The
// asymmetry mirrors the server API, which has no single-update endpoint.
type AttributeError struct {
	Kind string
	Attr string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s attribute %q has not been loaded", e.Kind, e.Attr)
}
