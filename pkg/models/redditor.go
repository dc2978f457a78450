package models

import "strings"

// redditor fullnames carry the account kind prefix
const redditorKindPrefix = "t2_"

// Redditor is a reference to a reddit account. Live update payloads carry
// the author as a bare username; the model layer wraps it into a Redditor
// so callers always see the same reference type.
type Redditor struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Permissions []string `json:"permissions,omitempty"`
}

// NewRedditor returns a Redditor reference for a bare username.
func NewRedditor(name string) *Redditor {
	return &Redditor{Name: name}
}

// String returns the redditor's username.
func (r *Redditor) String() string {
	return r.Name
}

// Fullname returns the globally-qualified account identifier, e.g.
// "t2_1w72". IDs decoded from contributor listings may or may not already
// carry the prefix.
func (r *Redditor) Fullname() string {
	if strings.HasPrefix(r.ID, redditorKindPrefix) {
		return r.ID
	}
	return redditorKindPrefix + r.ID
}

// ContributorID satisfies RedditorRef.
func (r *Redditor) ContributorID() string {
	return r.Fullname()
}

// RedditorRef identifies a redditor in mutation request bodies. It is
// satisfied by *Redditor and by Fullname, so actions that accept "a
// redditor or a raw fullname" normalize both through one path.
type RedditorRef interface {
	// ContributorID returns the fullname used in request bodies.
	ContributorID() string
}

// Fullname is a raw globally-qualified identifier, e.g. "t2_1w72".
type Fullname string

// ContributorID satisfies RedditorRef.
func (f Fullname) ContributorID() string {
	return string(f)
}
