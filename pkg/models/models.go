package models

import (
	"encoding/json"
	"fmt"
)

// Thing is the generic reddit response envelope: a kind tag plus the raw
// payload. Callers decode Data into the concrete type the kind implies.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Listing is the paginated collection envelope carried inside a Thing of
// kind "Listing". After is the continuation token for the next page; an
// empty After means the listing is exhausted.
type Listing struct {
	Children []Thing `json:"children"`
	After    string  `json:"after"`
	Before   string  `json:"before"`
}

// DecodeListing unwraps a Listing Thing into its page of children.
func DecodeListing(t *Thing) (*Listing, error) {
	if t.Kind != "Listing" {
		return nil, fmt.Errorf("expected Listing envelope, got kind %q", t.Kind)
	}

	var listing Listing
	if err := json.Unmarshal(t.Data, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	return &listing, nil
}

// Embed is an external resource embedded in a live update body.
type Embed struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// UserList is the envelope reddit uses for contributor listings. Some
// endpoints return it bare, others wrap it in a one-element JSON array;
// DecodeUserList accepts both shapes.
type UserList struct {
	Children []*Contributor `json:"children"`
}

// Contributor is one entry of a live thread's contributor list.
type Contributor struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Permissions []string `json:"permissions"`
}

// DecodeUserList normalizes a contributor-listing payload into its ordered
// list of contributors, unwrapping the outer one-element array when present.
func DecodeUserList(raw json.RawMessage) ([]*Contributor, error) {
	payload := raw
	if len(raw) > 0 && raw[0] == '[' {
		var wrapped []json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode contributor list wrapper: %w", err)
		}
		if len(wrapped) == 0 {
			return nil, fmt.Errorf("empty contributor list wrapper")
		}
		payload = wrapped[0]
	}

	var thing Thing
	if err := json.Unmarshal(payload, &thing); err != nil {
		return nil, fmt.Errorf("failed to decode contributor list: %w", err)
	}
	if thing.Kind != "UserList" {
		return nil, fmt.Errorf("expected UserList envelope, got kind %q", thing.Kind)
	}

	var list UserList
	if err := json.Unmarshal(thing.Data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode contributor list: %w", err)
	}

	return list.Children, nil
}
