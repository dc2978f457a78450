package live

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/redditlive/pkg/models"
)

// threadFields is the decoded live/{id}/about payload.
type threadFields struct {
	ID                string         `json:"id"`
	Fullname          string         `json:"name"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Resources         string         `json:"resources"`
	NSFW              bool           `json:"nsfw"`
	State             string         `json:"state"`
	CreatedUTC        float64        `json:"created_utc"`
	ViewerCount       int            `json:"viewer_count"`
	ViewerCountFuzzed bool           `json:"viewer_count_fuzzed"`
	WebsocketURL      string         `json:"websocket_url"`
	IconImg           string         `json:"icon_img"`
	TotalViews        map[string]any `json:"total_views,omitempty"`
}

// Thread is a reddit live thread. A Thread built with NewThread starts as
// a stub holding only its id; the first accessor that needs anything else
// issues exactly one fetch of the about endpoint and fills every field at
// once. Threads decoded from listing payloads start loaded and never fetch
// unless attributes are reset.
//
// The id never changes after construction. Two Threads with the same id
// are interchangeable regardless of how they were built.
type Thread struct {
	client Client
	id     string
	fields *threadFields
	stale  map[string]bool

	contrib     *ThreadContribution
	contributor *ContributorRelationship
}

// NewThread returns a stub Thread for the given id. No request is made
// until an attribute beyond the id is accessed.
func NewThread(client Client, id string) (*Thread, error) {
	return newThread(client, id, nil)
}

// newThread builds a Thread from exactly one of id or payload.
func newThread(client Client, id string, data json.RawMessage) (*Thread, error) {
	if (id == "") == (len(data) == 0) {
		return nil, ErrBadConstruction
	}

	t := &Thread{client: client, id: id}
	if len(data) != 0 {
		var fields threadFields
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode live thread payload: %w", err)
		}
		if fields.ID == "" {
			return nil, fmt.Errorf("live thread payload has no id")
		}
		t.id = fields.ID
		t.fields = &fields
	}
	return t, nil
}

// resolve fetches the full about payload and swaps in the new field set.
// On failure the previous state is left untouched.
func (t *Thread) resolve() error {
	var thing models.Thing
	if err := t.client.Get(fmt.Sprintf(pathAbout, t.id), nil, &thing); err != nil {
		return fmt.Errorf("failed to resolve live thread %s: %w", t.id, err)
	}

	var fields threadFields
	if err := json.Unmarshal(thing.Data, &fields); err != nil {
		return fmt.Errorf("failed to decode live thread %s: %w", t.id, err)
	}

	t.fields = &fields
	t.stale = nil
	return nil
}

// need returns the field set, resolving first when the named attribute is
// not populated or has been reset.
func (t *Thread) need(name string) (*threadFields, error) {
	if t.fields == nil || t.stale[name] {
		if err := t.resolve(); err != nil {
			return nil, err
		}
	}
	return t.fields, nil
}

// ResetAttributes forgets the named attributes (payload field names, e.g.
// "title"). The next access to any of them re-fetches the thread.
func (t *Thread) ResetAttributes(names ...string) {
	if t.fields == nil {
		return
	}
	if t.stale == nil {
		t.stale = make(map[string]bool, len(names))
	}
	for _, name := range names {
		t.stale[name] = true
	}
}

// ID returns the thread id, known without any fetch.
func (t *Thread) ID() string { return t.id }

// String returns the thread id.
func (t *Thread) String() string { return t.id }

// Equal reports whether other is a Thread with the same id, or a raw id
// string equal to this thread's id. The comparison is case sensitive.
func (t *Thread) Equal(other any) bool {
	switch v := other.(type) {
	case *Thread:
		return v != nil && v.id == t.id
	case string:
		return v == t.id
	}
	return false
}

// Hash returns a stable hash agreeing with Equal.
func (t *Thread) Hash() uint64 { return identityHash(threadKind, t.id) }

func (t *Thread) Fullname() (string, error) {
	f, err := t.need("name")
	if err != nil {
		return "", err
	}
	return f.Fullname, nil
}

func (t *Thread) Title() (string, error) {
	f, err := t.need("title")
	if err != nil {
		return "", err
	}
	return f.Title, nil
}

func (t *Thread) Description() (string, error) {
	f, err := t.need("description")
	if err != nil {
		return "", err
	}
	return f.Description, nil
}

func (t *Thread) Resources() (string, error) {
	f, err := t.need("resources")
	if err != nil {
		return "", err
	}
	return f.Resources, nil
}

func (t *Thread) NSFW() (bool, error) {
	f, err := t.need("nsfw")
	if err != nil {
		return false, err
	}
	return f.NSFW, nil
}

// State is "live" while the thread is open and "complete" once closed.
func (t *Thread) State() (string, error) {
	f, err := t.need("state")
	if err != nil {
		return "", err
	}
	return f.State, nil
}

func (t *Thread) Created() (time.Time, error) {
	f, err := t.need("created_utc")
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(f.CreatedUTC), 0).UTC(), nil
}

func (t *Thread) ViewerCount() (int, error) {
	f, err := t.need("viewer_count")
	if err != nil {
		return 0, err
	}
	return f.ViewerCount, nil
}

func (t *Thread) ViewerCountFuzzed() (bool, error) {
	f, err := t.need("viewer_count_fuzzed")
	if err != nil {
		return false, err
	}
	return f.ViewerCountFuzzed, nil
}

// WebsocketURL returns the live websocket feed address. This client does
// not consume the feed; the value is exposed as data only.
func (t *Thread) WebsocketURL() (string, error) {
	f, err := t.need("websocket_url")
	if err != nil {
		return "", err
	}
	return f.WebsocketURL, nil
}

// Contrib returns the contribution helper for this thread. The same
// instance is returned on every call.
func (t *Thread) Contrib() *ThreadContribution {
	if t.contrib == nil {
		t.contrib = &ThreadContribution{thread: t}
	}
	return t.contrib
}

// Contributor returns the contributor-relationship helper for this
// thread. The same instance is returned on every call.
func (t *Thread) Contributor() *ContributorRelationship {
	if t.contributor == nil {
		t.contributor = &ContributorRelationship{thread: t}
	}
	return t.contributor
}

// Update returns a stub Update scoped to this thread and the given update
// id. No request is made, and none ever will be for this instance:
// accessors beyond the scoping ids return *AttributeError. See
// AttributeError for why.
func (t *Thread) Update(updateID string) *Update {
	return &Update{client: t.client, thread: t, id: updateID}
}
