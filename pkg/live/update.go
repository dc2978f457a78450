package live

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/redditlive/pkg/models"
)

// updateFields is the decoded live update payload from a listing child.
type updateFields struct {
	ID         string         `json:"id"`
	Fullname   string         `json:"name"`
	Author     string         `json:"author"`
	Body       string         `json:"body"`
	BodyHTML   string         `json:"body_html"`
	CreatedUTC float64        `json:"created_utc"`
	Stricken   bool           `json:"stricken"`
	Embeds     []models.Embed `json:"embeds"`
}

// Update is a single entry of a live thread. Updates yielded by
// Thread.Updates are fully loaded; updates built from ids alone (via
// Thread.Update or NewUpdate) expose only their ids and back-reference,
// and other accessors return *AttributeError.
type Update struct {
	client Client
	thread *Thread
	id     string

	loaded bool
	fields *updateFields
	author *models.Redditor

	contrib *UpdateContribution
}

// NewUpdate returns a stub Update scoped to the given thread and update
// ids. Both ids are required.
func NewUpdate(client Client, threadID, updateID string) (*Update, error) {
	if threadID == "" || updateID == "" {
		return nil, ErrBadConstruction
	}
	thread, err := NewThread(client, threadID)
	if err != nil {
		return nil, err
	}
	return &Update{client: client, thread: thread, id: updateID}, nil
}

// updateFromThing decodes a listing child into a loaded Update stamped
// with the thread that requested the listing.
func updateFromThing(client Client, thread *Thread, thing *models.Thing) (*Update, error) {
	var fields updateFields
	if err := json.Unmarshal(thing.Data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode live update: %w", err)
	}
	if fields.ID == "" {
		return nil, fmt.Errorf("live update payload has no id")
	}

	u := &Update{
		client: client,
		thread: thread,
		id:     fields.ID,
		loaded: true,
		fields: &fields,
	}
	u.SetAuthor(fields.Author)
	return u, nil
}

// SetAuthor stores the author as a Redditor reference. Every path that
// sets the author goes through here, so the raw username string is never
// stored directly.
func (u *Update) SetAuthor(name string) {
	u.author = models.NewRedditor(name)
}

// ID returns the update id, known without any fetch.
func (u *Update) ID() string { return u.id }

// String returns the update id.
func (u *Update) String() string { return u.id }

// Thread returns the live thread this update belongs to.
func (u *Update) Thread() *Thread { return u.thread }

// Equal reports whether other is an Update with the same id, or a raw id
// string equal to this update's id.
func (u *Update) Equal(other any) bool {
	switch v := other.(type) {
	case *Update:
		return v != nil && v.id == u.id
	case string:
		return v == u.id
	}
	return false
}

// Hash returns a stable hash agreeing with Equal.
func (u *Update) Hash() uint64 { return identityHash(updateKind, u.id) }

// Fullname returns the globally-qualified update id, e.g.
// "LiveUpdate_7827987a-c998-11e4-a0b9-22000b6a88d2". It is derivable for
// stubs as well as loaded updates.
func (u *Update) Fullname() string {
	if u.loaded && u.fields.Fullname != "" {
		return u.fields.Fullname
	}
	return "LiveUpdate_" + u.id
}

// Author returns the update's author reference.
func (u *Update) Author() (*models.Redditor, error) {
	if u.author == nil {
		return nil, &AttributeError{Kind: updateKind, Attr: "author"}
	}
	return u.author, nil
}

func (u *Update) Body() (string, error) {
	if !u.loaded {
		return "", &AttributeError{Kind: updateKind, Attr: "body"}
	}
	return u.fields.Body, nil
}

func (u *Update) BodyHTML() (string, error) {
	if !u.loaded {
		return "", &AttributeError{Kind: updateKind, Attr: "body_html"}
	}
	return u.fields.BodyHTML, nil
}

func (u *Update) Created() (time.Time, error) {
	if !u.loaded {
		return time.Time{}, &AttributeError{Kind: updateKind, Attr: "created_utc"}
	}
	return time.Unix(int64(u.fields.CreatedUTC), 0).UTC(), nil
}

// Stricken reports whether the update's content has been struck through.
func (u *Update) Stricken() (bool, error) {
	if !u.loaded {
		return false, &AttributeError{Kind: updateKind, Attr: "stricken"}
	}
	return u.fields.Stricken, nil
}

func (u *Update) Embeds() ([]models.Embed, error) {
	if !u.loaded {
		return nil, &AttributeError{Kind: updateKind, Attr: "embeds"}
	}
	return u.fields.Embeds, nil
}

// Contrib returns the contribution helper for this update. The same
// instance is returned on every call.
func (u *Update) Contrib() *UpdateContribution {
	if u.contrib == nil {
		u.contrib = &UpdateContribution{update: u}
	}
	return u.contrib
}

// UpdateContribution performs moderation actions on a single live update.
// It holds no state beyond the back-reference.
type UpdateContribution struct {
	update *Update
}

// Remove deletes the update from its live thread.
func (c *UpdateContribution) Remove() error {
	path := fmt.Sprintf(pathDeleteUpdate, c.update.thread.ID())
	form := url.Values{"id": {c.update.Fullname()}}
	if err := c.update.client.Post(path, form, nil); err != nil {
		return fmt.Errorf("failed to remove live update %s: %w", c.update.id, err)
	}
	return nil
}

// Strike marks the update's content as stricken. The server keeps the
// update visible with strikethrough styling.
func (c *UpdateContribution) Strike() error {
	path := fmt.Sprintf(pathStrikeUpdate, c.update.thread.ID())
	form := url.Values{"id": {c.update.Fullname()}}
	if err := c.update.client.Post(path, form, nil); err != nil {
		return fmt.Errorf("failed to strike live update %s: %w", c.update.id, err)
	}
	return nil
}
