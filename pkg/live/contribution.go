package live

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/redditlive/pkg/models"
)

// ThreadContribution posts content and settings changes to a live thread.
// It is a stateless command object scoped to one thread; obtain it through
// Thread.Contrib.
type ThreadContribution struct {
	thread *Thread
}

// Add posts a new update with the given markdown body.
func (c *ThreadContribution) Add(body string) error {
	form := url.Values{"body": {body}}
	if err := c.thread.client.Post(fmt.Sprintf(pathAddUpdate, c.thread.id), form, nil); err != nil {
		return fmt.Errorf("failed to add update to live thread %s: %w", c.thread.id, err)
	}
	return nil
}

// Close closes the live thread permanently. The server does not allow
// reopening and no local guard is applied.
func (c *ThreadContribution) Close() error {
	if err := c.thread.client.Post(fmt.Sprintf(pathClose, c.thread.id), nil, nil); err != nil {
		return fmt.Errorf("failed to close live thread %s: %w", c.thread.id, err)
	}
	return nil
}

// ThreadSettings selects which live thread settings to change. A nil field
// keeps the server's current value. Extra carries settings introduced by
// reddit after this client was written, with the same nil-keeps-current
// rule per entry.
type ThreadSettings struct {
	Title       *string
	Description *string
	NSFW        *bool
	Resources   *string
	Extra       map[string]*string
}

// UpdateSettings edits the thread's settings. Fields left nil are filled
// from a fresh read of the thread's current state, never from this
// process's cached copy, and the full merged set is submitted in one post.
// When every field (including every Extra entry) is nil the call is a
// no-op with no network effect. After a successful post, the cached
// attributes for the explicitly-provided field names are reset so the next
// access re-fetches them.
func (c *ThreadContribution) UpdateSettings(settings ThreadSettings) error {
	submitted := map[string]string{}
	pending := []string{}

	keep := func(name string, value *string) {
		if value != nil {
			submitted[name] = *value
		} else {
			pending = append(pending, name)
		}
	}
	keep("title", settings.Title)
	keep("description", settings.Description)
	keep("resources", settings.Resources)
	if settings.NSFW != nil {
		submitted["nsfw"] = strconv.FormatBool(*settings.NSFW)
	} else {
		pending = append(pending, "nsfw")
	}
	for name, value := range settings.Extra {
		keep(name, value)
	}

	if len(submitted) == 0 {
		return nil
	}

	// fresh read of the current settings, bypassing the cached thread
	var thing models.Thing
	if err := c.thread.client.Get(fmt.Sprintf(pathAbout, c.thread.id), nil, &thing); err != nil {
		return fmt.Errorf("failed to read current settings of live thread %s: %w", c.thread.id, err)
	}
	var current map[string]any
	if err := json.Unmarshal(thing.Data, &current); err != nil {
		return fmt.Errorf("failed to decode current settings of live thread %s: %w", c.thread.id, err)
	}

	form := url.Values{}
	explicit := make([]string, 0, len(submitted))
	for name, value := range submitted {
		form.Set(name, value)
		explicit = append(explicit, name)
	}
	for _, name := range pending {
		form.Set(name, settingValue(current[name]))
	}

	if err := c.thread.client.Post(fmt.Sprintf(pathEdit, c.thread.id), form, nil); err != nil {
		return fmt.Errorf("failed to update settings of live thread %s: %w", c.thread.id, err)
	}

	c.thread.ResetAttributes(explicit...)
	return nil
}

// settingValue renders a decoded settings value for form submission.
func settingValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
