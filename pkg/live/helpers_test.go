package live

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"
)

// fakeClient is an in-memory transport collaborator. It records every call
// and serves canned JSON bodies through the onGet/onPost hooks.
type fakeClient struct {
	onGet  func(path string, params url.Values) (string, error)
	onPost func(path string, form url.Values) (string, error)

	gets  []recordedCall
	posts []recordedCall
}

type recordedCall struct {
	path   string
	params url.Values
	form   url.Values
}

func (f *fakeClient) Get(path string, params url.Values, v any) error {
	f.gets = append(f.gets, recordedCall{path: path, params: cloneValues(params)})
	if f.onGet == nil {
		return nil
	}
	body, err := f.onGet(path, params)
	if err != nil || v == nil || body == "" {
		return err
	}
	return json.Unmarshal([]byte(body), v)
}

func (f *fakeClient) Post(path string, form url.Values, v any) error {
	f.posts = append(f.posts, recordedCall{path: path, form: cloneValues(form)})
	if f.onPost == nil {
		return nil
	}
	body, err := f.onPost(path, form)
	if err != nil || v == nil || body == "" {
		return err
	}
	return json.Unmarshal([]byte(body), v)
}

func cloneValues(values url.Values) url.Values {
	clone := url.Values{}
	for key, vs := range values {
		clone[key] = append([]string(nil), vs...)
	}
	return clone
}

const aboutPayload = `{
	"kind": "LiveUpdateEvent",
	"data": {
		"id": "ukaeu1ik4sw5",
		"name": "LiveUpdateEvent_ukaeu1ik4sw5",
		"title": "Test thread",
		"description": "A thread",
		"resources": "* [link](http://example.com)",
		"nsfw": false,
		"state": "live",
		"created_utc": 1483228800,
		"viewer_count": 42,
		"viewer_count_fuzzed": true,
		"websocket_url": "wss://wss.redditmedia.com/live/ukaeu1ik4sw5"
	}
}`

func mustThread(t *testing.T, client Client, id string) *Thread {
	t.Helper()
	thread, err := NewThread(client, id)
	if err != nil {
		t.Fatalf("NewThread(%q): %v", id, err)
	}
	return thread
}

// listingPage renders a page of numbered updates plus a continuation
// token. Update ids run [start, start+count).
func listingPage(start, count int, after string) string {
	children := make([]string, 0, count)
	for i := start; i < start+count; i++ {
		children = append(children, fmt.Sprintf(`{
			"kind": "LiveUpdate",
			"data": {
				"id": "update-%04d",
				"name": "LiveUpdate_update-%04d",
				"author": "spez",
				"body": "body %d",
				"body_html": "<p>body %d</p>",
				"created_utc": %d,
				"stricken": false,
				"embeds": []
			}
		}`, i, i, i, i, 1483228800+i))
	}

	afterJSON := "null"
	if after != "" {
		afterJSON = fmt.Sprintf("%q", after)
	}
	return fmt.Sprintf(`{"kind": "Listing", "data": {"children": [%s], "after": %s, "before": null}}`,
		strings.Join(children, ","), afterJSON)
}
