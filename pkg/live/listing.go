package live

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/redditlive/pkg/models"
)

// pageSize is the server-side maximum batch size per listing request.
const pageSize = 100

// ListingOptions configures an update stream.
type ListingOptions struct {
	// Limit caps the number of updates yielded. Zero or negative means
	// exhaust every page.
	Limit int
	// Params are extra query parameters passed through on every page
	// request.
	Params url.Values
}

// Updates returns a lazy stream over this thread's updates, newest first,
// in server order. Each call returns a fresh, independent stream; an
// advanced stream cannot be rewound.
func (t *Thread) Updates(opts ListingOptions) *UpdateStream {
	return &UpdateStream{
		client: t.client,
		thread: t,
		path:   fmt.Sprintf(pathUpdates, t.id),
		opts:   opts,
	}
}

// UpdateStream iterates a paginated update listing one item at a time,
// requesting successive pages as needed:
//
//	stream := thread.Updates(live.ListingOptions{})
//	for stream.Next() {
//		fmt.Println(stream.Update().ID())
//	}
//	if err := stream.Err(); err != nil { ... }
//
// A call to Next issues at most one request; page boundaries are invisible
// to the caller. Every yielded update carries the requesting thread as its
// back-reference.
type UpdateStream struct {
	client Client
	thread *Thread
	path   string
	opts   ListingOptions

	after   string
	batch   []*Update
	pos     int
	cur     *Update
	yielded int
	done    bool
	err     error
}

// Next advances to the next update. It returns false when the listing is
// exhausted, the limit is reached, or an error occurred.
func (s *UpdateStream) Next() bool {
	if s.err != nil {
		return false
	}
	if s.opts.Limit > 0 && s.yielded >= s.opts.Limit {
		return false
	}
	if s.pos >= len(s.batch) {
		if s.done {
			return false
		}
		if err := s.fetchPage(); err != nil {
			s.err = err
			return false
		}
		if len(s.batch) == 0 {
			return false
		}
	}

	s.cur = s.batch[s.pos]
	s.pos++
	s.yielded++
	return true
}

// Update returns the update Next advanced to.
func (s *UpdateStream) Update() *Update { return s.cur }

// Err returns the first error the stream ran into, if any.
func (s *UpdateStream) Err() error { return s.err }

func (s *UpdateStream) fetchPage() error {
	params := url.Values{}
	for key, values := range s.opts.Params {
		params[key] = values
	}

	size := pageSize
	if s.opts.Limit > 0 {
		if remaining := s.opts.Limit - s.yielded; remaining < size {
			size = remaining
		}
	}
	params.Set("limit", strconv.Itoa(size))
	if s.after != "" {
		params.Set("after", s.after)
	}

	var thing models.Thing
	if err := s.client.Get(s.path, params, &thing); err != nil {
		return fmt.Errorf("failed to fetch updates for live thread %s: %w", s.thread.ID(), err)
	}
	listing, err := models.DecodeListing(&thing)
	if err != nil {
		return err
	}

	batch := make([]*Update, 0, len(listing.Children))
	for i := range listing.Children {
		update, err := updateFromThing(s.client, s.thread, &listing.Children[i])
		if err != nil {
			return err
		}
		batch = append(batch, update)
	}

	s.batch = batch
	s.pos = 0
	s.after = listing.After
	if s.after == "" {
		s.done = true
	}
	return nil
}
