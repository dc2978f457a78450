// Package live models reddit live threads, their updates, and the
// contributor relationships attached to them. Threads are lazy: one can be
// built from a bare id with no network traffic, and its attributes are
// materialized by a single fetch on first access. All network traffic goes
// through the Client collaborator, which owns authentication, rate
// limiting, and retries.
package live

import "net/url"

// Client is the transport collaborator the model layer talks to. Paths are
// relative to the API root; the implementation supplies the base URL, auth
// headers, and retry policy. Get and Post decode the JSON response into v
// when v is non-nil.
type Client interface {
	Get(path string, params url.Values, v any) error
	Post(path string, form url.Values, v any) error
}

// reddit live API path templates, parameterized by thread id
const (
	pathAbout             = "live/%s/about"
	pathUpdates           = "live/%s"
	pathContributors      = "live/%s/contributors"
	pathAcceptInvite      = "api/live/%s/accept_contributor_invite"
	pathInvite            = "api/live/%s/invite_contributor"
	pathLeave             = "api/live/%s/leave_contributor"
	pathRemoveContributor = "api/live/%s/rm_contributor"
	pathRemoveInvite      = "api/live/%s/rm_contributor_invite"
	pathSetPermissions    = "api/live/%s/set_contributor_permissions"
	pathAddUpdate         = "api/live/%s/update"
	pathClose             = "api/live/%s/close_thread"
	pathEdit              = "api/live/%s/edit"
	pathDeleteUpdate      = "api/live/%s/delete_update"
	pathStrikeUpdate      = "api/live/%s/strike_update"
)
