package live

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redditlive/pkg/models"
)

func TestEncodePermissions(t *testing.T) {
	assert.Equal(t, "+all", encodePermissions(nil))
	assert.Equal(t, "", encodePermissions([]string{}))
	assert.Equal(t, "+manage,+settings", encodePermissions([]string{"manage", "settings"}))
	assert.Equal(t, "+edit", encodePermissions([]string{"edit"}))
}

const userListPayload = `{
	"kind": "UserList",
	"data": {
		"children": [
			{"name": "spez", "id": "t2_1w72", "permissions": ["all"]},
			{"name": "kn0thing", "id": "t2_1wh0", "permissions": ["manage", "settings"]}
		]
	}
}`

func TestContributorList(t *testing.T) {
	want := []*models.Contributor{
		{Name: "spez", ID: "t2_1w72", Permissions: []string{"all"}},
		{Name: "kn0thing", ID: "t2_1wh0", Permissions: []string{"manage", "settings"}},
	}

	for name, payload := range map[string]string{
		"bare":    userListPayload,
		"wrapped": "[" + userListPayload + `, {"kind": "UserList", "data": {"children": []}}]`,
	} {
		t.Run(name, func(t *testing.T) {
			client := &fakeClient{
				onGet: func(path string, params url.Values) (string, error) {
					return payload, nil
				},
			}
			thread := mustThread(t, client, "ukaeu1ik4sw5")

			contributors, err := thread.Contributor().List()
			require.NoError(t, err)
			if diff := cmp.Diff(want, contributors); diff != "" {
				t.Errorf("contributor list mismatch (-want +got):\n%s", diff)
			}
			require.Len(t, client.gets, 1)
			assert.Equal(t, "live/ukaeu1ik4sw5/contributors", client.gets[0].path)
		})
	}
}

func TestContributorInvite(t *testing.T) {
	client := &fakeClient{}
	thread := mustThread(t, client, "ukaeu1ik4sw5")

	require.NoError(t, thread.Contributor().Invite("spez", []string{"manage", "settings"}))

	require.Len(t, client.posts, 1)
	post := client.posts[0]
	assert.Equal(t, "api/live/ukaeu1ik4sw5/invite_contributor", post.path)
	assert.Equal(t, "spez", post.form.Get("name"))
	assert.Equal(t, "liveupdate_contributor_invite", post.form.Get("type"))
	assert.Equal(t, "+manage,+settings", post.form.Get("permissions"))

	require.NoError(t, thread.Contributor().Invite("kn0thing", nil))
	assert.Equal(t, "+all", client.posts[1].form.Get("permissions"))

	require.NoError(t, thread.Contributor().Invite("KeyserSosa", []string{}))
	assert.Equal(t, "", client.posts[2].form.Get("permissions"))
}

func TestContributorInviteConflict(t *testing.T) {
	client := &fakeClient{
		onPost: func(path string, form url.Values) (string, error) {
			return "", &models.APIError{
				Code:    "LIVEUPDATE_ALREADY_CONTRIBUTOR",
				Message: "they are already a contributor",
				Field:   "name",
			}
		},
	}
	thread := mustThread(t, client, "ukaeu1ik4sw5")

	err := thread.Contributor().Invite("spez", nil)
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
}

func TestContributorUpdatePermissions(t *testing.T) {
	client := &fakeClient{}
	thread := mustThread(t, client, "ukaeu1ik4sw5")

	require.NoError(t, thread.Contributor().UpdateContributor("spez", []string{"edit"}))

	require.Len(t, client.posts, 1)
	post := client.posts[0]
	assert.Equal(t, "api/live/ukaeu1ik4sw5/set_contributor_permissions", post.path)
	assert.Equal(t, "liveupdate_contributor", post.form.Get("type"))
	assert.Equal(t, "+edit", post.form.Get("permissions"))
}

func TestContributorRemoveAcceptsBothRefs(t *testing.T) {
	client := &fakeClient{}
	thread := mustThread(t, client, "ukaeu1ik4sw5")

	require.NoError(t, thread.Contributor().Remove(models.Fullname("t2_1w72")))
	require.NoError(t, thread.Contributor().Remove(&models.Redditor{Name: "kn0thing", ID: "1wh0"}))

	require.Len(t, client.posts, 2)
	assert.Equal(t, "api/live/ukaeu1ik4sw5/rm_contributor", client.posts[0].path)
	assert.Equal(t, "t2_1w72", client.posts[0].form.Get("id"))
	// a Redditor normalizes to its fullname through the same path
	assert.Equal(t, "t2_1wh0", client.posts[1].form.Get("id"))
}

func TestContributorRemoveInvite(t *testing.T) {
	client := &fakeClient{}
	thread := mustThread(t, client, "ukaeu1ik4sw5")

	require.NoError(t, thread.Contributor().RemoveInvite(models.Fullname("t2_1w72")))

	require.Len(t, client.posts, 1)
	assert.Equal(t, "api/live/ukaeu1ik4sw5/rm_contributor_invite", client.posts[0].path)
	assert.Equal(t, "t2_1w72", client.posts[0].form.Get("id"))
}

func TestContributorAcceptInviteAndLeave(t *testing.T) {
	client := &fakeClient{}
	thread := mustThread(t, client, "ukaeu1ik4sw5")

	require.NoError(t, thread.Contributor().AcceptInvite())
	require.NoError(t, thread.Contributor().Leave())

	require.Len(t, client.posts, 2)
	assert.Equal(t, "api/live/ukaeu1ik4sw5/accept_contributor_invite", client.posts[0].path)
	assert.Empty(t, client.posts[0].form)
	assert.Equal(t, "api/live/ukaeu1ik4sw5/leave_contributor", client.posts[1].path)
}
