package live

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/redditlive/pkg/models"
)

// ContributorRelationship manages a live thread's contributor list. It is
// a stateless command object scoped to one thread; obtain it through
// Thread.Contributor.
type ContributorRelationship struct {
	thread *Thread
}

// encodePermissions renders a permission subset as reddit's form encoding.
// nil grants everything, an empty slice grants nothing.
func encodePermissions(permissions []string) string {
	if permissions == nil {
		return "+all"
	}
	parts := make([]string, 0, len(permissions))
	for _, permission := range permissions {
		parts = append(parts, "+"+permission)
	}
	return strings.Join(parts, ",")
}

// List returns the thread's current contributors in server order.
func (r *ContributorRelationship) List() ([]*models.Contributor, error) {
	var raw json.RawMessage
	if err := r.thread.client.Get(fmt.Sprintf(pathContributors, r.thread.id), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to list contributors of live thread %s: %w", r.thread.id, err)
	}
	return models.DecodeUserList(raw)
}

// AcceptInvite accepts a pending invitation to contribute to the thread.
func (r *ContributorRelationship) AcceptInvite() error {
	if err := r.thread.client.Post(fmt.Sprintf(pathAcceptInvite, r.thread.id), nil, nil); err != nil {
		return fmt.Errorf("failed to accept contributor invite: %w", err)
	}
	return nil
}

// Invite invites a redditor, by username, to contribute to the thread.
// A nil permissions slice grants full permissions, an empty slice grants
// none, anything else grants the named subset. If the invitation already
// exists the server reports a conflict, detectable with models.IsConflict.
func (r *ContributorRelationship) Invite(name string, permissions []string) error {
	form := url.Values{
		"name":        {name},
		"type":        {"liveupdate_contributor_invite"},
		"permissions": {encodePermissions(permissions)},
	}
	if err := r.thread.client.Post(fmt.Sprintf(pathInvite, r.thread.id), form, nil); err != nil {
		return fmt.Errorf("failed to invite %s: %w", name, err)
	}
	return nil
}

// UpdateContributor replaces the permission set of an existing
// contributor, identified by username. Permission encoding follows the
// same rule as Invite; permissions not named are removed.
func (r *ContributorRelationship) UpdateContributor(name string, permissions []string) error {
	form := url.Values{
		"name":        {name},
		"type":        {"liveupdate_contributor"},
		"permissions": {encodePermissions(permissions)},
	}
	if err := r.thread.client.Post(fmt.Sprintf(pathSetPermissions, r.thread.id), form, nil); err != nil {
		return fmt.Errorf("failed to update permissions of %s: %w", name, err)
	}
	return nil
}

// Remove removes a contributor, identified by fullname or Redditor.
func (r *ContributorRelationship) Remove(ref models.RedditorRef) error {
	form := url.Values{"id": {ref.ContributorID()}}
	if err := r.thread.client.Post(fmt.Sprintf(pathRemoveContributor, r.thread.id), form, nil); err != nil {
		return fmt.Errorf("failed to remove contributor %s: %w", ref.ContributorID(), err)
	}
	return nil
}

// RemoveInvite withdraws a pending invitation, identified by fullname or
// Redditor.
func (r *ContributorRelationship) RemoveInvite(ref models.RedditorRef) error {
	form := url.Values{"id": {ref.ContributorID()}}
	if err := r.thread.client.Post(fmt.Sprintf(pathRemoveInvite, r.thread.id), form, nil); err != nil {
		return fmt.Errorf("failed to remove contributor invite %s: %w", ref.ContributorID(), err)
	}
	return nil
}

// Leave abdicates the caller's own contributor position. Use with care:
// regaining it requires a fresh invitation.
func (r *ContributorRelationship) Leave() error {
	if err := r.thread.client.Post(fmt.Sprintf(pathLeave, r.thread.id), nil, nil); err != nil {
		return fmt.Errorf("failed to leave live thread %s: %w", r.thread.id, err)
	}
	return nil
}
