package projects

import (
	"context"

	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/pkg/errors"
)

// ConfirmFunc is a blocking yes/no prompt shown before destructive actions.
type ConfirmFunc func(prompt string) bool

// ErrAborted means the user answered no at the confirmation prompt. No
// request was issued and the list is unchanged.
var ErrAborted = errors.New("aborted")

// ErrPermissionDenied means the session's roles do not allow the action.
// The action is refused locally; nothing goes on the wire.
var ErrPermissionDenied = errors.New("You do not have permission to perform this action.")

// ListView owns the in-memory item state of a listing page: the fetched
// items, the last user-visible error, and the mutations that edit local
// state only after the server confirms.
type ListView struct {
	client  *forum.Client
	session forum.Session

	items   []forum.Project
	pending []forum.PendingProject
	errMsg  string
}

func NewListView(client *forum.Client, session forum.Session) *ListView {
	return &ListView{client: client, session: session}
}

func (v *ListView) Items() []forum.Project          { return v.items }
func (v *ListView) Pending() []forum.PendingProject { return v.pending }
func (v *ListView) ErrMsg() string                  { return v.errMsg }
func (v *ListView) Session() forum.Session          { return v.session }

// Load fetches the listing once, as on mount.
func (v *ListView) Load(ctx context.Context) error {
	items, err := v.client.ListProjects(ctx)
	if err != nil {
		v.errMsg = forum.UserMessage(err)
		return err
	}
	v.items = items
	v.errMsg = ""
	return nil
}

// LoadPending fetches the approval buffer.
func (v *ListView) LoadPending(ctx context.Context) error {
	pending, err := v.client.ListPending(ctx)
	if err != nil {
		v.errMsg = forum.UserMessage(err)
		return err
	}
	v.pending = pending
	v.errMsg = ""
	return nil
}

// Visible applies search and sort without touching the owned item state.
func (v *ListView) Visible(search string, key forum.SortKey, dir forum.SortDirection) []forum.Project {
	items := forum.Filter(v.items, search)
	if key != "" {
		items = forum.Sort(items, key, dir)
	}
	return items
}

func (v *ListView) find(key string) (forum.Project, bool) {
	for _, p := range v.items {
		if p.Key() == key {
			return p, true
		}
	}
	return forum.Project{}, false
}

// Delete removes a project. It requires the delete permission and an
// explicit confirmation; only a confirmed server success removes the item
// from local state.
func (v *ListView) Delete(ctx context.Context, key string, confirm ConfirmFunc) error {
	p, ok := v.find(key)
	if !ok {
		v.errMsg = "Project not found."
		return errors.New("project not found")
	}
	if !forum.CanDelete(v.session, p) {
		v.errMsg = ErrPermissionDenied.Error()
		return ErrPermissionDenied
	}
	if !confirm("CONFIRM DELETE. IRREVERSIBLE.") {
		return ErrAborted
	}
	if err := v.client.DeleteProject(ctx, key); err != nil {
		v.errMsg = forum.UserMessage(err)
		return err
	}
	v.removeItem(key)
	v.errMsg = ""
	return nil
}

// UpdateStatus validates the new status locally, then patches the one item
// on server success. Only the creator or an admin may change a status.
func (v *ListView) UpdateStatus(ctx context.Context, key, status string) error {
	p, ok := v.find(key)
	if !ok {
		v.errMsg = "Project not found."
		return errors.New("project not found")
	}
	if !forum.CanManage(v.session, p) {
		v.errMsg = ErrPermissionDenied.Error()
		return ErrPermissionDenied
	}
	if err := v.client.UpdateStatus(ctx, key, status); err != nil {
		v.errMsg = forum.UserMessage(err)
		return err
	}
	for i := range v.items {
		if v.items[i].Key() == key {
			v.items[i].Status = status
		}
	}
	v.errMsg = ""
	return nil
}

// Approve moves a buffered submission into the listing. Approval does not
// prompt; rejection does.
func (v *ListView) Approve(ctx context.Context, rid int) error {
	if !forum.CanModerate(v.session) {
		v.errMsg = ErrPermissionDenied.Error()
		return ErrPermissionDenied
	}
	if err := v.client.ApproveProject(ctx, rid); err != nil {
		v.errMsg = forum.UserMessage(err)
		return err
	}
	v.removePending(rid)
	v.errMsg = ""
	return nil
}

func (v *ListView) Reject(ctx context.Context, rid int, confirm ConfirmFunc) error {
	if !forum.CanModerate(v.session) {
		v.errMsg = ErrPermissionDenied.Error()
		return ErrPermissionDenied
	}
	name := ""
	for _, p := range v.pending {
		if p.RID == rid {
			name = p.Name
		}
	}
	if !confirm(`Are you sure you want to REJECT the project "` + name + `"?`) {
		return ErrAborted
	}
	if err := v.client.RejectProject(ctx, rid); err != nil {
		v.errMsg = forum.UserMessage(err)
		return err
	}
	v.removePending(rid)
	v.errMsg = ""
	return nil
}

func (v *ListView) removeItem(key string) {
	out := v.items[:0]
	for _, p := range v.items {
		if p.Key() != key {
			out = append(out, p)
		}
	}
	v.items = out
}

func (v *ListView) removePending(rid int) {
	out := v.pending[:0]
	for _, p := range v.pending {
		if p.RID != rid {
			out = append(out, p)
		}
	}
	v.pending = out
}
