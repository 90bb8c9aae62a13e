package forum_test

import (
	"testing"

	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []forum.Project {
	return []forum.Project{
		{PID: 1, Name: "Forum Backend API", Description: "Go backend for project submission", CreatorName: "Jaya", Status: "in_progress", StartDate: "2024-10-01"},
		{PID: 2, Name: "User Authentication Module", Description: "Secure sign-up and login", CreatorName: "Advaith", Status: "completed", StartDate: "2024-09-15"},
		{PID: 3, Name: "Submission Form UI", Description: "React form for buffer projects", CreatorName: "Jaya", Status: "upcoming", StartDate: "2024-11-20"},
		{PID: 4, Name: "database schema", Description: "Reviewing SQL table definitions", CreatorName: "Hruthik", Status: "in_progress", StartDate: "2024-10-25"},
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()
	items := sampleProjects()

	t.Run("EmptyTermIsIdentity", func(t *testing.T) {
		got := forum.Filter(items, "")
		assert.Equal(t, items, got)
	})

	t.Run("MatchesNameCaseInsensitive", func(t *testing.T) {
		got := forum.Filter(items, "AUTH")
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].PID)
	})

	t.Run("MatchesDescription", func(t *testing.T) {
		got := forum.Filter(items, "sql table")
		require.Len(t, got, 1)
		assert.Equal(t, 4, got[0].PID)
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		got := forum.Filter(items, "o")
		var ids []int
		for _, p := range got {
			ids = append(ids, p.PID)
		}
		assert.IsNonDecreasing(t, ids)
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, forum.Filter(items, "zzz"))
	})
}

func TestFilterStatusAndCreator(t *testing.T) {
	t.Parallel()
	items := sampleProjects()

	assert.Equal(t, items, forum.FilterStatus(items, "all"))
	assert.Equal(t, items, forum.FilterStatus(items, ""))
	assert.Len(t, forum.FilterStatus(items, "in_progress"), 2)

	assert.Equal(t, items, forum.FilterCreator(items, "all"))
	assert.Len(t, forum.FilterCreator(items, "Jaya"), 2)

	assert.Equal(t, []string{"Advaith", "Hruthik", "Jaya"}, forum.Creators(items))
}

func TestFilterPending(t *testing.T) {
	t.Parallel()

	pending := []forum.PendingProject{
		{RID: 1, Name: "Forum Backend API", Description: "Go backend"},
		{RID: 2, Name: "Submission Form UI", Description: "React form"},
	}

	assert.Equal(t, pending, forum.FilterPending(pending, ""))

	got := forum.FilterPending(pending, "REACT")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].RID)

	assert.Empty(t, forum.FilterPending(pending, "zzz"))
}

func TestSort(t *testing.T) {
	t.Parallel()
	items := sampleProjects()

	t.Run("NameAscendingCaseInsensitive", func(t *testing.T) {
		got := forum.Sort(items, forum.SortByName, forum.Ascending)
		var names []string
		for _, p := range got {
			names = append(names, p.Name)
		}
		// "database schema" sorts between "Forum..." under case-folding.
		assert.Equal(t, []string{
			"database schema",
			"Forum Backend API",
			"Submission Form UI",
			"User Authentication Module",
		}, names)
	})

	t.Run("DescendingReversesNonTied", func(t *testing.T) {
		asc := forum.Sort(items, forum.SortByStartDate, forum.Ascending)
		desc := forum.Sort(items, forum.SortByStartDate, forum.Descending)
		for i := range asc {
			assert.Equal(t, asc[i].PID, desc[len(desc)-1-i].PID)
		}
	})

	t.Run("StableOnTies", func(t *testing.T) {
		got := forum.Sort(items, forum.SortByStatus, forum.Ascending)
		// Both in_progress items tie; PID 1 came before PID 4 and must stay so.
		var tied []int
		for _, p := range got {
			if p.Status == "in_progress" {
				tied = append(tied, p.PID)
			}
		}
		assert.Equal(t, []int{1, 4}, tied)
	})

	t.Run("InputUntouched", func(t *testing.T) {
		before := sampleProjects()
		_ = forum.Sort(before, forum.SortByName, forum.Descending)
		assert.Equal(t, sampleProjects(), before)
	})
}

func TestPermissions(t *testing.T) {
	t.Parallel()

	owner := forum.Session{Username: "alice", Email: "alice@example.com"}
	sudo := forum.Session{Username: "root", Email: "root@example.com", IsSudo: true}
	admin := forum.Session{Username: "adm", IsAdmin: true}
	nobody := forum.Session{}

	mine := forum.Project{ID: "p1", CreatorEmail: "alice@example.com"}
	theirs := forum.Project{ID: "p2", CreatorEmail: "bob@example.com"}

	assert.True(t, forum.CanEdit(owner, mine))
	assert.False(t, forum.CanEdit(owner, theirs))
	assert.False(t, forum.CanEdit(sudo, theirs))

	assert.True(t, forum.CanDelete(owner, mine))
	assert.True(t, forum.CanDelete(sudo, theirs))
	assert.False(t, forum.CanDelete(nobody, theirs))

	assert.True(t, forum.CanManage(owner, mine))
	assert.True(t, forum.CanManage(admin, theirs))
	assert.True(t, forum.CanManage(sudo, theirs))
	assert.False(t, forum.CanManage(owner, theirs))
	assert.False(t, forum.CanManage(nobody, mine))

	assert.True(t, forum.CanModerate(admin))
	assert.True(t, forum.CanModerate(sudo))
	assert.False(t, forum.CanModerate(owner))
	assert.False(t, forum.CanModerate(nobody))
}

func TestGlobalRole(t *testing.T) {
	t.Parallel()

	assert.Equal(t, forum.RoleSuperadmin, forum.Session{Username: "r", IsSudo: true}.GlobalRole())
	assert.Equal(t, forum.RoleAdmin, forum.Session{Username: "a", IsAdmin: true}.GlobalRole())
	assert.Equal(t, forum.RoleUser, forum.Session{Username: "u"}.GlobalRole())
	assert.Equal(t, forum.RoleNone, forum.Session{}.GlobalRole())
}
