package forum

import (
	"sort"
	"strings"
)

// SortKey names a sortable project column.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByStartDate SortKey = "start_date"
	SortByStatus    SortKey = "status"
	SortByCreator   SortKey = "creator_name"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Filter keeps the projects whose name or description contains term,
// case-insensitively. An empty term returns the input unchanged.
func Filter(items []Project, term string) []Project {
	if term == "" {
		return items
	}
	lower := strings.ToLower(term)
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) {
			out = append(out, p)
		}
	}
	return out
}

// FilterPending keeps the buffered submissions whose name or description
// contains term, case-insensitively. An empty term returns the input
// unchanged.
func FilterPending(items []PendingProject, term string) []PendingProject {
	if term == "" {
		return items
	}
	lower := strings.ToLower(term)
	out := make([]PendingProject, 0, len(items))
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) {
			out = append(out, p)
		}
	}
	return out
}

// FilterStatus keeps projects in the given lifecycle status; "all" or empty
// is the identity.
func FilterStatus(items []Project, status string) []Project {
	if status == "" || status == "all" {
		return items
	}
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// FilterCreator keeps projects by the given creator; "all" or empty is the
// identity.
func FilterCreator(items []Project, creator string) []Project {
	if creator == "" || creator == "all" {
		return items
	}
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if p.CreatorName == creator {
			out = append(out, p)
		}
	}
	return out
}

// Creators returns the distinct creator names in the item set, sorted.
func Creators(items []Project) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(items))
	for _, p := range items {
		if _, ok := seen[p.CreatorName]; ok || p.CreatorName == "" {
			continue
		}
		seen[p.CreatorName] = struct{}{}
		out = append(out, p.CreatorName)
	}
	sort.Strings(out)
	return out
}

func sortValue(p Project, key SortKey) string {
	switch key {
	case SortByStartDate:
		return p.StartDate
	case SortByStatus:
		return p.Status
	case SortByCreator:
		return p.CreatorName
	default:
		return p.Name
	}
}

// Sort orders a copy of items by key. String comparison is
// case-insensitive and the sort is stable: ties keep their relative order.
func Sort(items []Project, key SortKey, dir SortDirection) []Project {
	out := append([]Project(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(sortValue(out[i], key))
		b := strings.ToLower(sortValue(out[j], key))
		if dir == Descending {
			return a > b
		}
		return a < b
	})
	return out
}

// The enabled state of every mutating action is a pure function of the
// session and the item's owner. Nothing else may decide it.

// IsCreator reports whether the session owns the project. The backend
// stores the creator's email; some pages matched it against the username.
func IsCreator(s Session, p Project) bool {
	if p.CreatorEmail != "" {
		return (s.Email != "" && s.Email == p.CreatorEmail) ||
			(s.Username != "" && s.Username == p.CreatorEmail)
	}
	return s.Username != "" && s.Username == p.CreatorName
}

func CanEdit(s Session, p Project) bool {
	return IsCreator(s, p)
}

func CanDelete(s Session, p Project) bool {
	return IsCreator(s, p) || s.IsSudo
}

// CanManage reports whether the session may change a project's lifecycle
// status: the creator or an admin.
func CanManage(s Session, p Project) bool {
	return IsCreator(s, p) || s.IsAdmin || s.IsSudo
}

// CanModerate reports whether the session may approve or reject pending
// submissions.
func CanModerate(s Session) bool {
	return s.IsAdmin || s.IsSudo
}
