package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gcet-osf/forumctl/pkg/forum"
)

// actionsColumn mirrors the per-item "⋯" menu: the cell is empty when the
// caller has neither edit nor delete rights on the item.
func actionsColumn(sess forum.Session, p forum.Project) string {
	var actions []string
	if forum.CanEdit(sess, p) {
		actions = append(actions, "edit")
	}
	if forum.CanDelete(sess, p) {
		actions = append(actions, "delete")
	}
	return strings.Join(actions, ",")
}

func printProjects(out io.Writer, items []forum.Project, sess forum.Session) {
	plural := "s"
	if len(items) == 1 {
		plural = ""
	}
	fmt.Fprintf(out, "Found %d Project%s\n", len(items), plural)
	if len(items) == 0 {
		fmt.Fprintln(out, "No Projects Found. Adjust your filters or try a different search term.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCREATOR\tSTART\tACTIONS")
	for _, p := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Key(), p.Name, p.Status, creatorOf(p), p.StartDate, actionsColumn(sess, p))
	}
	_ = w.Flush()
}

func creatorOf(p forum.Project) string {
	if p.CreatorName != "" {
		return p.CreatorName
	}
	return p.CreatorEmail
}

func printProjectDetail(out io.Writer, p forum.Project, sess forum.Session) {
	fmt.Fprintf(out, "%s [%s]\n", p.Name, strings.ToUpper(p.Status))
	if p.Description != "" {
		fmt.Fprintln(out, p.Description)
	}
	fmt.Fprintf(out, "Creator: %s\n", creatorOf(p))
	if p.StartDate != "" {
		fmt.Fprintf(out, "Start date: %s\n", p.StartDate)
	}
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(out, "Created: %s\n", p.CreatedAt.Format("02 Jan 2006"))
	}
	if a := actionsColumn(sess, p); a != "" {
		fmt.Fprintf(out, "Actions: %s\n", a)
	}
}

func printPending(out io.Writer, pending []forum.PendingProject, search string, sess forum.Session) {
	if !forum.CanModerate(sess) {
		fmt.Fprintln(out, "You do not have permission to approve or reject projects.")
	}

	shown := forum.FilterPending(pending, search)

	plural := "s"
	if len(shown) == 1 {
		plural = ""
	}
	fmt.Fprintf(out, "Found %d Pending Project%s\n", len(shown), plural)
	if len(shown) == 0 {
		fmt.Fprintln(out, "No pending projects to review.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REQUEST\tNAME\tSUBMITTED BY\tON")
	for _, p := range shown {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			p.RID, p.Name, p.CreatorName, p.SubmittedAt.Format("2 Jan 2006 15:04"))
	}
	_ = w.Flush()
}
