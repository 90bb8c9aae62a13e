package main

import (
	"fmt"
	"strconv"

	"github.com/gcet-osf/forumctl/modules/projects"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newPendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Review buffered project submissions",
	}
	cmd.AddCommand(newPendingListCmd())
	cmd.AddCommand(newPendingApproveCmd())
	cmd.AddCommand(newPendingRejectCmd())
	return cmd
}

func pendingView(cmd *cobra.Command) (*projects.ListView, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	sess := a.client.ResolveSession(cmd.Context())
	view := projects.NewListView(a.client, sess)
	if err := view.LoadPending(cmd.Context()); err != nil {
		return nil, err
	}
	return view, nil
}

func newPendingListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions awaiting review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := pendingView(cmd)
			if err != nil {
				return err
			}
			printPending(cmd.OutOrStdout(), view.Pending(), search, view.Session())
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "substring match on name or description")
	return cmd
}

func newPendingApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <request-id>",
		Short: "Approve a buffered submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rid, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("request id must be a number, got %q", args[0])
			}
			view, err := pendingView(cmd)
			if err != nil {
				return err
			}
			// Approval never prompted in the forum UI; rejection does.
			if err := view.Approve(cmd.Context(), rid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request %d approved.\n", rid)
			return nil
		},
	}
}

func newPendingRejectCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reject <request-id>",
		Short: "Reject a buffered submission (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rid, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("request id must be a number, got %q", args[0])
			}
			view, err := pendingView(cmd)
			if err != nil {
				return err
			}
			err = view.Reject(cmd.Context(), rid, func(prompt string) bool {
				if yes {
					return true
				}
				return confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
			})
			if errors.Is(err, projects.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request %d rejected.\n", rid)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}
