package main

import (
	"context"
	"fmt"

	"github.com/gcet-osf/forumctl/modules/projects"
	"github.com/gcet-osf/forumctl/pkg/forms"
	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse and manage projects",
	}
	cmd.AddCommand(newProjectsListCmd())
	cmd.AddCommand(newProjectsCreatorsCmd())
	cmd.AddCommand(newProjectsShowCmd())
	cmd.AddCommand(newProjectsCreateCmd())
	cmd.AddCommand(newProjectsEditCmd())
	cmd.AddCommand(newProjectsDeleteCmd())
	cmd.AddCommand(newProjectsStatusCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	var (
		search  string
		status  string
		creator string
		sortBy  string
		sortDir string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with client-side search, filters and sorting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := projects.NewProjectService(a.client, a.conf)
			items, err := svc.List(cmd.Context(), projects.Query{
				Search:  search,
				Status:  status,
				Creator: creator,
				SortBy:  forum.SortKey(sortBy),
				SortDir: forum.SortDirection(sortDir),
			})
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			printProjects(cmd.OutOrStdout(), items, sess)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "substring match on name or description")
	cmd.Flags().StringVar(&status, "status", "all", "filter by lifecycle status")
	cmd.Flags().StringVar(&creator, "creator", "all", "filter by creator name")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort key (name|start_date|status|creator_name)")
	cmd.Flags().StringVar(&sortDir, "dir", "asc", "sort direction (asc|desc)")
	return cmd
}

func newProjectsCreatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "creators",
		Short: "List distinct project creators, usable as --creator values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := projects.NewProjectService(a.client, a.conf)
			items, err := svc.List(cmd.Context(), projects.Query{})
			if err != nil {
				return err
			}
			for _, c := range forum.Creators(items) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newProjectsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := projects.NewProjectService(a.client, a.conf)
			p, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			printProjectDetail(cmd.OutOrStdout(), p, sess)
			return nil
		},
	}
}

func newProjectsCreateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create --name <name> --description <text>",
		Short: "Submit a new project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := projects.NewProjectService(a.client, a.conf)

			draft := forms.NewDraft("name", "description")
			draft.Set("name", name)
			draft.Set("description", description)

			msg, err := draft.Submit(cmd.Context(), func(ctx context.Context, values map[string]string) (string, error) {
				out, err := svc.Create(ctx, &projects.CreateProjectDTO{
					Name:        values["name"],
					Description: values["description"],
				})
				if err != nil {
					return "", err
				}
				return out.Message(), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	return cmd
}

func newProjectsEditCmd() *cobra.Command {
	var name, description, status, thumbnail string

	cmd := &cobra.Command{
		Use:   "edit <id> --name <name> [--description <text>] [--status <s>] [--thumbnail <path>]",
		Short: "Update a project (multipart form, optional thumbnail)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := projects.NewProjectService(a.client, a.conf)
			if err := svc.Edit(cmd.Context(), args[0], &projects.EditProjectDTO{
				Name:          name,
				Description:   description,
				Status:        status,
				ThumbnailPath: thumbnail,
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Project updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&status, "status", "draft", "lifecycle status (draft|active|archived)")
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "path to a replacement thumbnail image")
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			view := projects.NewListView(a.client, sess)
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			err = view.Delete(cmd.Context(), args[0], func(prompt string) bool {
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
			fmt.Fprintln(cmd.OutOrStdout(), "Project deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func newProjectsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a project's lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			dto := &projects.StatusChangeDTO{ProjectID: args[0], Status: args[1]}
			if _, err := dto.Validate(); err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			view := projects.NewListView(a.client, sess)
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			if err := view.UpdateStatus(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Status set to %s.\n", args[1])
			return nil
		},
	}
}
