package main

import (
	"fmt"

	"github.com/gcet-osf/forumctl/modules/roles"
	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/spf13/cobra"
)

func newRolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Grant and revoke global and project-scoped roles",
	}
	cmd.AddCommand(newRolesGrantCmd())
	cmd.AddCommand(newRolesRevokeCmd())
	cmd.AddCommand(newRolesAddCmd())
	cmd.AddCommand(newRolesRemoveCmd())
	cmd.AddCommand(newRolesAvailableCmd())
	return cmd
}

func newRolesGrantCmd() *cobra.Command {
	var userID, userName string

	cmd := &cobra.Command{
		Use:   "grant <role> --user-id <id> --user-name <name>",
		Short: "Grant a global role (superadmin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			svc := roles.NewRoleService(a.client, a.conf)
			msg, err := svc.GrantGlobal(cmd.Context(), sess, forum.Role(args[0]), &roles.GlobalRoleDTO{
				UserID:   userID,
				UserName: userName,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "target user's numeric ID")
	cmd.Flags().StringVar(&userName, "user-name", "", "target user's name")
	return cmd
}

func newRolesRevokeCmd() *cobra.Command {
	var userID, userName string

	cmd := &cobra.Command{
		Use:   "revoke <role> --user-id <id> --user-name <name>",
		Short: "Revoke a global role (superadmin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			svc := roles.NewRoleService(a.client, a.conf)
			msg, err := svc.RevokeGlobal(cmd.Context(), sess, forum.Role(args[0]), &roles.GlobalRoleDTO{
				UserID:   userID,
				UserName: userName,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "target user's numeric ID")
	cmd.Flags().StringVar(&userName, "user-name", "", "target user's name")
	return cmd
}

func newRolesAddCmd() *cobra.Command {
	var projectID, userID, userName string

	cmd := &cobra.Command{
		Use:   "add <role> --project-id <id> --user-id <id> [--user-name <name>]",
		Short: "Grant a project-scoped role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			svc := roles.NewRoleService(a.client, a.conf)
			msg, err := svc.GrantProject(cmd.Context(), sess.GlobalRole(), forum.Role(args[0]), &roles.ProjectRoleDTO{
				ProjectID: projectID,
				UserID:    userID,
				UserName:  userName,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "project's numeric ID")
	cmd.Flags().StringVar(&userID, "user-id", "", "target user's numeric ID")
	cmd.Flags().StringVar(&userName, "user-name", "", "target user's name")
	return cmd
}

func newRolesRemoveCmd() *cobra.Command {
	var projectID, userID, userName string

	cmd := &cobra.Command{
		Use:   "remove <role> --project-id <id> --user-id <id>",
		Short: "Revoke a project-scoped role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			svc := roles.NewRoleService(a.client, a.conf)
			msg, err := svc.RevokeProject(cmd.Context(), sess.GlobalRole(), forum.Role(args[0]), &roles.ProjectRoleDTO{
				ProjectID: projectID,
				UserID:    userID,
				UserName:  userName,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "project's numeric ID")
	cmd.Flags().StringVar(&userID, "user-id", "", "target user's numeric ID")
	cmd.Flags().StringVar(&userName, "user-name", "", "target user's name")
	return cmd
}

func newRolesAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "Show which roles the current session may grant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			caller := sess.GlobalRole()

			global := roles.NewPicker(roles.ScopeGlobal, caller)
			project := roles.NewPicker(roles.ScopeProject, caller)
			fmt.Fprintf(cmd.OutOrStdout(), "Caller role: %s\n", caller)
			fmt.Fprintf(cmd.OutOrStdout(), "Global roles: %s\n", roleList(global.Available()))
			fmt.Fprintf(cmd.OutOrStdout(), "Project roles: %s\n", roleList(project.Available()))
			return nil
		},
	}
}

func roleList(rs []forum.Role) string {
	if len(rs) == 0 {
		return "(none)"
	}
	out := ""
	for i, r := range rs {
		if i > 0 {
			out += ", "
		}
		out += string(r)
	}
	return out
}
