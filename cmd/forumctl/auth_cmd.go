package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gcet-osf/forumctl/modules/accounts"
	"github.com/gcet-osf/forumctl/pkg/forms"
	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login --email <addr> --password <pass>",
		Short: "Authenticate and cache the credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := accounts.NewAccountService(a.client, a.conf)
			sess, err := svc.Login(cmd.Context(), &accounts.LoginDTO{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var fullName, email, password, confirm, gender, dob string

	cmd := &cobra.Command{
		Use:   "register --full-name <name> --email <addr> --password <pass> --confirm-password <pass> --gender <g> --date-of-birth <date>",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := accounts.NewAccountService(a.client, a.conf)

			draft := forms.NewDraft("fullName", "email", "password", "confirmPassword", "gender", "dateOfBirth")
			draft.Set("fullName", fullName)
			draft.Set("email", email)
			draft.Set("password", password)
			draft.Set("confirmPassword", confirm)
			draft.Set("gender", gender)
			draft.Set("dateOfBirth", dob)

			msg, err := draft.Submit(cmd.Context(), func(ctx context.Context, values map[string]string) (string, error) {
				return svc.Register(ctx, &accounts.RegisterDTO{
					FullName:        values["fullName"],
					Email:           values["email"],
					Password:        values["password"],
					ConfirmPassword: values["confirmPassword"],
					Gender:          values["gender"],
					DateOfBirth:     values["dateOfBirth"],
				})
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address (used as the account username)")
	cmd.Flags().StringVar(&password, "password", "", "password (8 characters minimum)")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "password confirmation")
	cmd.Flags().StringVar(&gender, "gender", "", "gender")
	cmd.Flags().StringVar(&dob, "date-of-birth", "", "date of birth (YYYY-MM-DD)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and drop the cached credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			// Fire-and-forget: the local credential goes away regardless of
			// what the endpoint says.
			accounts.NewAccountService(a.client, a.conf).Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the resolved session and available sections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess := a.client.ResolveSession(cmd.Context())
			printShell(cmd.OutOrStdout(), sess)
			return nil
		},
	}
}

// printShell renders the navigation header's state: who is logged in and
// which sections their roles unlock.
func printShell(out io.Writer, sess forum.Session) {
	if !sess.LoggedIn() {
		fmt.Fprintln(out, "Not logged in.")
		fmt.Fprintln(out, "Sections: projects")
		return
	}
	fmt.Fprintf(out, "Logged in as %s", sess.Username)
	if sess.Email != "" && sess.Email != sess.Username {
		fmt.Fprintf(out, " <%s>", sess.Email)
	}
	fmt.Fprintf(out, " (role: %s)\n", sess.GlobalRole())
	if sess.IsAdmin || sess.IsSudo {
		fmt.Fprintln(out, "Sections: projects, people, pending")
	} else {
		fmt.Fprintln(out, "Sections: projects")
	}
}
