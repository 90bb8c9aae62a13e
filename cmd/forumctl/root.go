package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gcet-osf/forumctl/pkg/configuration"
	"github.com/gcet-osf/forumctl/pkg/forms"
	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "forumctl",
		Short:         "Console client for the Project Forum backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newProjectsCmd())
	cmd.AddCommand(newPendingCmd())
	cmd.AddCommand(newRolesCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		configuration.Use().Unload()
		os.Exit(1)
	}
	configuration.Use().Unload()
}

// app bundles the per-invocation configuration and client, with the cached
// credential installed when one exists.
type app struct {
	conf   *configuration.Configuration
	client *forum.Client
}

func newApp() (*app, error) {
	conf := configuration.Use()
	client, err := forum.NewClient(conf)
	if err != nil {
		return nil, err
	}
	if tok := forum.LoadToken(conf.TokenPath); tok != "" {
		client.SetToken(tok)
	}
	return &app{conf: conf, client: client}, nil
}

// userMessage picks the wording shown on stderr: validation messages as-is,
// request failures through the three-way taxonomy.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if forms.IsValidationError(err) {
		return err.Error()
	}
	var re *forum.RequestError
	if errors.As(err, &re) {
		return re.UserMessage()
	}
	return err.Error()
}
