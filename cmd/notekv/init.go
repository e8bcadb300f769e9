// Package main provides the entry point for the notekv CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/notekv/internal/git"
	"github.com/gorewood/notekv/internal/output"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var refFlag, remoteFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Configure notes fetch for a remote",
		Long: `Configure git to fetch the metadata notes ref from a remote repository.

This adds a fetch refspec for the notes ref to your git config, enabling
'git fetch' to pull metadata automatically. Idempotent: running it again
is a no-op.

Examples:
  notekv init                   # Configure for origin
  notekv init --remote upstream # Configure for upstream
  notekv init --dry-run         # Show what would be configured`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, refFlag, remoteFlag, dryRun)
		},
	}

	cmd.Flags().StringVar(&refFlag, "ref", "", "Notes ref name (default notes-kv)")
	cmd.Flags().StringVar(&remoteFlag, "remote", "", "Remote to configure (default origin)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, refFlag, remoteFlag string, dryRun bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	ref, remote := resolveTargets(refFlag, remoteFlag)
	wasConfigured := git.FetchConfigured(remote, ref)

	if dryRun {
		if isJSONMode(cmd) {
			return printer.Success(map[string]any{
				"status":             "dry_run",
				"ref":                ref.Full(),
				"remote":             remote,
				"already_configured": wasConfigured,
				"would_configure":    !wasConfigured,
			})
		}
		if wasConfigured {
			printer.Print("Dry run: Notes fetch already configured for remote '%s' (no changes needed)\n", remote)
		} else {
			printer.Print("Dry run: Would configure fetch of %s for remote '%s'\n", ref.Full(), remote)
		}
		return nil
	}

	if err := git.ConfigureNotesFetch(remote, ref); err != nil {
		sysErr := output.NewSystemErrorWithCause("failed to configure notes fetch", err)
		printer.Error(sysErr)
		return sysErr
	}

	if isJSONMode(cmd) {
		return printer.Success(map[string]any{
			"status":     "ok",
			"ref":        ref.Full(),
			"remote":     remote,
			"configured": true,
		})
	}

	if wasConfigured {
		printer.Print("Notes fetch already configured for remote '%s'\n", remote)
	} else {
		printer.Print("Configured fetch of %s for remote '%s'\n", ref.Full(), remote)
	}
	return nil
}
