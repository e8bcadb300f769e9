// Package main provides the entry point for the notekv CLI.
package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/notekv/internal/git"
	"github.com/gorewood/notekv/internal/output"
)

// statusResult holds the data for status output.
type statusResult struct {
	Ref        string `json:"ref"`
	Remote     string `json:"remote"`
	RefExists  bool   `json:"ref_exists"`
	Configured bool   `json:"configured"`
	NotedCount int    `json:"noted_count"`
	Head       string `json:"head"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var refFlag, remoteFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show metadata sync state",
		Long: `Show the current state of metadata storage and synchronization.

Displays whether the notes ref exists, if fetch is configured for the
remote, and how many commits carry metadata.

Examples:
  notekv status                   # Check status for origin
  notekv status --remote upstream # Check status for upstream
  notekv status --json            # Output as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, refFlag, remoteFlag)
		},
	}

	cmd.Flags().StringVar(&refFlag, "ref", "", "Notes ref name (default notes-kv)")
	cmd.Flags().StringVar(&remoteFlag, "remote", "", "Remote to check (default origin)")

	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, refFlag, remoteFlag string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	ref, remote := resolveTargets(refFlag, remoteFlag)

	result, err := gatherStatus(ref, remote)
	if err != nil {
		printer.Error(err)
		return err
	}

	if isJSONMode(cmd) {
		return printer.Success(map[string]any{
			"ref":         result.Ref,
			"remote":      result.Remote,
			"ref_exists":  result.RefExists,
			"configured":  result.Configured,
			"noted_count": result.NotedCount,
			"head":        result.Head,
		})
	}

	printHumanStatus(printer, result)
	return nil
}

// gatherStatus collects metadata sync state.
func gatherStatus(ref git.Ref, remote string) (*statusResult, error) {
	head, err := git.HEAD()
	if err != nil {
		return nil, err
	}

	commits, err := git.ListNotedCommits(ref)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to list noted commits", err)
	}

	return &statusResult{
		Ref:        ref.Full(),
		Remote:     remote,
		RefExists:  git.RefExists(ref),
		Configured: git.FetchConfigured(remote, ref),
		NotedCount: len(commits),
		Head:       head,
	}, nil
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, status *statusResult) {
	printer.Section("Metadata Sync Status")
	printer.KeyValue("Ref", status.Ref)
	printer.KeyValue("Remote", status.Remote)
	printer.KeyValue("Ref exists", formatBool(status.RefExists))
	printer.KeyValue("Configured", formatBool(status.Configured))
	printer.KeyValue("Noted commits", strconv.Itoa(status.NotedCount))
	printer.KeyValue("HEAD", shortSHA(status.Head))
}
