// Package main provides the entry point for the notekv CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/notekv/internal/action"
	"github.com/gorewood/notekv/internal/git"
	"github.com/gorewood/notekv/internal/metadata"
	"github.com/gorewood/notekv/internal/output"
	"github.com/gorewood/notekv/internal/store"
)

// newUpdateCmd creates the update command.
func newUpdateCmd() *cobra.Command {
	var values, valuesFile, refFlag, remoteFlag string
	var dryRun, noPush bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Store key/value metadata on the current commit",
		Long: `Store key/value metadata as a git note on the current commit and push
the notes ref to the remote.

Exactly one value source must be provided: inline key=value pairs
(--values, one pair per line) or a JSON object file (--values-file).
When flags are absent, the action inputs INPUT_VALUES, INPUT_VALUES_FILE,
and INPUT_CUSTOM_REF are consulted, so the same binary works as a CI
action step.

An existing note on the commit is merged in: new values win on key
collision, other keys are preserved. The merged note is force-written
and all notes refs are force-pushed; the run fails unless the push
succeeds.

Examples:
  notekv update --values "build_number=42
commit_sha=abc123"
  notekv update --values-file build.json
  notekv update --values "stage=deploy" --ref ci-meta
  notekv update --values "stage=deploy" --dry-run  # Show merge result only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd, values, valuesFile, refFlag, remoteFlag, dryRun, noPush)
		},
	}

	cmd.Flags().StringVar(&values, "values", "", "Inline key=value pairs, newline-separated")
	cmd.Flags().StringVar(&valuesFile, "values-file", "", "Path to a JSON object file")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Notes ref name (default notes-kv)")
	cmd.Flags().StringVar(&remoteFlag, "remote", "", "Remote to sync with (default origin)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the merged result without writing or pushing")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "Write the note locally without pushing")

	return cmd
}

// runUpdate executes the update command.
func runUpdate(cmd *cobra.Command, values, valuesFile, refFlag, remoteFlag string, dryRun, noPush bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		return fail(cmd, printer, output.NewSystemError("not in a git repository"))
	}

	// Flags win; action inputs fill the gaps for CI runs.
	if values == "" {
		values = action.Input("values")
	}
	if valuesFile == "" {
		valuesFile = action.Input("values_file")
	}

	parsed, err := metadata.Resolve(values, valuesFile)
	if err != nil {
		return fail(cmd, printer, err)
	}

	ref, remote := resolveTargets(refFlag, remoteFlag)
	st := store.New(nil, remote, ref)

	result, err := st.Update(parsed, updateReporter(cmd, printer), store.Options{
		DryRun: dryRun,
		NoPush: noPush,
	})
	if err != nil {
		return fail(cmd, printer, err)
	}

	if isJSONMode(cmd) {
		return printer.WriteJSON(result)
	}
	printHumanUpdate(printer, result, dryRun)
	return nil
}

// updateReporter picks the progress channel: workflow commands under CI,
// styled stderr messages otherwise. JSON mode stays quiet either way.
func updateReporter(cmd *cobra.Command, printer *output.Printer) store.Reporter {
	if action.InCI() && !isJSONMode(cmd) {
		return action.NewLogger(cmd.ErrOrStderr())
	}
	return printer
}

// fail reports an error through the printer (and as a CI annotation when
// running under a workflow) and returns it for the top-level handler.
func fail(cmd *cobra.Command, printer *output.Printer, err error) error {
	if action.InCI() && !isJSONMode(cmd) {
		action.NewLogger(cmd.ErrOrStderr()).Error("%s", err.Error())
	}
	printer.Error(err)
	return err
}

// printHumanUpdate outputs the update result in human-readable format.
func printHumanUpdate(printer *output.Printer, result *store.Result, dryRun bool) {
	switch {
	case result.Skipped:
		printer.Println("Nothing to store")
	case dryRun:
		printer.Print("Dry run: would store %d key(s) on %s under %s\n",
			len(result.Values), shortSHA(result.Commit), result.Ref)
		printer.KeyValueMap(result.Values)
	case result.Pushed:
		printer.Print("Stored %d key(s) on %s and pushed %s\n",
			len(result.Values), shortSHA(result.Commit), result.Ref)
	default:
		printer.Print("Stored %d key(s) on %s under %s (not pushed)\n",
			len(result.Values), shortSHA(result.Commit), result.Ref)
	}
}

// shortSHA returns a shortened SHA (first 7 characters).
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
