// Package main provides the entry point for the notekv CLI.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gorewood/notekv/internal/git"
	"github.com/gorewood/notekv/internal/output"
	"github.com/gorewood/notekv/internal/store"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	var refFlag string

	cmd := &cobra.Command{
		Use:   "show [<commit>]",
		Short: "Display the metadata stored for a commit",
		Long: `Display the key/value metadata stored for a commit (default HEAD).

Reads the local note only; run 'git fetch' or 'notekv update' first if
you need the remote's copy.

Examples:
  notekv show                  # Metadata for HEAD
  notekv show abc123           # Metadata for a specific commit
  notekv show HEAD~2 --json    # As JSON for scripting`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, refFlag)
		},
	}

	cmd.Flags().StringVar(&refFlag, "ref", "", "Notes ref name (default notes-kv)")

	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, args []string, refFlag string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	rev := "HEAD"
	if len(args) > 0 {
		rev = args[0]
	}

	commit, err := git.ResolveCommit(rev)
	if err != nil {
		printer.Error(err)
		return err
	}

	ref, remote := resolveTargets(refFlag, "")
	st := store.New(nil, remote, ref)

	values, err := st.Read(commit)
	if err != nil {
		if errors.Is(err, git.ErrNoNote) {
			err = output.NewUserError("no metadata found for commit " + shortSHA(commit))
		}
		printer.Error(err)
		return err
	}

	if isJSONMode(cmd) {
		return printer.WriteJSON(map[string]any{
			"commit": commit,
			"ref":    ref.Full(),
			"values": values,
		})
	}

	printer.Println(shortSHA(commit) + " (" + ref.Full() + ")")
	printer.KeyValueMap(values)
	return nil
}
