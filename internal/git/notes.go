// Package git provides Git operations via exec for the notekv CLI.
package git

import (
	"errors"
	"strings"

	"github.com/gorewood/notekv/internal/output"
)

// DefaultRef is the notes ref used when no custom ref is configured.
const DefaultRef = Ref("notes-kv")

// Ref names a notes ref. The short name ("notes-kv") is stored; Full
// returns the fully qualified form ("refs/notes/notes-kv").
type Ref string

// Full returns the fully qualified ref name.
func (r Ref) Full() string {
	return "refs/notes/" + string(r)
}

// ErrNoNote is returned by ReadNote when the commit has no note under the ref.
// Callers treat this as a normal first-run state, not a failure.
var ErrNoNote = errors.New("no note found")

// RefExists checks if the notes ref exists locally.
func RefExists(ref Ref) bool {
	_, err := Run("show-ref", "--verify", ref.Full())
	return err == nil
}

// FetchConfigured checks if the remote has a fetch refspec for the notes ref.
func FetchConfigured(remote string, ref Ref) bool {
	out, err := Run("config", "--get-all", "remote."+remote+".fetch")
	if err != nil {
		return false
	}
	for spec := range strings.SplitSeq(out, "\n") {
		if strings.Contains(spec, ref.Full()) {
			return true
		}
	}
	return false
}

// ConfigureNotesFetch adds the fetch refspec for the notes ref to a remote.
// If already configured, this is a no-op.
func ConfigureNotesFetch(remote string, ref Ref) error {
	if FetchConfigured(remote, ref) {
		return nil
	}
	fetchSpec := "+" + ref.Full() + ":" + ref.Full()
	_, err := Run("config", "--add", "remote."+remote+".fetch", fetchSpec)
	return err
}

// ReadNote reads the note attached to a commit under the given ref.
// Returns ErrNoNote (wrapped in a user error) if the commit has no note.
// Returns a system error (exit code 2) for other git failures.
func ReadNote(ref Ref, commit string) ([]byte, error) {
	out, err := Run("notes", "--ref="+ref.Full(), "show", commit)
	if err != nil {
		var exitErr *output.ExitError
		if errors.As(err, &exitErr) {
			msg := exitErr.Message
			if strings.Contains(msg, "no note found") || strings.Contains(msg, "no such object") {
				return nil, ErrNoNote
			}
		}
		return nil, err
	}
	return []byte(out), nil
}

// WriteNote attaches content as the note for a commit under the given ref.
// Any existing note is overwritten outright (force semantics, not append).
func WriteNote(ref Ref, commit string, content string) error {
	_, err := Run("notes", "--ref="+ref.Full(), "add", "-f", "-m", content, commit)
	return err
}

// ListNotedCommits returns the commits that have notes under the given ref.
// Returns an empty slice if the ref does not exist yet.
func ListNotedCommits(ref Ref) ([]string, error) {
	out, err := Run("notes", "--ref="+ref.Full(), "list")
	if err != nil {
		var exitErr *output.ExitError
		if errors.As(err, &exitErr) {
			if strings.Contains(exitErr.Message, "no such object") || strings.Contains(exitErr.Message, "no notes") {
				return []string{}, nil
			}
		}
		return nil, err
	}

	if out == "" {
		return []string{}, nil
	}

	// Each line is "note-sha commit-sha"; the commit is the second field.
	var commits []string
	for line := range strings.SplitSeq(out, "\n") {
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) >= 2 {
			commits = append(commits, parts[1])
		}
	}
	return commits, nil
}

// FetchRef fetches the remote copy of the notes ref into the local ref of
// the same name. Fails if the remote does not have the ref yet; callers
// absorb that as a normal first-run state.
func FetchRef(remote string, ref Ref) error {
	refSpec := ref.Full() + ":" + ref.Full()
	_, err := Run("fetch", remote, refSpec)
	return err
}

// PushRefs force-pushes all local notes refs to the remote.
// Metadata is not considered durably stored until this succeeds.
func PushRefs(remote string) error {
	_, err := Run("push", remote, "refs/notes/*", "-f")
	return err
}
