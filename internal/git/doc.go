// Package git provides Git operations via exec for the notekv CLI.
//
// This package wraps git commands by shelling out to the git executable,
// capturing stdout/stderr and translating exit codes to appropriate errors.
// Git is always invoked as an external binary; nothing here reimplements
// the object store.
//
// # General Operations
//
//	git.IsRepo()            // Check if current directory is a git repository
//	git.RepoRoot()          // Get the root directory of the repository
//	git.HEAD()              // Get the current HEAD commit SHA
//	git.ResolveCommit(rev)  // Resolve any revision to a full SHA
//
// # Notes Operations
//
// Metadata lives in git notes under a dedicated ref (refs/notes/notes-kv by
// default, overridable per call):
//
//	body, err := git.ReadNote(ref, commit)   // ErrNoNote when absent
//	err := git.WriteNote(ref, commit, body)  // force-overwrites
//	err := git.FetchRef("origin", ref)
//	err := git.PushRefs("origin")            // refs/notes/* -f
//
// # Error Handling
//
// All functions return errors wrapped with appropriate exit codes:
//   - ExitUserError (1) for user errors like an unresolvable revision
//   - ExitSystemError (2) for system errors like git not found
//
// ReadNote returns the ErrNoNote sentinel when a commit simply has no note,
// so callers can distinguish expected absence from real failures.
package git
