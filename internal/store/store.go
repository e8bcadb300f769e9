// Package store implements the read-merge-write-push pipeline that persists
// a metadata map against a commit via git notes.
package store

import (
	"errors"

	"github.com/gorewood/notekv/internal/git"
	"github.com/gorewood/notekv/internal/metadata"
	"github.com/gorewood/notekv/internal/output"
)

// GitOps defines the git operations required by the Store.
// A fake implementation substitutes for the real git binary in tests.
type GitOps interface {
	ResolveHead() (string, error)
	FetchRef(remote string, ref git.Ref) error
	ReadNote(ref git.Ref, commit string) ([]byte, error)
	WriteNote(ref git.Ref, commit, content string) error
	PushRefs(remote string) error
}

// realGitOps implements GitOps using the actual git package functions.
type realGitOps struct{}

func (realGitOps) ResolveHead() (string, error) {
	return git.HEAD()
}

func (realGitOps) FetchRef(remote string, ref git.Ref) error {
	return git.FetchRef(remote, ref)
}

func (realGitOps) ReadNote(ref git.Ref, commit string) ([]byte, error) {
	return git.ReadNote(ref, commit)
}

func (realGitOps) WriteNote(ref git.Ref, commit, content string) error {
	return git.WriteNote(ref, commit, content)
}

func (realGitOps) PushRefs(remote string) error {
	return git.PushRefs(remote)
}

// Reporter receives progress signals from the pipeline: informational
// messages for expected first-run states, warnings for discarded corrupt
// state. output.Printer satisfies it; tests use a recording fake.
type Reporter interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Store persists metadata maps as git notes under a single ref.
type Store struct {
	git    GitOps
	remote string
	ref    git.Ref
}

// New creates a Store for the given remote and notes ref.
// If ops is nil, real git operations are used.
func New(ops GitOps, remote string, ref git.Ref) *Store {
	if ops == nil {
		ops = realGitOps{}
	}
	if remote == "" {
		remote = "origin"
	}
	if ref == "" {
		ref = git.DefaultRef
	}
	return &Store{git: ops, remote: remote, ref: ref}
}

// Ref returns the notes ref the store writes under.
func (s *Store) Ref() git.Ref {
	return s.ref
}

// Remote returns the remote the store syncs with.
func (s *Store) Remote() string {
	return s.remote
}

// Options controls the Update pipeline.
type Options struct {
	DryRun bool // merge and report, but do not write or push
	NoPush bool // write locally, skip the push (local workflows only)
}

// Result describes what an Update run did.
type Result struct {
	Commit  string       `json:"commit,omitempty"`
	Ref     string       `json:"ref"`
	Values  metadata.Map `json:"values,omitempty"`
	Merged  bool         `json:"merged"`  // an existing note was merged in
	Written bool         `json:"written"` // a note was written
	Pushed  bool         `json:"pushed"`  // notes refs were pushed
	Skipped bool         `json:"skipped"` // empty input, nothing to do
}

// Update runs the full pipeline for the given values:
// resolve HEAD, fetch the remote ref, read and merge any existing note,
// force-write the merged note, and push all notes refs.
//
// Fetch failure and note absence are absorbed as informational (normal
// first-run states). A corrupt existing note is a warning; its content is
// discarded and fully overwritten. Resolve, write, and push failures are
// fatal. An empty values map short-circuits to a successful no-op.
func (s *Store) Update(values metadata.Map, rep Reporter, opts Options) (*Result, error) {
	result := &Result{Ref: s.ref.Full()}

	if len(values) == 0 {
		rep.Info("no values to store; nothing to do")
		result.Skipped = true
		return result, nil
	}

	commit, err := s.git.ResolveHead()
	if err != nil {
		return nil, err
	}
	result.Commit = commit

	if fetchErr := s.git.FetchRef(s.remote, s.ref); fetchErr != nil {
		rep.Info("could not fetch %s from %s (first write?): %v", s.ref.Full(), s.remote, fetchErr)
	}

	existing := s.readExisting(commit, rep)
	result.Merged = existing != nil
	result.Values = metadata.Merge(existing, values)

	if opts.DryRun {
		return result, nil
	}

	body, err := result.Values.Encode()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("cannot serialize metadata", err)
	}
	if err := s.git.WriteNote(s.ref, commit, string(body)); err != nil {
		return nil, err
	}
	result.Written = true

	if opts.NoPush {
		rep.Info("skipping push; note stored locally only")
		return result, nil
	}
	if err := s.git.PushRefs(s.remote); err != nil {
		return nil, err
	}
	result.Pushed = true
	return result, nil
}

// readExisting reads and parses the note currently attached to the commit.
// Returns nil when no usable prior state exists: absence and read failures
// are informational, an unparseable body is a warning and is discarded.
func (s *Store) readExisting(commit string, rep Reporter) metadata.Map {
	body, err := s.git.ReadNote(s.ref, commit)
	if err != nil {
		if errors.Is(err, git.ErrNoNote) {
			rep.Info("no existing note for %s; creating", shortSHA(commit))
		} else {
			rep.Info("could not read existing note for %s: %v", shortSHA(commit), err)
		}
		return nil
	}

	existing, parseErr := metadata.ParseStored(body)
	if parseErr != nil {
		rep.Warn("existing note for %s is not valid JSON; overwriting: %v", shortSHA(commit), parseErr)
		return nil
	}

	rep.Info("found existing note for %s with %d key(s); merging", shortSHA(commit), len(existing))
	return existing
}

// Read returns the stored map for a commit without fetching.
// Returns git.ErrNoNote (wrapped) when the commit has no note, and a user
// error when the stored body is not a JSON object.
func (s *Store) Read(commit string) (metadata.Map, error) {
	body, err := s.git.ReadNote(s.ref, commit)
	if err != nil {
		return nil, err
	}
	values, err := metadata.ParseStored(body)
	if err != nil {
		return nil, output.NewUserError("stored note for " + shortSHA(commit) + " is not a JSON object")
	}
	return values, nil
}

// shortSHA returns a shortened SHA (first 7 characters).
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
