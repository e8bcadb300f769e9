package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/notekv/internal/git"
	"github.com/gorewood/notekv/internal/metadata"
	"github.com/gorewood/notekv/internal/output"
)

const testCommit = "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2"

// fakeGitOps records bridge calls and returns scripted results.
type fakeGitOps struct {
	headErr  error
	fetchErr error
	readBody []byte
	readErr  error
	writeErr error
	pushErr  error

	calls   []string
	written string
}

func (f *fakeGitOps) ResolveHead() (string, error) {
	f.calls = append(f.calls, "resolve")
	if f.headErr != nil {
		return "", f.headErr
	}
	return testCommit, nil
}

func (f *fakeGitOps) FetchRef(remote string, ref git.Ref) error {
	f.calls = append(f.calls, "fetch "+remote+" "+ref.Full())
	return f.fetchErr
}

func (f *fakeGitOps) ReadNote(_ git.Ref, _ string) ([]byte, error) {
	f.calls = append(f.calls, "read")
	return f.readBody, f.readErr
}

func (f *fakeGitOps) WriteNote(_ git.Ref, _, content string) error {
	f.calls = append(f.calls, "write")
	f.written = content
	return f.writeErr
}

func (f *fakeGitOps) PushRefs(remote string) error {
	f.calls = append(f.calls, "push "+remote)
	return f.pushErr
}

// recordingReporter captures Info/Warn messages.
type recordingReporter struct {
	infos []string
	warns []string
}

func (r *recordingReporter) Info(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warn(format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func storedMap(t *testing.T, body string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func TestUpdateFirstWrite(t *testing.T) {
	ops := &fakeGitOps{
		fetchErr: errors.New("couldn't find remote ref"),
		readErr:  git.ErrNoNote,
	}
	rep := &recordingReporter{}
	st := New(ops, "origin", "notes-kv")

	result, err := st.Update(metadata.Map{"build_number": "42", "commit_sha": "abc123"}, rep, Options{})
	require.NoError(t, err)

	assert.Equal(t, testCommit, result.Commit)
	assert.Equal(t, "refs/notes/notes-kv", result.Ref)
	assert.False(t, result.Merged)
	assert.True(t, result.Written)
	assert.True(t, result.Pushed)

	// Fetch failure and note absence absorbed as informational
	assert.Empty(t, rep.warns)
	assert.Len(t, rep.infos, 2)

	assert.Equal(t, map[string]any{"build_number": "42", "commit_sha": "abc123"},
		storedMap(t, ops.written))
	assert.Equal(t,
		[]string{"resolve", "fetch origin refs/notes/notes-kv", "read", "write", "push origin"},
		ops.calls)
}

func TestUpdateMergesExistingNote(t *testing.T) {
	ops := &fakeGitOps{readBody: []byte(`{"author":"alice","keep":"me"}`)}
	rep := &recordingReporter{}
	st := New(ops, "origin", "notes-kv")

	result, err := st.Update(metadata.Map{"author": "bob", "stage": "deploy"}, rep, Options{})
	require.NoError(t, err)

	assert.True(t, result.Merged)
	assert.Equal(t, map[string]any{
		"author": "bob",
		"keep":   "me",
		"stage":  "deploy",
	}, storedMap(t, ops.written))
}

func TestUpdateDiscardsCorruptExistingNote(t *testing.T) {
	ops := &fakeGitOps{readBody: []byte("not json")}
	rep := &recordingReporter{}
	st := New(ops, "origin", "notes-kv")

	result, err := st.Update(metadata.Map{"a": "1"}, rep, Options{})
	require.NoError(t, err)

	assert.False(t, result.Merged, "corrupt prior state is discarded, not merged")
	assert.Len(t, rep.warns, 1)
	assert.Contains(t, rep.warns[0], "not valid JSON")
	assert.Equal(t, map[string]any{"a": "1"}, storedMap(t, ops.written))
}

func TestUpdateEmptyMapIsNoOp(t *testing.T) {
	ops := &fakeGitOps{}
	rep := &recordingReporter{}
	st := New(ops, "origin", "notes-kv")

	result, err := st.Update(metadata.Map{}, rep, Options{})
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.False(t, result.Written)
	assert.False(t, result.Pushed)
	assert.Empty(t, ops.calls, "no git operation for an empty map")
}

func TestUpdateDryRun(t *testing.T) {
	ops := &fakeGitOps{readBody: []byte(`{"a":"1"}`)}
	rep := &recordingReporter{}
	st := New(ops, "origin", "notes-kv")

	result, err := st.Update(metadata.Map{"b": "2"}, rep, Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, metadata.Map{"a": "1", "b": "2"}, result.Values)
	assert.False(t, result.Written)
	assert.False(t, result.Pushed)
	for _, call := range ops.calls {
		assert.NotEqual(t, "write", call)
		assert.False(t, strings.HasPrefix(call, "push"), "dry run must not push")
	}
}

func TestUpdateNoPush(t *testing.T) {
	ops := &fakeGitOps{readErr: git.ErrNoNote}
	rep := &recordingReporter{}
	st := New(ops, "origin", "notes-kv")

	result, err := st.Update(metadata.Map{"a": "1"}, rep, Options{NoPush: true})
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.False(t, result.Pushed)
}

func TestUpdateFatalFailures(t *testing.T) {
	boom := output.NewSystemError("boom")

	tests := []struct {
		name string
		ops  *fakeGitOps
	}{
		{name: "resolve failure", ops: &fakeGitOps{headErr: boom}},
		{name: "write failure", ops: &fakeGitOps{readErr: git.ErrNoNote, writeErr: boom}},
		{name: "push failure", ops: &fakeGitOps{readErr: git.ErrNoNote, pushErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := New(tt.ops, "origin", "notes-kv")
			result, err := st.Update(metadata.Map{"a": "1"}, &recordingReporter{}, Options{})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, output.ExitSystemError, output.GetExitCode(err))
		})
	}
}

func TestUpdateIdempotent(t *testing.T) {
	// Running twice with the same values yields the same stored map.
	ops := &fakeGitOps{readErr: git.ErrNoNote}
	rep := &recordingReporter{}
	st := New(ops, "origin", "notes-kv")
	values := metadata.Map{"a": "1", "b": "2"}

	_, err := st.Update(values, rep, Options{})
	require.NoError(t, err)
	first := ops.written

	// Second run sees the first run's note
	ops.readErr = nil
	ops.readBody = []byte(first)
	_, err = st.Update(values, rep, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, ops.written)
}

func TestReadTranslatesErrors(t *testing.T) {
	t.Run("no note passes through sentinel", func(t *testing.T) {
		st := New(&fakeGitOps{readErr: git.ErrNoNote}, "origin", "notes-kv")
		_, err := st.Read(testCommit)
		assert.ErrorIs(t, err, git.ErrNoNote)
	})

	t.Run("non-object body is a user error", func(t *testing.T) {
		st := New(&fakeGitOps{readBody: []byte(`"just a string"`)}, "origin", "notes-kv")
		_, err := st.Read(testCommit)
		require.Error(t, err)
		assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	})

	t.Run("valid body parsed", func(t *testing.T) {
		st := New(&fakeGitOps{readBody: []byte(`{"a":"1"}`)}, "origin", "notes-kv")
		got, err := st.Read(testCommit)
		require.NoError(t, err)
		assert.Equal(t, metadata.Map{"a": "1"}, got)
	})
}

func TestNewDefaults(t *testing.T) {
	st := New(&fakeGitOps{}, "", "")
	assert.Equal(t, "origin", st.Remote())
	assert.Equal(t, git.DefaultRef, st.Ref())
}
