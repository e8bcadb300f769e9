package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/notekv/internal/git"
	"github.com/gorewood/notekv/internal/metadata"
	"github.com/gorewood/notekv/internal/store"
)

// silentReporter drops progress messages; tool outputs carry the state.
type silentReporter struct{}

func (silentReporter) Info(string, ...any) {}
func (silentReporter) Warn(string, ...any) {}

// --- Get tool ---

// GetInput is the input for the get tool.
type GetInput struct {
	Commit string `json:"commit,omitempty" jsonschema:"commit revision to read (default HEAD)"`
}

// GetOutput is the output for the get tool.
type GetOutput struct {
	Commit string         `json:"commit"           jsonschema:"full commit SHA"`
	Found  bool           `json:"found"            jsonschema:"whether the commit has a metadata note"`
	Values map[string]any `json:"values,omitempty" jsonschema:"stored key/value pairs"`
}

func handleGet(st *store.Store) mcp.ToolHandlerFor[GetInput, GetOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetOutput, error) {
		rev := input.Commit
		if rev == "" {
			rev = "HEAD"
		}

		commit, err := git.ResolveCommit(rev)
		if err != nil {
			return nil, GetOutput{}, fmt.Errorf("resolving commit: %w", err)
		}

		values, err := st.Read(commit)
		if err != nil {
			if errors.Is(err, git.ErrNoNote) {
				return nil, GetOutput{Commit: commit, Found: false}, nil
			}
			return nil, GetOutput{}, fmt.Errorf("reading note: %w", err)
		}

		return nil, GetOutput{Commit: commit, Found: true, Values: values}, nil
	}
}

// --- Set tool ---

// SetInput is the input for the set tool.
type SetInput struct {
	Values map[string]string `json:"values"         jsonschema:"key/value pairs to merge into the note"`
	NoPush bool              `json:"no_push,omitempty" jsonschema:"write locally without pushing the notes ref"`
}

// SetOutput is the output for the set tool.
type SetOutput struct {
	Commit string         `json:"commit"           jsonschema:"commit the note was written to"`
	Ref    string         `json:"ref"              jsonschema:"fully qualified notes ref"`
	Merged bool           `json:"merged"           jsonschema:"whether an existing note was merged in"`
	Pushed bool           `json:"pushed"           jsonschema:"whether the notes refs were pushed"`
	Values map[string]any `json:"values,omitempty" jsonschema:"final stored key/value pairs"`
}

func handleSet(st *store.Store) mcp.ToolHandlerFor[SetInput, SetOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SetInput) (*mcp.CallToolResult, SetOutput, error) {
		if len(input.Values) == 0 {
			return nil, SetOutput{}, errors.New("values must not be empty")
		}

		values := make(metadata.Map, len(input.Values))
		for k, v := range input.Values {
			values[k] = v
		}

		result, err := st.Update(values, silentReporter{}, store.Options{NoPush: input.NoPush})
		if err != nil {
			return nil, SetOutput{}, fmt.Errorf("updating note: %w", err)
		}

		return nil, SetOutput{
			Commit: result.Commit,
			Ref:    result.Ref,
			Merged: result.Merged,
			Pushed: result.Pushed,
			Values: result.Values,
		}, nil
	}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Ref        string `json:"ref"         jsonschema:"fully qualified notes ref"`
	Remote     string `json:"remote"      jsonschema:"remote the ref syncs with"`
	RefExists  bool   `json:"ref_exists"  jsonschema:"whether the notes ref exists locally"`
	Configured bool   `json:"configured"  jsonschema:"whether notes fetch is configured for the remote"`
	NotedCount int    `json:"noted_count" jsonschema:"number of commits carrying metadata"`
	Branch     string `json:"branch"      jsonschema:"current branch"`
	Head       string `json:"head"        jsonschema:"HEAD commit SHA"`
}

func handleStatus(st *store.Store) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		branch, err := git.CurrentBranch()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("getting current branch: %w", err)
		}

		head, err := git.HEAD()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("getting HEAD: %w", err)
		}

		commits, err := git.ListNotedCommits(st.Ref())
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("listing noted commits: %w", err)
		}

		return nil, StatusOutput{
			Ref:        st.Ref().Full(),
			Remote:     st.Remote(),
			RefExists:  git.RefExists(st.Ref()),
			Configured: git.FetchConfigured(st.Remote(), st.Ref()),
			NotedCount: len(commits),
			Branch:     branch,
			Head:       head,
		}, nil
	}
}
