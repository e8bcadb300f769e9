// Package main provides the entry point for the notekv CLI.
package main

import (
	"github.com/gorewood/notekv/internal/action"
	"github.com/gorewood/notekv/internal/config"
	"github.com/gorewood/notekv/internal/git"
)

// resolveTargets resolves the effective notes ref and remote.
//
// Precedence, highest first:
//  1. command flags (--ref, --remote)
//  2. action inputs (INPUT_CUSTOM_REF)
//  3. per-repo .notekv.yml at the repository root
//  4. built-in defaults (notes-kv, origin)
func resolveTargets(refFlag, remoteFlag string) (git.Ref, string) {
	ref := refFlag
	remote := remoteFlag

	if ref == "" {
		ref = action.Input("custom_ref")
	}

	if ref == "" || remote == "" {
		if root, err := git.RepoRoot(); err == nil {
			if cfg, err := config.Load(root); err == nil {
				if ref == "" {
					ref = cfg.Ref
				}
				if remote == "" {
					remote = cfg.Remote
				}
			}
		}
	}

	if ref == "" {
		ref = string(git.DefaultRef)
	}
	if remote == "" {
		remote = "origin"
	}
	return git.Ref(ref), remote
}

// formatBool renders a boolean as yes/no for human output.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
