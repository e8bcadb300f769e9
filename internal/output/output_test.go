package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinterSuccess(t *testing.T) {
	t.Run("JSON mode outputs data as JSON", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, true, false)

		if err := p.Success(map[string]any{"status": "ok", "pushed": true}); err != nil {
			t.Fatalf("Success() error = %v", err)
		}

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, buf.String())
		}
		if result["status"] != "ok" {
			t.Errorf("status = %v, want ok", result["status"])
		}
	})

	t.Run("human mode prints message key", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, false, false)

		if err := p.Success(map[string]any{"message": "stored 2 keys"}); err != nil {
			t.Fatalf("Success() error = %v", err)
		}
		if !strings.Contains(buf.String(), "stored 2 keys") {
			t.Errorf("output missing message: %q", buf.String())
		}
	})
}

func TestPrinterError(t *testing.T) {
	t.Run("JSON mode outputs error and code", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, true, false)

		p.Error(NewSystemError("push failed"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, buf.String())
		}
		if result["error"] != "push failed" {
			t.Errorf("error = %v, want 'push failed'", result["error"])
		}
		if result["code"] != float64(ExitSystemError) {
			t.Errorf("code = %v, want %d", result["code"], ExitSystemError)
		}
	})

	t.Run("human mode writes to stderr writer", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p := NewPrinter(&out, false, false).WithStderr(&errOut)

		p.Error(NewUserError("bad input"))

		if out.Len() != 0 {
			t.Errorf("stdout should be empty, got %q", out.String())
		}
		if !strings.Contains(errOut.String(), "bad input") {
			t.Errorf("stderr missing error: %q", errOut.String())
		}
	})
}

func TestPrinterWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, false, false).WithStderr(&errOut)

	p.Warn("note for %s is not valid JSON", "abc123")

	if !strings.Contains(errOut.String(), "abc123") {
		t.Errorf("warning missing detail: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "Warning") {
		t.Errorf("warning missing label: %q", errOut.String())
	}
}

func TestPrinterInfo(t *testing.T) {
	t.Run("human mode writes to stderr", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p := NewPrinter(&out, false, false).WithStderr(&errOut)

		p.Info("no existing note for %s; creating", "abc123")

		if out.Len() != 0 {
			t.Errorf("stdout should be empty, got %q", out.String())
		}
		if !strings.Contains(errOut.String(), "abc123") {
			t.Errorf("stderr missing info: %q", errOut.String())
		}
	})

	t.Run("JSON mode is silent", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, true, false)

		p.Info("progress message")

		if buf.Len() != 0 {
			t.Errorf("JSON mode should suppress info, got %q", buf.String())
		}
	})
}

func TestKeyValueMap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, false)

	p.KeyValueMap(map[string]any{"b": "2", "a": "1", "c": 3})

	got := buf.String()
	aIdx := strings.Index(got, "a:")
	bIdx := strings.Index(got, "b:")
	cIdx := strings.Index(got, "c:")
	if aIdx < 0 || bIdx < 0 || cIdx < 0 {
		t.Fatalf("missing keys in output: %q", got)
	}
	if !(aIdx < bIdx && bIdx < cIdx) {
		t.Errorf("keys not sorted: %q", got)
	}
}
