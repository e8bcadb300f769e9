package metadata

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/gorewood/notekv/internal/output"
)

// Resolve produces a Map from exactly one of the two input sources.
// values is inline key=value text; valuesFile is a path to a JSON object file.
// Presence is judged after trimming: both present or both absent is a user
// error (fail-fast, no partial acceptance).
func Resolve(values, valuesFile string) (Map, error) {
	inline := strings.TrimSpace(values)
	file := strings.TrimSpace(valuesFile)

	switch {
	case inline != "" && file != "":
		return nil, output.NewUserError("values and values-file are mutually exclusive; provide only one")
	case inline == "" && file == "":
		return nil, output.NewUserError("no values provided; set values or values-file")
	case inline != "":
		return ParseInline(values)
	default:
		return ParseFile(file)
	}
}

// ParseInline parses newline-separated key=value pairs into a Map.
// Each line is split on the first '='; key and value must both trim to
// non-empty strings. Blank lines are skipped. A single bad line rejects the
// entire input, reporting the 1-based line numbers of every offending line.
func ParseInline(text string) (Map, error) {
	values := make(Map)
	var badLines []string

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, ok := splitPair(line)
		if !ok {
			badLines = append(badLines, strconv.Itoa(i+1))
			continue
		}
		values[key] = value
	}

	if len(badLines) > 0 {
		return nil, output.NewUserError(
			"invalid key=value pairs on line(s) " + strings.Join(badLines, ", "))
	}
	return values, nil
}

// splitPair extracts a trimmed key and value from a key=value line.
// The value may itself contain '='; only the first one splits.
func splitPair(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(k)
	value = strings.TrimSpace(v)
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// ParseFile reads a JSON file whose top-level value must be an object.
// Arrays and primitives are rejected. Object field values are taken as-is,
// including non-string values.
func ParseFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("cannot read values file: "+path, err)
	}

	values, err := decodeObject(data)
	if err != nil {
		return nil, output.NewUserError("values file " + path + ": " + err.Error())
	}
	return values, nil
}

// decodeObject parses JSON bytes, requiring a top-level object.
func decodeObject(data []byte) (Map, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, output.NewUserError("invalid JSON: " + err.Error())
	}

	obj, ok := top.(map[string]any)
	if !ok {
		return nil, output.NewUserError("top-level JSON value must be an object")
	}
	return Map(obj), nil
}
