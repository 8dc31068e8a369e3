// util/json.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// DuplicateJSONKey records an object key that appears more than once.
type DuplicateJSONKey struct {
	Path string // dotted path of the enclosing object, e.g. "path" or "aircraft"
	Key  string
}

// FindDuplicateJSONKeys returns the keys that are repeated within a
// single object anywhere in b. encoding/json silently keeps the last
// value for a repeated key, so this is the only way to catch them.
// Scanning stops at the first malformed token.
func FindDuplicateJSONKeys(b []byte) []DuplicateJSONKey {
	dec := json.NewDecoder(bytes.NewReader(b))
	var dups []DuplicateJSONKey
	_ = scanJSONValue(dec, nil, &dups)
	return dups
}

func scanJSONValue(dec *json.Decoder, path []string, dups *[]DuplicateJSONKey) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch tok {
	case json.Delim('{'):
		seen := make(map[string]bool)
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := kt.(string)
			if seen[key] {
				*dups = append(*dups, DuplicateJSONKey{Path: strings.Join(path, "."), Key: key})
			}
			seen[key] = true
			if err := scanJSONValue(dec, append(path, key), dups); err != nil {
				return err
			}
		}
		_, err = dec.Token() // '}'
		return err

	case json.Delim('['):
		for dec.More() {
			// Array elements report against the array's own path.
			if err := scanJSONValue(dec, path, dups); err != nil {
				return err
			}
		}
		_, err = dec.Token() // ']'
		return err

	default:
		return nil
	}
}

// DecodeJSONStrict unmarshals b into out, rejecting fields that out
// doesn't have. Syntax and type errors are reported with the line and
// character where they occurred.
func DecodeJSONStrict[T any](b []byte, out *T) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	err := dec.Decode(out)
	if err == nil {
		return nil
	}

	position := func(offset int64) (line, char int) {
		line, char = 1, 1
		for _, c := range b[:min(int(offset), len(b))] {
			if c == '\n' {
				line, char = line+1, 1
			} else {
				char++
			}
		}
		return
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		line, char := position(serr.Offset)
		return fmt.Errorf("line %d, character %d: %w", line, char, err)
	case errors.As(err, &terr):
		line, char := position(terr.Offset)
		return fmt.Errorf("line %d, character %d: %s value for %q invalid for type %s: %w",
			line, char, terr.Value, terr.Field, terr.Type, err)
	default:
		return err
	}
}
