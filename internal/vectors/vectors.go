// Copyright (C) 2024 ASCON-Go Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package vectors loads hex-encoded test-vector fixtures from YAML files
// under testdata/. The cases shipped here are self-authored and
// illustrative — this repository does not carry a byte-exact official
// NIST/ASCON known-answer-test corpus (see DESIGN.md) — but the loader
// itself is written to take a real KAT file without modification, should
// one be dropped into testdata/ later: unset hex fields simply aren't
// checked against a fixed expectation.
package vectors

import (
	"encoding/hex"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// AEADCase is one ASCON-80pq-SIV fixture. CiphertextHex is optional: when
// empty, a loader's caller should only check the Seal/Open round trip;
// when present, it should also assert the exact ciphertext bytes.
type AEADCase struct {
	Name          string `json:"name"`
	KeyHex        string `json:"key"`
	NonceHex      string `json:"nonce"`
	ADHex         string `json:"ad"`
	PlaintextHex  string `json:"plaintext"`
	CiphertextHex string `json:"ciphertext,omitempty"`
}

// XOFCase is one ASCON-XOF/XOFA fixture.
type XOFCase struct {
	Name        string `json:"name"`
	Variant     string `json:"variant"` // "xof" or "xofa"
	MessageHex  string `json:"message"`
	OutputLen   int    `json:"outputLen"`
	DigestHex   string `json:"digest,omitempty"`
}

type aeadFile struct {
	Cases []AEADCase `json:"cases"`
}

type xofFile struct {
	Cases []XOFCase `json:"cases"`
}

// LoadAEADCases reads and decodes an AEAD fixture file.
func LoadAEADCases(path string) ([]AEADCase, error) {
	var f aeadFile
	if err := loadYAML(path, &f); err != nil {
		return nil, err
	}
	return f.Cases, nil
}

// LoadXOFCases reads and decodes an XOF fixture file.
func LoadXOFCases(path string) ([]XOFCase, error) {
	var f xofFile
	if err := loadYAML(path, &f); err != nil {
		return nil, err
	}
	return f.Cases, nil
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("vectors: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("vectors: parse %s: %w", path, err)
	}
	return nil
}

// DecodeHex decodes s, returning an empty (not nil) byte slice for an
// empty string. An absent field and an explicitly empty one both decode
// to that same empty slice.
func DecodeHex(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	return hex.DecodeString(s)
}
