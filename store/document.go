package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// readDocument decodes the JSON document at path into out. A missing file is
// reported as os.ErrNotExist for the caller to substitute its default.
func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// writeDocument replaces the document at path atomically: the new content is
// written to a temp file in the same directory and renamed over the old one,
// so a process killed mid-write never leaves a truncated collection behind.
func writeDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
