package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// File persists the session slots as a single JSON document on disk, the
// desktop/CLI equivalent of browser local storage. Writes go through a
// temp-file rename so a crash mid-write leaves either the old or the new
// session, never a torn one.
type File struct {
	mu   sync.Mutex
	path string
}

// Profile bytes are opaque to the store, so they are carried base64-encoded
// rather than inlined as JSON.
type filePayload struct {
	Token   string `json:"auth_token"`
	Profile []byte `json:"user_data"`
}

// NewFile creates a file-backed store at path. The file is created on the
// first Set; a missing or unreadable file reads as absent.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Token() (string, bool) {
	payload, ok := f.read()
	if !ok || payload.Token == "" {
		return "", false
	}
	return payload.Token, true
}

func (f *File) Profile() ([]byte, bool) {
	payload, ok := f.read()
	if !ok || payload.Token == "" {
		return nil, false
	}
	return payload.Profile, true
}

func (f *File) Set(token string, profile []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(filePayload{Token: token, Profile: profile})
	if err != nil {
		return
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, f.path)
}

func (f *File) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = os.Remove(f.path)
}

func (f *File) read() (filePayload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var payload filePayload
	data, err := os.ReadFile(f.path)
	if err != nil {
		return payload, false
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, false
	}
	return payload, true
}
