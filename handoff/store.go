package handoff

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

// Payload is the recommendation set another view computed and left behind
// for the chat session to pick up. Same wire shape as the manual
// recommendation response.
type Payload struct {
	Courses []model.ManualCourse `json:"추천 강의"`
}

// Store is a single-slot handoff file. The reader consumes the slot: a
// successful Take deletes the file so a later session start cannot ingest
// the same payload twice.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Take reads and deletes the payload. Returns (nil, nil) when no payload is
// staged.
func (s *Store) Take() (*Payload, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return &p, nil
}

// Put stages a payload. Used by the view that computes recommendations.
func (s *Store) Put(p *Payload) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
