// Package blacklist owns the flat newline-delimited file of blocked user ids.
// Every membership check re-reads the file, trading file I/O per interaction
// for never serving stale state.
package blacklist

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Service reads and mutates the blacklist file. Mutations are whole-file
// read-modify-write; concurrent external writers are not supported.
type Service struct {
	path string
}

func New(path string) *Service {
	return &Service{path: path}
}

// IsBlacklisted reports whether userID is present. A missing file means an
// empty blacklist; read errors are logged and treated as not blacklisted.
func (s *Service) IsBlacklisted(userID string) bool {
	ids, err := s.read()
	if err != nil {
		log.Error().Err(err).Msg("failed to read blacklist")
		return false
	}
	for _, id := range ids {
		if id == userID {
			return true
		}
	}
	return false
}

// List returns all blacklisted user ids in file order.
func (s *Service) List() ([]string, error) {
	return s.read()
}

// Add appends userID. Adding an id already present is a no-op; the bool
// reports whether the set changed.
func (s *Service) Add(userID string) (bool, error) {
	ids, err := s.read()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == userID {
			return false, nil
		}
	}
	return true, s.write(append(ids, userID))
}

// Remove deletes userID. Removing an absent id is a no-op; the bool reports
// whether the set changed.
func (s *Service) Remove(userID string) (bool, error) {
	ids, err := s.read()
	if err != nil {
		return false, err
	}

	kept := ids[:0]
	for _, id := range ids {
		if id != userID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return false, nil
	}
	return true, s.write(kept)
}

func (s *Service) read() ([]string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var ids []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ids = append(ids, line)
		}
	}
	return ids, nil
}

func (s *Service) write(ids []string) error {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(id)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
