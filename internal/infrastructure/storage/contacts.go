package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trustguard/internal/domain/models"
	"trustguard/pkg/logger"
)

var (
	// ErrContactExists is returned when adding a contact whose name is
	// already taken.
	ErrContactExists = errors.New("contact already exists")

	// ErrContactNotFound is returned when a named contact does not exist.
	ErrContactNotFound = errors.New("contact not found")
)

// ContactStore keeps trusted contacts in a flat JSON file. Safe words
// are stored as one-way hashes, never in cleartext. A missing or
// corrupt file reads as an empty list so a fresh install just works.
type ContactStore struct {
	path   string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewContactStore creates a store backed by the given file path.
func NewContactStore(path string, log *logger.Logger) *ContactStore {
	return &ContactStore{
		path:   path,
		logger: log.WithComponent("contacts"),
	}
}

// HashSafeWord derives the stored form of a safe word: SHA-256 over
// the trimmed, lower-cased phrase. Hashing is deterministic so
// verification is a plain hash-equality check.
func HashSafeWord(word string) string {
	normalized := strings.ToLower(strings.TrimSpace(word))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// List returns all stored contacts. The slice is never nil.
func (s *ContactStore) List() ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add stores a new contact with a hashed safe word. Names are unique,
// compared case-insensitively.
func (s *ContactStore) Add(name, relation, phone, safeWord string) (models.Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Contact{}, fmt.Errorf("contact name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return models.Contact{}, err
	}

	for _, c := range contacts {
		if strings.EqualFold(c.Name, name) {
			return models.Contact{}, fmt.Errorf("%q: %w", name, ErrContactExists)
		}
	}

	contact := models.Contact{
		ID:           uuid.New(),
		Name:         name,
		Relation:     relation,
		Phone:        phone,
		SafeWordHash: HashSafeWord(safeWord),
		CreatedAt:    time.Now().UTC(),
	}

	contacts = append(contacts, contact)
	if err := s.save(contacts); err != nil {
		return models.Contact{}, err
	}

	s.logger.Info().Str("name", contact.Name).Msg("contact added")
	return contact, nil
}

// Remove deletes a contact by name.
func (s *ContactStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return err
	}

	kept := contacts[:0]
	removed := false
	for _, c := range contacts {
		if strings.EqualFold(c.Name, name) {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return fmt.Errorf("%q: %w", name, ErrContactNotFound)
	}

	if err := s.save(kept); err != nil {
		return err
	}

	s.logger.Info().Str("name", name).Msg("contact removed")
	return nil
}

// Find returns the contact with the given name.
func (s *ContactStore) Find(name string) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return models.Contact{}, err
	}
	for _, c := range contacts {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return models.Contact{}, fmt.Errorf("%q: %w", name, ErrContactNotFound)
}

// VerifySafeWord checks a candidate phrase against the stored hash for
// the named contact.
func (s *ContactStore) VerifySafeWord(name, attempt string) (bool, error) {
	contact, err := s.Find(name)
	if err != nil {
		return false, err
	}
	return contact.SafeWordHash == HashSafeWord(attempt), nil
}

// load reads the contacts file. Missing and corrupt files both read as
// an empty list; corruption is logged, not fatal.
func (s *ContactStore) load() ([]models.Contact, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Contact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts file: %w", err)
	}

	var contacts []models.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("contacts file is corrupt, starting empty")
		return []models.Contact{}, nil
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

// save writes the full contact list, creating the data directory on
// first use.
func (s *ContactStore) save(contacts []models.Contact) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal contacts: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write contacts file: %w", err)
	}
	return nil
}
