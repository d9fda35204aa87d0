package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"trustguard/internal/infrastructure/storage"
	"trustguard/pkg/logger"
)

// ContactsHandler handles trusted-contact management
type ContactsHandler struct {
	store  *storage.ContactStore
	logger *logger.Logger
}

// NewContactsHandler creates a new ContactsHandler
func NewContactsHandler(store *storage.ContactStore, log *logger.Logger) *ContactsHandler {
	return &ContactsHandler{
		store:  store,
		logger: log.WithComponent("contacts_handler"),
	}
}

// ContactView is the API shape of a contact. Safe word hashes stay in
// the store and never leave it.
type ContactView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Relation  string    `json:"relation,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type addContactRequest struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
	SafeWord string `json:"safe_word"`
}

type verifyRequest struct {
	Phrase string `json:"phrase"`
}

// List handles GET /api/v1/contacts
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.store.List()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list contacts")
		http.Error(w, "Failed to list contacts", http.StatusInternalServerError)
		return
	}

	views := make([]ContactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, ContactView{
			ID:        c.ID,
			Name:      c.Name,
			Relation:  c.Relation,
			Phone:     c.Phone,
			CreatedAt: c.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"contacts": views,
		"count":    len(views),
	})
}

// Add handles POST /api/v1/contacts
func (h *ContactsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Contact name is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.SafeWord) == "" {
		http.Error(w, "Safe word is required", http.StatusBadRequest)
		return
	}

	contact, err := h.store.Add(req.Name, req.Relation, req.Phone, req.SafeWord)
	if err != nil {
		if errors.Is(err, storage.ErrContactExists) {
			http.Error(w, "Contact already exists", http.StatusConflict)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to add contact")
		http.Error(w, "Failed to add contact", http.StatusInternalServerError)
		return
	}

	h.logger.Info().Str("name", contact.Name).Msg("Trusted contact added")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ContactView{
		ID:        contact.ID,
		Name:      contact.Name,
		Relation:  contact.Relation,
		Phone:     contact.Phone,
		CreatedAt: contact.CreatedAt,
	})
}

// Remove handles DELETE /api/v1/contacts/{name}
func (h *ContactsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.store.Remove(name); err != nil {
		if errors.Is(err, storage.ErrContactNotFound) {
			http.Error(w, "Contact not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to remove contact")
		http.Error(w, "Failed to remove contact", http.StatusInternalServerError)
		return
	}

	h.logger.Info().Str("name", name).Msg("Trusted contact removed")
	w.WriteHeader(http.StatusNoContent)
}

// Verify handles POST /api/v1/contacts/{name}/verify. The attempted
// phrase is never logged.
func (h *ContactsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	verified, err := h.store.VerifySafeWord(name, req.Phrase)
	if err != nil {
		if errors.Is(err, storage.ErrContactNotFound) {
			http.Error(w, "Contact not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to verify safe word")
		http.Error(w, "Failed to verify safe word", http.StatusInternalServerError)
		return
	}

	h.logger.Info().Str("name", name).Bool("verified", verified).Msg("Safe word verification")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"verified": verified})
}
