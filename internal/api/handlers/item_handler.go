package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/itemboard/itemboard-be/internal/auth"
	"github.com/itemboard/itemboard-be/internal/services"
)

// ItemHandler handles HTTP requests for the item records.
type ItemHandler struct {
	service services.ItemServiceProvider
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service services.ItemServiceProvider) *ItemHandler {
	return &ItemHandler{service: service}
}

// ItemPayload defines the structure for create and update requests.
type ItemPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func ownerID(r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// GetAll lists the authenticated account's items.
func (h *ItemHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Could not retrieve user from token",
		})
		return
	}

	items, err := h.service.GetAll(owner)
	if err != nil {
		log.Error().Err(err).Str("owner_id", owner).Msg("Failed to list items")
		writeError(w, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Get retrieves a single item.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Could not retrieve user from token",
		})
		return
	}

	item, err := h.service.Get(owner, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create stores a new item.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Could not retrieve user from token",
		})
		return
	}

	var payload ItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	item, err := h.service.Create(owner, payload.Name, payload.Price)
	if err != nil {
		writeError(w, err, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update rewrites an item's name and price.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Could not retrieve user from token",
		})
		return
	}

	var payload ItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	item, err := h.service.Update(owner, chi.URLParam(r, "id"), payload.Name, payload.Price)
	if err != nil {
		writeError(w, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete removes an item.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Could not retrieve user from token",
		})
		return
	}

	if err := h.service.Delete(owner, chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
