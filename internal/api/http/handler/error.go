package handler

import (
	"errors"
	"net/http"

	"github.com/cosmostic/cosmostic-server/internal/api/http/response"
	"github.com/cosmostic/cosmostic-server/internal/model"
)

// handleError translates service errors into boundary status codes in one
// place. The subject names the catalog entity for messages that mention one.
func handleError(w http.ResponseWriter, err error, subject string) {
	switch {
	case errors.Is(err, model.ErrNoTexture):
		response.WriteMessage(w, http.StatusNotFound, "Accessory doesn't have texture")
	case errors.Is(err, model.ErrUserNotFound):
		response.WriteMessage(w, http.StatusNotFound, "User not found or not registered")
	case errors.Is(err, model.ErrAccountNotFound):
		response.WriteMessage(w, http.StatusNotFound, "User doesn't exist")
	case errors.Is(err, model.ErrNotActive):
		response.WriteMessage(w, http.StatusNotFound, "Accessory not active")
	case errors.Is(err, model.ErrNotFound):
		response.WriteMessage(w, http.StatusNotFound, subject+" not found")
	case errors.Is(err, model.ErrNameConflict):
		response.WriteMessage(w, http.StatusConflict, subject+" name already used")
	case errors.Is(err, model.ErrAlreadyActive):
		response.WriteMessage(w, http.StatusConflict, "Accessory already active")
	case errors.Is(err, model.ErrInvalidCategory):
		response.WriteMessage(w, http.StatusBadRequest, "Accessory category doesn't exist")
	case errors.Is(err, model.ErrInvalidModel):
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory model")
	case errors.Is(err, model.ErrInvalidInput):
		response.WriteMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrUnauthenticated):
		response.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, model.ErrLimitExceeded):
		response.WriteMessage(w, http.StatusForbidden, "Too many accessories")
	case errors.Is(err, model.ErrForbidden):
		response.WriteMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, model.ErrNoActiveCape):
		response.WriteMessage(w, http.StatusUnprocessableEntity, "No active cape")
	case errors.Is(err, model.ErrNoActiveAccessories):
		response.WriteMessage(w, http.StatusUnprocessableEntity, "No active accessories")
	case errors.Is(err, model.ErrStoreUnavailable):
		response.WriteMessage(w, http.StatusServiceUnavailable, "Storage unavailable")
	default:
		response.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
