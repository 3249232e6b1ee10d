package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cosmostic/cosmostic-server/internal/api/http/response"
	"github.com/cosmostic/cosmostic-server/internal/auth"
	"github.com/cosmostic/cosmostic-server/internal/logger"
	"github.com/cosmostic/cosmostic-server/internal/model"
	"github.com/cosmostic/cosmostic-server/internal/service"
)

// User serves equip-state reads and mutations. Reads are public; mutations
// require the caller to be the targeted user.
type User struct {
	equip          *service.Equip
	gate           *auth.Gate
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler instance.
func NewUser(equip *service.Equip, gate *auth.Gate, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{equip: equip, gate: gate, contextManager: contextManager, logger: logger}
}

func (h *User) requireSelf(w http.ResponseWriter, r *http.Request, targetID uuid.UUID) bool {
	callerID, ok := h.contextManager.GetCallerIDFromContext(r.Context())
	if !ok {
		response.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	if err := h.gate.RequireSelf(callerID, targetID); err != nil {
		handleError(w, err, "")
		return false
	}
	return true
}

// GetCape returns the user's active cape identifier.
func (h *User) GetCape(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamUUID(r, "userUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid user uuid")
		return
	}

	capeID, err := h.equip.GetActiveCape(r.Context(), userID)
	if err != nil {
		handleError(w, err, "Cape")
		return
	}

	response.WriteData(w, http.StatusOK, capeID.String())
}

// SetCape equips a cape for the user. A first equip creates the user record
// and answers 201.
func (h *User) SetCape(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamUUID(r, "userUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid user uuid")
		return
	}
	if !h.requireSelf(w, r, userID) {
		return
	}

	capeID, err := uuid.Parse(r.FormValue("cape_uuid"))
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid cape uuid")
		return
	}

	created, err := h.equip.SetActiveCape(r.Context(), userID, capeID)
	if err != nil {
		handleError(w, err, "Cape")
		return
	}

	if created {
		response.WriteMessage(w, http.StatusCreated, "Created")
		return
	}
	response.WriteMessage(w, http.StatusOK, "Updated")
}

// ClearCape removes the user's active cape.
func (h *User) ClearCape(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamUUID(r, "userUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid user uuid")
		return
	}
	if !h.requireSelf(w, r, userID) {
		return
	}

	if err := h.equip.ClearActiveCape(r.Context(), userID); err != nil {
		handleError(w, err, "Cape")
		return
	}

	response.WriteMessage(w, http.StatusOK, "Removed")
}

// GetAccessories returns the user's active accessory identifiers.
func (h *User) GetAccessories(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamUUID(r, "userUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid user uuid")
		return
	}

	ids, err := h.equip.ListActiveAccessories(r.Context(), userID)
	if err != nil {
		handleError(w, err, "Accessory")
		return
	}

	response.WriteData(w, http.StatusOK, ids)
}

// AddAccessory adds an accessory to the user's active list. A first equip
// creates the user record and answers 201.
func (h *User) AddAccessory(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamUUID(r, "userUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid user uuid")
		return
	}
	if !h.requireSelf(w, r, userID) {
		return
	}

	accessoryID, err := uuid.Parse(r.FormValue("accessory_uuid"))
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory uuid")
		return
	}

	created, err := h.equip.AddActiveAccessory(r.Context(), userID, accessoryID)
	if err != nil {
		handleError(w, err, "Accessory")
		return
	}

	if created {
		response.WriteMessage(w, http.StatusCreated, "Created")
		return
	}
	response.WriteMessage(w, http.StatusOK, "Added")
}

// RemoveAccessory removes an accessory from the user's active list.
func (h *User) RemoveAccessory(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamUUID(r, "userUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid user uuid")
		return
	}
	if !h.requireSelf(w, r, userID) {
		return
	}

	accessoryID, err := uuid.Parse(formParam(r, "accessory_uuid"))
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory uuid")
		return
	}

	if err := h.equip.RemoveActiveAccessory(r.Context(), userID, accessoryID); err != nil {
		handleError(w, err, "Accessory")
		return
	}

	response.WriteMessage(w, http.StatusOK, "Removed")
}
