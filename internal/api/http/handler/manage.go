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

// Manage serves catalog administration. Every operation requires an
// authenticated caller from the admin set.
type Manage struct {
	catalog        *service.Catalog
	gate           *auth.Gate
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewManage creates a new Manage handler instance.
func NewManage(catalog *service.Catalog, gate *auth.Gate, contextManager model.ContextManager, logger *logger.Logger) *Manage {
	return &Manage{catalog: catalog, gate: gate, contextManager: contextManager, logger: logger}
}

type createdInfo struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	UUID    uuid.UUID `json:"uuid"`
}

func (h *Manage) requireAdmin(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	callerID, ok := h.contextManager.GetCallerIDFromContext(r.Context())
	if !ok {
		response.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	if err := h.gate.RequireAdmin(callerID); err != nil {
		handleError(w, err, "")
		return uuid.Nil, false
	}
	return callerID, true
}

// CreateCape creates a new cape from a multipart form.
func (h *Manage) CreateCape(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	texture, err := formFileBytes(r, "cape_texture")
	if err != nil || texture == nil {
		response.WriteMessage(w, http.StatusBadRequest, "Cape texture is required")
		return
	}

	cape, err := h.catalog.CreateCape(r.Context(), service.CreateCapeParams{
		Name:    r.FormValue("cape_name"),
		Author:  r.FormValue("author"),
		Texture: texture,
	})
	if err != nil {
		handleError(w, err, "Cape")
		return
	}

	h.logger.Info("admin created cape", "caller_id", callerID, "cape_id", cape.ID)
	response.WriteData(w, http.StatusCreated, createdInfo{Code: http.StatusCreated, Message: "Created", UUID: cape.ID})
}

// UpdateCape applies a partial cape update from a multipart form.
func (h *Manage) UpdateCape(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	capeID, err := uuid.Parse(r.FormValue("cape_uuid"))
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid cape uuid")
		return
	}

	texture, err := formFileBytes(r, "cape_texture")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid cape texture")
		return
	}

	if _, err := h.catalog.UpdateCape(r.Context(), capeID, service.UpdateCapeParams{
		Name:    formValuePtr(r, "cape_name"),
		Author:  formValuePtr(r, "author"),
		Texture: texture,
	}); err != nil {
		handleError(w, err, "Cape")
		return
	}

	h.logger.Info("admin updated cape", "caller_id", callerID, "cape_id", capeID)
	response.WriteMessage(w, http.StatusOK, "Updated")
}

// DeleteCape removes a cape from the catalog.
func (h *Manage) DeleteCape(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	capeID, err := uuid.Parse(formParam(r, "cape_uuid"))
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid cape uuid")
		return
	}

	if err := h.catalog.DeleteCape(r.Context(), capeID); err != nil {
		handleError(w, err, "Cape")
		return
	}

	h.logger.Info("admin deleted cape", "caller_id", callerID, "cape_id", capeID)
	response.WriteMessage(w, http.StatusOK, "Deleted")
}

// CreateAccessory creates a new accessory from a multipart form. The preview
// part is required, the texture part is optional.
func (h *Manage) CreateAccessory(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	preview, err := formFileBytes(r, "accessory_preview")
	if err != nil || preview == nil {
		response.WriteMessage(w, http.StatusBadRequest, "Accessory preview is required")
		return
	}
	texture, err := formFileBytes(r, "accessory_texture")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory texture")
		return
	}

	accessory, err := h.catalog.CreateAccessory(r.Context(), service.CreateAccessoryParams{
		Name:     r.FormValue("accessory_name"),
		Author:   r.FormValue("author"),
		Category: r.FormValue("accessory_category"),
		Model:    []byte(r.FormValue("accessory_model")),
		Texture:  texture,
		Preview:  preview,
	})
	if err != nil {
		handleError(w, err, "Accessory")
		return
	}

	h.logger.Info("admin created accessory", "caller_id", callerID, "accessory_id", accessory.ID)
	response.WriteData(w, http.StatusCreated, createdInfo{Code: http.StatusCreated, Message: "Created", UUID: accessory.ID})
}

// UpdateAccessory applies a partial accessory update from a multipart form.
func (h *Manage) UpdateAccessory(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	accessoryID, err := uuid.Parse(r.FormValue("accessory_uuid"))
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory uuid")
		return
	}

	texture, err := formFileBytes(r, "accessory_texture")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory texture")
		return
	}
	preview, err := formFileBytes(r, "accessory_preview")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory preview")
		return
	}

	params := service.UpdateAccessoryParams{
		Name:     formValuePtr(r, "accessory_name"),
		Author:   formValuePtr(r, "author"),
		Category: formValuePtr(r, "accessory_category"),
		Texture:  texture,
		Preview:  preview,
	}
	if modelDoc := r.FormValue("accessory_model"); modelDoc != "" {
		params.Model = []byte(modelDoc)
	}

	if _, err := h.catalog.UpdateAccessory(r.Context(), accessoryID, params); err != nil {
		handleError(w, err, "Accessory")
		return
	}

	h.logger.Info("admin updated accessory", "caller_id", callerID, "accessory_id", accessoryID)
	response.WriteMessage(w, http.StatusOK, "Updated")
}

// DeleteAccessory removes an accessory from the catalog.
func (h *Manage) DeleteAccessory(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	accessoryID, err := uuid.Parse(formParam(r, "accessory_uuid"))
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory uuid")
		return
	}

	if err := h.catalog.DeleteAccessory(r.Context(), accessoryID); err != nil {
		handleError(w, err, "Accessory")
		return
	}

	h.logger.Info("admin deleted accessory", "caller_id", callerID, "accessory_id", accessoryID)
	response.WriteMessage(w, http.StatusOK, "Deleted")
}
