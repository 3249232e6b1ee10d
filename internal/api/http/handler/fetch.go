package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/cosmostic/cosmostic-server/internal/api/http/response"
	"github.com/cosmostic/cosmostic-server/internal/logger"
	"github.com/cosmostic/cosmostic-server/internal/service"
)

// Fetch serves public catalog reads.
type Fetch struct {
	catalog *service.Catalog
	logger  *logger.Logger
}

// NewFetch creates a new Fetch handler instance.
func NewFetch(catalog *service.Catalog, logger *logger.Logger) *Fetch {
	return &Fetch{catalog: catalog, logger: logger}
}

type capeInfo struct {
	UUID    uuid.UUID `json:"uuid"`
	Name    string    `json:"name"`
	Author  string    `json:"author"`
	Texture string    `json:"texture"`
	Preview string    `json:"preview"`
}

type accessoryInfo struct {
	UUID     uuid.UUID `json:"uuid"`
	Name     string    `json:"name"`
	Author   string    `json:"author"`
	Category string    `json:"category"`
	Preview  string    `json:"preview"`
	Texture  *string   `json:"texture"`
}

// ListCapes returns all cape identifiers.
func (h *Fetch) ListCapes(w http.ResponseWriter, r *http.Request) {
	ids, err := h.catalog.ListCapes(r.Context())
	if err != nil {
		h.logger.Error("failed to list capes", "error", err)
		handleError(w, err, "Cape")
		return
	}
	response.WriteData(w, http.StatusOK, ids)
}

// GetCape returns cape metadata with links to its images.
func (h *Fetch) GetCape(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "capeUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid cape uuid")
		return
	}

	cape, err := h.catalog.GetCape(r.Context(), id)
	if err != nil {
		handleError(w, err, "Cape")
		return
	}

	response.WriteData(w, http.StatusOK, capeInfo{
		UUID:    cape.ID,
		Name:    cape.Name,
		Author:  cape.Author,
		Texture: fmt.Sprintf("/fetch/cape/%s/texture", cape.ID),
		Preview: fmt.Sprintf("/fetch/cape/%s/preview", cape.ID),
	})
}

// GetCapeTexture streams the cape texture image.
func (h *Fetch) GetCapeTexture(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "capeUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid cape uuid")
		return
	}

	reader, err := h.catalog.GetCapeTexture(r.Context(), id)
	if err != nil {
		handleError(w, err, "Cape")
		return
	}
	defer reader.Close()

	response.WritePNG(w, reader)
}

// GetCapePreview streams the cape preview image.
func (h *Fetch) GetCapePreview(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "capeUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid cape uuid")
		return
	}

	reader, err := h.catalog.GetCapePreview(r.Context(), id)
	if err != nil {
		handleError(w, err, "Cape")
		return
	}
	defer reader.Close()

	response.WritePNG(w, reader)
}

// ListAccessories returns all accessory identifiers.
func (h *Fetch) ListAccessories(w http.ResponseWriter, r *http.Request) {
	ids, err := h.catalog.ListAccessories(r.Context())
	if err != nil {
		h.logger.Error("failed to list accessories", "error", err)
		handleError(w, err, "Accessory")
		return
	}
	response.WriteData(w, http.StatusOK, ids)
}

// GetAccessory returns accessory metadata. The texture link is null for
// accessories without one.
func (h *Fetch) GetAccessory(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "accessoryUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory uuid")
		return
	}

	accessory, err := h.catalog.GetAccessory(r.Context(), id)
	if err != nil {
		handleError(w, err, "Accessory")
		return
	}

	info := accessoryInfo{
		UUID:     accessory.ID,
		Name:     accessory.Name,
		Author:   accessory.Author,
		Category: string(accessory.Category),
		Preview:  fmt.Sprintf("/fetch/accessory/%s/preview", accessory.ID),
	}
	if accessory.HasTexture {
		texture := fmt.Sprintf("/fetch/accessory/%s/texture", accessory.ID)
		info.Texture = &texture
	}

	response.WriteData(w, http.StatusOK, info)
}

// GetAccessoryTexture streams the accessory texture image.
func (h *Fetch) GetAccessoryTexture(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "accessoryUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory uuid")
		return
	}

	reader, err := h.catalog.GetAccessoryTexture(r.Context(), id)
	if err != nil {
		handleError(w, err, "Accessory")
		return
	}
	defer reader.Close()

	response.WritePNG(w, reader)
}

// GetAccessoryPreview streams the accessory preview image.
func (h *Fetch) GetAccessoryPreview(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "accessoryUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory uuid")
		return
	}

	reader, err := h.catalog.GetAccessoryPreview(r.Context(), id)
	if err != nil {
		handleError(w, err, "Accessory")
		return
	}
	defer reader.Close()

	response.WritePNG(w, reader)
}

// GetAccessoryModel returns the accessory model document.
func (h *Fetch) GetAccessoryModel(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "accessoryUUID")
	if err != nil {
		response.WriteMessage(w, http.StatusBadRequest, "Invalid accessory uuid")
		return
	}

	doc, err := h.catalog.GetAccessoryModel(r.Context(), id)
	if err != nil {
		handleError(w, err, "Accessory")
		return
	}

	response.WriteRawJSON(w, http.StatusOK, doc)
}
