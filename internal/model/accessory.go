package model

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccessoryStore defines persistence operations for accessories.
type AccessoryStore interface {
	List(ctx context.Context) ([]uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (Accessory, error)
	Create(ctx context.Context, accessory Accessory) (Accessory, error)
	Update(ctx context.Context, id uuid.UUID, patch AccessoryPatch) (Accessory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Category enumerates accessory categories.
type Category string

const (
	CategoryHats      Category = "hats"
	CategoryBackpacks Category = "backpacks"
	CategoryBody      Category = "body"
	CategoryHead      Category = "head"
	CategoryOthers    Category = "others"
)

// Categories is the closed set of valid accessory categories.
var Categories = []Category{CategoryHats, CategoryBackpacks, CategoryBody, CategoryHead, CategoryOthers}

// ParseCategory validates a category value against the fixed set.
func ParseCategory(value string) (Category, error) {
	for _, c := range Categories {
		if Category(value) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidCategory, value)
}

// Accessory represents an accessory catalog entry. The preview is mandatory,
// the texture is optional; both live in object storage keyed by ID.
type Accessory struct {
	ID         uuid.UUID
	Name       string
	Author     string
	Category   Category
	Model      json.RawMessage
	HasTexture bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccessoryPatch carries a partial accessory update. Nil fields keep the
// stored value; HasTexture is set by the service when a texture is uploaded.
type AccessoryPatch struct {
	Name       *string
	Author     *string
	Category   *Category
	Model      json.RawMessage
	HasTexture *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p AccessoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Author == nil && p.Category == nil && p.Model == nil && p.HasTexture == nil
}

// accessoryModelDoc mirrors the required shape of an accessory model document.
type accessoryModelDoc struct {
	Type        *string           `json:"type"`
	TextureSize []json.RawMessage `json:"textureSize"`
	Models      []json.RawMessage `json:"models"`
}

// ParseAccessoryModel validates an accessory model document: it must be a
// JSON object with a string "type", an integer array "textureSize" and an
// array "models". Returns the raw document for storage.
func ParseAccessoryModel(data []byte) (json.RawMessage, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidModel)
	}

	var doc accessoryModelDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if doc.Type == nil {
		return nil, fmt.Errorf("%w: missing field type", ErrInvalidModel)
	}
	if _, ok := probe["textureSize"]; !ok || doc.TextureSize == nil {
		return nil, fmt.Errorf("%w: missing field textureSize", ErrInvalidModel)
	}
	for _, raw := range doc.TextureSize {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("%w: textureSize must contain integers", ErrInvalidModel)
		}
	}
	if _, ok := probe["models"]; !ok || doc.Models == nil {
		return nil, fmt.Errorf("%w: missing field models", ErrInvalidModel)
	}

	return json.RawMessage(data), nil
}
