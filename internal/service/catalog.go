package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/cosmostic/cosmostic-server/internal/asset"
	"github.com/cosmostic/cosmostic-server/internal/logger"
	"github.com/cosmostic/cosmostic-server/internal/model"
)

// Catalog implements cape and accessory administration and reads. Metadata
// lives in the catalog stores, image bytes in asset storage keyed by entity
// ID.
type Catalog struct {
	capeStore      model.CapeStore
	accessoryStore model.AccessoryStore
	storage        model.AssetStorage
	logger         *logger.Logger
}

func NewCatalog(
	capeStore model.CapeStore,
	accessoryStore model.AccessoryStore,
	storage model.AssetStorage,
	logger *logger.Logger,
) *Catalog {
	return &Catalog{
		capeStore:      capeStore,
		accessoryStore: accessoryStore,
		storage:        storage,
		logger:         logger,
	}
}

func capeTextureKey(id uuid.UUID) string      { return fmt.Sprintf("capes/%s/texture.png", id) }
func capePreviewKey(id uuid.UUID) string      { return fmt.Sprintf("capes/%s/preview.png", id) }
func accessoryTextureKey(id uuid.UUID) string { return fmt.Sprintf("accessories/%s/texture.png", id) }
func accessoryPreviewKey(id uuid.UUID) string { return fmt.Sprintf("accessories/%s/preview.png", id) }

// CreateCapeParams contains parameters to create a cape.
type CreateCapeParams struct {
	Name    string
	Author  string
	Texture []byte
}

// UpdateCapeParams contains a partial cape update. Nil fields are left alone.
type UpdateCapeParams struct {
	Name    *string
	Author  *string
	Texture []byte
}

func (s *Catalog) ListCapes(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := s.capeStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list capes: %w", err)
	}
	return ids, nil
}

func (s *Catalog) GetCape(ctx context.Context, id uuid.UUID) (model.Cape, error) {
	cape, err := s.capeStore.GetByID(ctx, id)
	if err != nil {
		return model.Cape{}, err
	}
	return cape, nil
}

func (s *Catalog) GetCapeTexture(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	if _, err := s.capeStore.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.download(ctx, capeTextureKey(id))
}

func (s *Catalog) GetCapePreview(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	if _, err := s.capeStore.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.download(ctx, capePreviewKey(id))
}

// CreateCape validates the texture, derives its preview and persists both
// atomically from the caller's perspective: assets are uploaded first and
// removed again when the metadata insert fails.
func (s *Catalog) CreateCape(ctx context.Context, params CreateCapeParams) (model.Cape, error) {
	if err := model.ValidateName(params.Name); err != nil {
		return model.Cape{}, err
	}
	if err := model.ValidateName(params.Author); err != nil {
		return model.Cape{}, err
	}

	texture, err := asset.Validate(params.Texture, asset.ClassCapeTexture)
	if err != nil {
		return model.Cape{}, err
	}
	preview, err := asset.CapePreview(texture)
	if err != nil {
		return model.Cape{}, err
	}

	cape := model.Cape{
		ID:     uuid.New(),
		Name:   params.Name,
		Author: params.Author,
	}

	if err := s.uploadCapeAssets(ctx, cape.ID, texture, preview); err != nil {
		return model.Cape{}, err
	}

	saved, err := s.capeStore.Create(ctx, cape)
	if err != nil {
		s.removeAssets(ctx, capeTextureKey(cape.ID), capePreviewKey(cape.ID))
		if errors.Is(err, model.ErrNameConflict) {
			return model.Cape{}, err
		}
		return model.Cape{}, fmt.Errorf("failed to create cape: %w", err)
	}

	s.logger.Info("created new cape", "cape_id", saved.ID, "name", saved.Name)
	return saved, nil
}

// UpdateCape applies a partial update. A re-supplied texture regenerates the
// preview.
func (s *Catalog) UpdateCape(ctx context.Context, id uuid.UUID, params UpdateCapeParams) (model.Cape, error) {
	if params.Name != nil {
		if err := model.ValidateName(*params.Name); err != nil {
			return model.Cape{}, err
		}
	}
	if params.Author != nil {
		if err := model.ValidateName(*params.Author); err != nil {
			return model.Cape{}, err
		}
	}

	var texture, preview []byte
	if params.Texture != nil {
		var err error
		texture, err = asset.Validate(params.Texture, asset.ClassCapeTexture)
		if err != nil {
			return model.Cape{}, err
		}
		preview, err = asset.CapePreview(texture)
		if err != nil {
			return model.Cape{}, err
		}
	}

	// Assets go up before the metadata patch so an upload failure leaves the
	// record untouched. Uploads for a cape that turns out not to exist are
	// removed again.
	if texture != nil {
		if err := s.uploadCapeAssets(ctx, id, texture, preview); err != nil {
			return model.Cape{}, err
		}
	}

	saved, err := s.capeStore.Update(ctx, id, model.CapePatch{Name: params.Name, Author: params.Author})
	if err != nil {
		if texture != nil && errors.Is(err, model.ErrNotFound) {
			s.removeAssets(ctx, capeTextureKey(id), capePreviewKey(id))
		}
		return model.Cape{}, err
	}

	s.logger.Info("updated cape", "cape_id", id)
	return saved, nil
}

// DeleteCape removes the cape and its assets. Clearing user references
// happens inside the store delete; asset removal failures are logged, the
// bytes become unreachable either way.
func (s *Catalog) DeleteCape(ctx context.Context, id uuid.UUID) error {
	if err := s.capeStore.Delete(ctx, id); err != nil {
		return err
	}
	s.removeAssets(ctx, capeTextureKey(id), capePreviewKey(id))

	s.logger.Info("deleted cape", "cape_id", id)
	return nil
}

// CreateAccessoryParams contains parameters to create an accessory. Texture
// is optional, everything else is required.
type CreateAccessoryParams struct {
	Name     string
	Author   string
	Category string
	Model    []byte
	Texture  []byte
	Preview  []byte
}

// UpdateAccessoryParams contains a partial accessory update.
type UpdateAccessoryParams struct {
	Name     *string
	Author   *string
	Category *string
	Model    []byte
	Texture  []byte
	Preview  []byte
}

func (s *Catalog) ListAccessories(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := s.accessoryStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accessories: %w", err)
	}
	return ids, nil
}

func (s *Catalog) GetAccessory(ctx context.Context, id uuid.UUID) (model.Accessory, error) {
	accessory, err := s.accessoryStore.GetByID(ctx, id)
	if err != nil {
		return model.Accessory{}, err
	}
	return accessory, nil
}

// GetAccessoryTexture distinguishes a missing accessory from an accessory
// that simply has no texture.
func (s *Catalog) GetAccessoryTexture(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	accessory, err := s.accessoryStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !accessory.HasTexture {
		return nil, model.ErrNoTexture
	}
	return s.download(ctx, accessoryTextureKey(id))
}

func (s *Catalog) GetAccessoryPreview(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	if _, err := s.accessoryStore.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.download(ctx, accessoryPreviewKey(id))
}

func (s *Catalog) GetAccessoryModel(ctx context.Context, id uuid.UUID) ([]byte, error) {
	accessory, err := s.accessoryStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return accessory.Model, nil
}

func (s *Catalog) CreateAccessory(ctx context.Context, params CreateAccessoryParams) (model.Accessory, error) {
	if err := model.ValidateName(params.Name); err != nil {
		return model.Accessory{}, err
	}
	if err := model.ValidateName(params.Author); err != nil {
		return model.Accessory{}, err
	}
	category, err := model.ParseCategory(params.Category)
	if err != nil {
		return model.Accessory{}, err
	}
	modelDoc, err := model.ParseAccessoryModel(params.Model)
	if err != nil {
		return model.Accessory{}, err
	}
	preview, err := asset.Validate(params.Preview, asset.ClassAccessoryPreview)
	if err != nil {
		return model.Accessory{}, err
	}
	var texture []byte
	if params.Texture != nil {
		texture, err = asset.Validate(params.Texture, asset.ClassAccessoryTexture)
		if err != nil {
			return model.Accessory{}, err
		}
	}

	accessory := model.Accessory{
		ID:         uuid.New(),
		Name:       params.Name,
		Author:     params.Author,
		Category:   category,
		Model:      modelDoc,
		HasTexture: texture != nil,
	}

	if err := s.storage.Upload(ctx, accessoryPreviewKey(accessory.ID), bytes.NewReader(preview)); err != nil {
		return model.Accessory{}, fmt.Errorf("failed to upload preview: %w", err)
	}
	if texture != nil {
		if err := s.storage.Upload(ctx, accessoryTextureKey(accessory.ID), bytes.NewReader(texture)); err != nil {
			s.removeAssets(ctx, accessoryPreviewKey(accessory.ID))
			return model.Accessory{}, fmt.Errorf("failed to upload texture: %w", err)
		}
	}

	saved, err := s.accessoryStore.Create(ctx, accessory)
	if err != nil {
		s.removeAssets(ctx, accessoryPreviewKey(accessory.ID), accessoryTextureKey(accessory.ID))
		if errors.Is(err, model.ErrNameConflict) {
			return model.Accessory{}, err
		}
		return model.Accessory{}, fmt.Errorf("failed to create accessory: %w", err)
	}

	s.logger.Info("created new accessory", "accessory_id", saved.ID, "name", saved.Name)
	return saved, nil
}

func (s *Catalog) UpdateAccessory(ctx context.Context, id uuid.UUID, params UpdateAccessoryParams) (model.Accessory, error) {
	patch := model.AccessoryPatch{Name: params.Name, Author: params.Author}

	if params.Name != nil {
		if err := model.ValidateName(*params.Name); err != nil {
			return model.Accessory{}, err
		}
	}
	if params.Author != nil {
		if err := model.ValidateName(*params.Author); err != nil {
			return model.Accessory{}, err
		}
	}
	if params.Category != nil {
		category, err := model.ParseCategory(*params.Category)
		if err != nil {
			return model.Accessory{}, err
		}
		patch.Category = &category
	}
	if params.Model != nil {
		modelDoc, err := model.ParseAccessoryModel(params.Model)
		if err != nil {
			return model.Accessory{}, err
		}
		patch.Model = modelDoc
	}

	var texture, preview []byte
	if params.Texture != nil {
		var err error
		texture, err = asset.Validate(params.Texture, asset.ClassAccessoryTexture)
		if err != nil {
			return model.Accessory{}, err
		}
		hasTexture := true
		patch.HasTexture = &hasTexture
	}
	if params.Preview != nil {
		var err error
		preview, err = asset.Validate(params.Preview, asset.ClassAccessoryPreview)
		if err != nil {
			return model.Accessory{}, err
		}
	}

	// Same ordering as UpdateCape: upload first, patch after.
	uploaded := make([]string, 0, 2)
	if texture != nil {
		if err := s.storage.Upload(ctx, accessoryTextureKey(id), bytes.NewReader(texture)); err != nil {
			return model.Accessory{}, fmt.Errorf("failed to upload texture: %w", err)
		}
		uploaded = append(uploaded, accessoryTextureKey(id))
	}
	if preview != nil {
		if err := s.storage.Upload(ctx, accessoryPreviewKey(id), bytes.NewReader(preview)); err != nil {
			return model.Accessory{}, fmt.Errorf("failed to upload preview: %w", err)
		}
		uploaded = append(uploaded, accessoryPreviewKey(id))
	}

	saved, err := s.accessoryStore.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.removeAssets(ctx, uploaded...)
		}
		return model.Accessory{}, err
	}

	s.logger.Info("updated accessory", "accessory_id", id)
	return saved, nil
}

func (s *Catalog) DeleteAccessory(ctx context.Context, id uuid.UUID) error {
	if err := s.accessoryStore.Delete(ctx, id); err != nil {
		return err
	}
	s.removeAssets(ctx, accessoryTextureKey(id), accessoryPreviewKey(id))

	s.logger.Info("deleted accessory", "accessory_id", id)
	return nil
}

func (s *Catalog) uploadCapeAssets(ctx context.Context, id uuid.UUID, texture, preview []byte) error {
	if err := s.storage.Upload(ctx, capeTextureKey(id), bytes.NewReader(texture)); err != nil {
		return fmt.Errorf("failed to upload texture: %w", err)
	}
	if err := s.storage.Upload(ctx, capePreviewKey(id), bytes.NewReader(preview)); err != nil {
		s.removeAssets(ctx, capeTextureKey(id))
		return fmt.Errorf("failed to upload preview: %w", err)
	}
	return nil
}

func (s *Catalog) download(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download from storage: %w", err)
	}
	return reader, nil
}

func (s *Catalog) removeAssets(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("failed to delete object from storage", "key", key, "error", err)
		}
	}
}
