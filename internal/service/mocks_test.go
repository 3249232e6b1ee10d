package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/cosmostic/cosmostic-server/internal/model"
)

// MockCapeStore mocks the CapeStore interface
type MockCapeStore struct {
	mock.Mock
}

func (m *MockCapeStore) List(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCapeStore) GetByID(ctx context.Context, id uuid.UUID) (model.Cape, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Cape), args.Error(1)
}

func (m *MockCapeStore) Create(ctx context.Context, cape model.Cape) (model.Cape, error) {
	args := m.Called(ctx, cape)
	return args.Get(0).(model.Cape), args.Error(1)
}

func (m *MockCapeStore) Update(ctx context.Context, id uuid.UUID, patch model.CapePatch) (model.Cape, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Cape), args.Error(1)
}

func (m *MockCapeStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccessoryStore mocks the AccessoryStore interface
type MockAccessoryStore struct {
	mock.Mock
}

func (m *MockAccessoryStore) List(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAccessoryStore) GetByID(ctx context.Context, id uuid.UUID) (model.Accessory, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Accessory), args.Error(1)
}

func (m *MockAccessoryStore) Create(ctx context.Context, accessory model.Accessory) (model.Accessory, error) {
	args := m.Called(ctx, accessory)
	return args.Get(0).(model.Accessory), args.Error(1)
}

func (m *MockAccessoryStore) Update(ctx context.Context, id uuid.UUID, patch model.AccessoryPatch) (model.Accessory, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Accessory), args.Error(1)
}

func (m *MockAccessoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) SetCape(ctx context.Context, userID, capeID uuid.UUID) error {
	args := m.Called(ctx, userID, capeID)
	return args.Error(0)
}

func (m *MockUserStore) ClearCape(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserStore) AddAccessory(ctx context.Context, userID, accessoryID uuid.UUID) error {
	args := m.Called(ctx, userID, accessoryID)
	return args.Error(0)
}

func (m *MockUserStore) RemoveAccessory(ctx context.Context, userID, accessoryID uuid.UUID) error {
	args := m.Called(ctx, userID, accessoryID)
	return args.Error(0)
}

// MockAssetStorage mocks the AssetStorage interface
type MockAssetStorage struct {
	mock.Mock
}

func (m *MockAssetStorage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *MockAssetStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockAssetStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAssetStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockProfileProvider mocks the ProfileProvider interface
type MockProfileProvider struct {
	mock.Mock
}

func (m *MockProfileProvider) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
