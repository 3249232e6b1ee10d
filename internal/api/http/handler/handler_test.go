package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apictx "github.com/cosmostic/cosmostic-server/internal/api/http/context"
	"github.com/cosmostic/cosmostic-server/internal/api/http/handler"
	"github.com/cosmostic/cosmostic-server/internal/api/http/middleware"
	"github.com/cosmostic/cosmostic-server/internal/api/http/router"
	"github.com/cosmostic/cosmostic-server/internal/auth"
	"github.com/cosmostic/cosmostic-server/internal/model"
	"github.com/cosmostic/cosmostic-server/internal/service"
	"github.com/cosmostic/cosmostic-server/internal/testutil"
	"github.com/cosmostic/cosmostic-server/internal/token"
)

const testSecret = "handler-test-secret"

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

type testEnv struct {
	capeStore      *MockCapeStore
	accessoryStore *MockAccessoryStore
	userStore      *MockUserStore
	storage        *MockAssetStorage
	profiles       *MockProfileProvider
	adminID        uuid.UUID
	mux            http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		capeStore:      &MockCapeStore{},
		accessoryStore: &MockAccessoryStore{},
		userStore:      &MockUserStore{},
		storage:        &MockAssetStorage{},
		profiles:       &MockProfileProvider{},
		adminID:        uuid.New(),
	}

	log := testutil.MakeNoopLogger()
	gate := auth.NewGate([]uuid.UUID{env.adminID})
	ctxMgr := apictx.NewManager()
	catalog := service.NewCatalog(env.capeStore, env.accessoryStore, env.storage, log)
	equip := service.NewEquip(env.userStore, env.capeStore, env.accessoryStore, env.profiles, log)

	env.mux = router.New(
		handler.NewFetch(catalog, log),
		handler.NewManage(catalog, gate, ctxMgr, log),
		handler.NewUser(equip, gate, ctxMgr, log),
		middleware.NewAuthenticate(token.NewJWT(testSecret), ctxMgr, log),
		middleware.NewLogging(log),
	)

	return env
}

func (e *testEnv) bearerToken(t *testing.T, callerID uuid.UUID) string {
	t.Helper()

	accessToken, err := token.NewJWT(testSecret).GenerateAccessToken(callerID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + accessToken
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

type multipartBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

func newMultipartBody() *multipartBody {
	b := &multipartBody{}
	b.writer = multipart.NewWriter(&b.buf)
	return b
}

func (b *multipartBody) field(t *testing.T, name, value string) *multipartBody {
	t.Helper()
	require.NoError(t, b.writer.WriteField(name, value))
	return b
}

func (b *multipartBody) file(t *testing.T, name string, data []byte) *multipartBody {
	t.Helper()
	part, err := b.writer.CreateFormFile(name, name+".png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	return b
}

func (b *multipartBody) request(t *testing.T, method, target string) *http.Request {
	t.Helper()
	require.NoError(t, b.writer.Close())
	req := httptest.NewRequest(method, target, &b.buf)
	req.Header.Set("Content-Type", b.writer.FormDataContentType())
	return req
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) (int, string) {
	t.Helper()

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code, body.Message
}
