package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cosmostic/cosmostic-server/internal/model"
)

func TestUser_GetCape(t *testing.T) {
	userID := uuid.New()
	capeID := uuid.New()

	t.Run("active cape", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).
			Return(model.User{ID: userID, CapeID: &capeID}, nil)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user/"+userID.String()+"/cape", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, capeID.String(), got)
	})

	t.Run("no active cape", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).
			Return(model.User{ID: userID}, nil)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user/"+userID.String()+"/cape", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "No active cape", message)
	})

	t.Run("unregistered user", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).
			Return(model.User{}, model.ErrNotFound)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user/"+userID.String()+"/cape", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "User not found or not registered", message)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user/not-a-uuid/cape", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUser_SetCape(t *testing.T) {
	userID := uuid.New()
	capeID := uuid.New()
	target := "/user/" + userID.String() + "/cape?cape_uuid=" + capeID.String()

	t.Run("existing user updates cape", func(t *testing.T) {
		env := newTestEnv(t)
		env.capeStore.On("GetByID", mock.Anything, capeID).Return(model.Cape{ID: capeID}, nil)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
		env.userStore.On("SetCape", mock.Anything, userID, capeID).Return(nil)

		req := httptest.NewRequest(http.MethodPut, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Updated", message)
	})

	t.Run("first equip answers created", func(t *testing.T) {
		env := newTestEnv(t)
		env.capeStore.On("GetByID", mock.Anything, capeID).Return(model.Cape{ID: capeID}, nil)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)
		env.profiles.On("Exists", mock.Anything, userID).Return(true, nil)
		env.userStore.On("Create", mock.Anything, mock.Anything).
			Return(model.User{ID: userID, CapeID: &capeID}, nil)

		req := httptest.NewRequest(http.MethodPut, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		require.Equal(t, http.StatusCreated, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Created", message)
	})

	t.Run("caller is not the target user", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPut, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, uuid.New()))

		rec := env.do(req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(httptest.NewRequest(http.MethodPut, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown cape", func(t *testing.T) {
		env := newTestEnv(t)
		env.capeStore.On("GetByID", mock.Anything, capeID).Return(model.Cape{}, model.ErrNotFound)

		req := httptest.NewRequest(http.MethodPut, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Cape not found", message)
	})

	t.Run("account does not exist", func(t *testing.T) {
		env := newTestEnv(t)
		env.capeStore.On("GetByID", mock.Anything, capeID).Return(model.Cape{ID: capeID}, nil)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)
		env.profiles.On("Exists", mock.Anything, userID).Return(false, nil)

		req := httptest.NewRequest(http.MethodPut, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "User doesn't exist", message)
	})
}

func TestUser_ClearCape(t *testing.T) {
	userID := uuid.New()
	capeID := uuid.New()
	target := "/user/" + userID.String() + "/cape"

	t.Run("removes active cape", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).
			Return(model.User{ID: userID, CapeID: &capeID}, nil)
		env.userStore.On("ClearCape", mock.Anything, userID).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Removed", message)
	})

	t.Run("no active cape", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).
			Return(model.User{ID: userID}, nil)

		req := httptest.NewRequest(http.MethodDelete, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestUser_GetAccessories(t *testing.T) {
	userID := uuid.New()

	t.Run("active accessories", func(t *testing.T) {
		env := newTestEnv(t)
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		env.userStore.On("GetByID", mock.Anything, userID).
			Return(model.User{ID: userID, Accessories: ids}, nil)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user/"+userID.String()+"/accessories", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got []uuid.UUID
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, ids, got)
	})

	t.Run("no active accessories", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).
			Return(model.User{ID: userID}, nil)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user/"+userID.String()+"/accessories", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "No active accessories", message)
	})
}

func TestUser_AddAccessory(t *testing.T) {
	userID := uuid.New()
	accessoryID := uuid.New()
	target := "/user/" + userID.String() + "/accessories?accessory_uuid=" + accessoryID.String()

	t.Run("adds accessory", func(t *testing.T) {
		env := newTestEnv(t)
		env.accessoryStore.On("GetByID", mock.Anything, accessoryID).Return(model.Accessory{ID: accessoryID}, nil)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
		env.userStore.On("AddAccessory", mock.Anything, userID, accessoryID).Return(nil)

		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Added", message)
	})

	t.Run("already active", func(t *testing.T) {
		env := newTestEnv(t)
		env.accessoryStore.On("GetByID", mock.Anything, accessoryID).Return(model.Accessory{ID: accessoryID}, nil)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
		env.userStore.On("AddAccessory", mock.Anything, userID, accessoryID).Return(model.ErrAlreadyActive)

		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		assert.Equal(t, http.StatusConflict, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Accessory already active", message)
	})

	t.Run("too many accessories", func(t *testing.T) {
		env := newTestEnv(t)
		env.accessoryStore.On("GetByID", mock.Anything, accessoryID).Return(model.Accessory{ID: accessoryID}, nil)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
		env.userStore.On("AddAccessory", mock.Anything, userID, accessoryID).Return(model.ErrLimitExceeded)

		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Too many accessories", message)
	})

	t.Run("first equip answers created", func(t *testing.T) {
		env := newTestEnv(t)
		env.accessoryStore.On("GetByID", mock.Anything, accessoryID).Return(model.Accessory{ID: accessoryID}, nil)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)
		env.profiles.On("Exists", mock.Anything, userID).Return(true, nil)
		env.userStore.On("Create", mock.Anything, mock.Anything).
			Return(model.User{ID: userID, Accessories: []uuid.UUID{accessoryID}}, nil)

		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestUser_RemoveAccessory(t *testing.T) {
	userID := uuid.New()
	accessoryID := uuid.New()
	target := "/user/" + userID.String() + "/accessories?accessory_uuid=" + accessoryID.String()

	t.Run("removes accessory", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
		env.userStore.On("RemoveAccessory", mock.Anything, userID, accessoryID).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Removed", message)
	})

	t.Run("accepts uuid in form body", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
		env.userStore.On("RemoveAccessory", mock.Anything, userID, accessoryID).Return(nil)

		form := url.Values{"accessory_uuid": {accessoryID.String()}}
		req := httptest.NewRequest(http.MethodDelete, "/user/"+userID.String()+"/accessories", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("accessory not active", func(t *testing.T) {
		env := newTestEnv(t)
		env.userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
		env.userStore.On("RemoveAccessory", mock.Anything, userID, accessoryID).Return(model.ErrNotActive)

		req := httptest.NewRequest(http.MethodDelete, target, nil)
		req.Header.Set("Authorization", env.bearerToken(t, userID))

		rec := env.do(req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		_, message := decodeMessage(t, rec)
		assert.Equal(t, "Accessory not active", message)
	})
}
