package api_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/notifyd/notifyd/internal/api"
	"github.com/notifyd/notifyd/internal/service"
	"github.com/notifyd/notifyd/internal/service/mocks"
	"github.com/notifyd/notifyd/internal/storage"
)

const testToken = "test-token"

func newTestRouter(userSvc service.UserService, dispatchSvc service.DispatchService) http.Handler {
	r := chi.NewRouter()
	srv := api.New(userSvc, dispatchSvc, testToken, slog.New(slog.DiscardHandler))
	srv.Mount(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, authorize bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if authorize {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload["error"]
}

func TestAuthMiddleware(t *testing.T) {
	userSvc := &mocks.MockUserService{}
	h := newTestRouter(userSvc, &mocks.MockDispatchService{})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/users", "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization header is required", decodeError(t, rec))
	})

	t.Run("not a bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid authorization token", decodeError(t, rec))
	})

	t.Run("valid token passes through", func(t *testing.T) {
		userSvc.On("List", mock.Anything).Return([]storage.User{}).Once()
		rec := doRequest(t, h, http.MethodGet, "/users", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestListUsers(t *testing.T) {
	userSvc := &mocks.MockUserService{}
	userSvc.On("List", mock.Anything).Return([]storage.User{
		{ID: 1, Email: "a@x.com", Preferences: storage.ChannelPreferences{Email: true}},
	})
	h := newTestRouter(userSvc, &mocks.MockDispatchService{})

	rec := doRequest(t, h, http.MethodGet, "/users", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []storage.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, 1, users[0].ID)
	// Wire format uses "userId" for the identifier.
	assert.Contains(t, rec.Body.String(), `"userId":1`)
}

func TestGetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		userSvc := &mocks.MockUserService{}
		userSvc.On("Get", mock.Anything, 7).Return(storage.User{ID: 7, Email: "a@x.com"}, nil)
		h := newTestRouter(userSvc, &mocks.MockDispatchService{})

		rec := doRequest(t, h, http.MethodGet, "/users/7", "", true)
		require.Equal(t, http.StatusOK, rec.Code)

		var user storage.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, 7, user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		userSvc := &mocks.MockUserService{}
		userSvc.On("Get", mock.Anything, 99).
			Return(storage.User{}, &service.NotFoundError{Resource: "user", ID: "99"})
		h := newTestRouter(userSvc, &mocks.MockDispatchService{})

		rec := doRequest(t, h, http.MethodGet, "/users/99", "", true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-integer id", func(t *testing.T) {
		h := newTestRouter(&mocks.MockUserService{}, &mocks.MockDispatchService{})

		rec := doRequest(t, h, http.MethodGet, "/users/abc", "", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "user id must be an integer", decodeError(t, rec))
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		userSvc := &mocks.MockUserService{}
		userSvc.On("Create", mock.Anything, service.CreateUserRequest{
			Email:       "a@x.com",
			Telephone:   "+1",
			Preferences: storage.ChannelPreferences{Email: true},
		}).Return(storage.User{ID: 5, Email: "a@x.com", Telephone: "+1"}, nil)
		h := newTestRouter(userSvc, &mocks.MockDispatchService{})

		body := `{"email":"a@x.com","telephone":"+1","preferences":{"email":true,"sms":false}}`
		rec := doRequest(t, h, http.MethodPost, "/users", body, true)

		require.Equal(t, http.StatusCreated, rec.Code)
		var user storage.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, 5, user.ID)
		userSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		h := newTestRouter(&mocks.MockUserService{}, &mocks.MockDispatchService{})

		rec := doRequest(t, h, http.MethodPost, "/users", "{not json", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userSvc := &mocks.MockUserService{}
		userSvc.On("Create", mock.Anything, mock.Anything).
			Return(storage.User{}, &service.ConflictError{Resource: "user", ID: "a@x.com"})
		h := newTestRouter(userSvc, &mocks.MockDispatchService{})

		rec := doRequest(t, h, http.MethodPost, "/users", `{"email":"a@x.com"}`, true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		userSvc := &mocks.MockUserService{}
		userSvc.On("Create", mock.Anything, mock.Anything).
			Return(storage.User{}, &service.ValidationError{Field: "email", Message: "invalid email address"})
		h := newTestRouter(userSvc, &mocks.MockDispatchService{})

		rec := doRequest(t, h, http.MethodPost, "/users", `{"email":"bogus"}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	userSvc := &mocks.MockUserService{}
	userSvc.On("Update", mock.Anything, 3, mock.Anything).
		Return(storage.User{ID: 3, Email: "b@x.com"}, nil)
	h := newTestRouter(userSvc, &mocks.MockDispatchService{})

	body := `{"email":"b@x.com","telephone":"+2","preferences":{"email":false,"sms":true}}`
	rec := doRequest(t, h, http.MethodPut, "/users/3", body, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var user storage.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, 3, user.ID)
}

func TestUpdateUserByEmail(t *testing.T) {
	tel := "+42"
	userSvc := &mocks.MockUserService{}
	userSvc.On("UpdateByEmail", mock.Anything, service.UpdateByEmailRequest{
		Email:       "a@x.com",
		Telephone:   &tel,
		Preferences: storage.ChannelPreferences{SMS: true},
	}).Return(storage.User{ID: 1, Email: "a@x.com", Telephone: "+42"}, nil)
	h := newTestRouter(userSvc, &mocks.MockDispatchService{})

	body := `{"email":"a@x.com","telephone":"+42","preferences":{"email":false,"sms":true}}`
	rec := doRequest(t, h, http.MethodPut, "/users", body, true)

	require.Equal(t, http.StatusOK, rec.Code)
	userSvc.AssertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		userSvc := &mocks.MockUserService{}
		userSvc.On("Delete", mock.Anything, 2).Return(nil)
		h := newTestRouter(userSvc, &mocks.MockDispatchService{})

		rec := doRequest(t, h, http.MethodDelete, "/users/2", "", true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "user 2 preferences deleted successfully")
	})

	t.Run("not found", func(t *testing.T) {
		userSvc := &mocks.MockUserService{}
		userSvc.On("Delete", mock.Anything, 99).
			Return(&service.NotFoundError{Resource: "user", ID: "99"})
		h := newTestRouter(userSvc, &mocks.MockDispatchService{})

		rec := doRequest(t, h, http.MethodDelete, "/users/99", "", true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
