package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
	"github.com/sbilibin2017/gw-bank-cards/internal/services"
)

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := models.UserDB{UserID: uuid.New(), Username: "alice", Roles: models.Roles{models.RoleUser}}

	tests := []struct {
		name               string
		query              string
		setupMock          func(m *MockUserManager)
		expectedStatusCode int
		expectedTotal      int
	}{
		{
			name:  "default page",
			query: "",
			setupMock: func(m *MockUserManager) {
				m.EXPECT().List(gomock.Any(), models.PageRequest{Page: 0, Size: 10}).
					Return(&models.Page[models.UserDB]{Items: []models.UserDB{user}, Page: 0, Size: 10, Total: 1}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedTotal:      1,
		},
		{
			name:               "size too large",
			query:              "?size=1000",
			setupMock:          func(m *MockUserManager) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:  "service error",
			query: "?page=1&size=5",
			setupMock: func(m *MockUserManager) {
				m.EXPECT().List(gomock.Any(), models.PageRequest{Page: 1, Size: 5}).Return(nil, assert.AnError)
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserManager(ctrl)
			tt.setupMock(mockSvc)

			rr := httptest.NewRecorder()
			NewListUsersHandler(mockSvc).ServeHTTP(rr, newRequest(t, http.MethodGet, "/api/users"+tt.query, nil, adminClaims(), nil))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			if rr.Code == http.StatusOK {
				resp := decodeJSON[UserPageResponse](t, rr)
				assert.Equal(t, tt.expectedTotal, resp.TotalElements)
				assert.Equal(t, "alice", resp.Content[0].Username)
			}
		})
	}
}

func TestGetUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	tests := []struct {
		name               string
		id                 string
		setupMock          func(m *MockUserManager)
		expectedStatusCode int
	}{
		{
			name: "found",
			id:   id.String(),
			setupMock: func(m *MockUserManager) {
				m.EXPECT().GetByID(gomock.Any(), id).Return(&models.UserDB{UserID: id, Username: "alice"}, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "malformed id",
			id:                 "not-a-uuid",
			setupMock:          func(m *MockUserManager) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "missing",
			id:   id.String(),
			setupMock: func(m *MockUserManager) {
				m.EXPECT().GetByID(gomock.Any(), id).Return(nil, services.ErrUserNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserManager(ctrl)
			tt.setupMock(mockSvc)

			rr := httptest.NewRecorder()
			req := newRequest(t, http.MethodGet, "/api/users/"+tt.id, nil, adminClaims(), map[string]string{"id": tt.id})
			NewGetUserHandler(mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
		})
	}
}

func TestCreateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	body := RegisterRequest{Surname: "Petrov", Name: "Petr", BirthYear: 1985, Username: "petr", Password: "pw"}

	t.Run("created", func(t *testing.T) {
		mockSvc := NewMockUserManager(ctrl)
		mockSvc.EXPECT().Create(gomock.Any(), body.input()).
			Return(&models.UserDB{UserID: uuid.New(), Username: "petr", Roles: models.Roles{models.RoleUser}}, nil)

		rr := httptest.NewRecorder()
		NewCreateUserHandler(mockSvc).ServeHTTP(rr, newRequest(t, http.MethodPost, "/api/users", body, adminClaims(), nil))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, []string{"USER"}, decodeJSON[UserResponse](t, rr).Roles)
	})

	t.Run("conflict", func(t *testing.T) {
		mockSvc := NewMockUserManager(ctrl)
		mockSvc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, services.ErrUserAlreadyExists)

		rr := httptest.NewRecorder()
		NewCreateUserHandler(mockSvc).ServeHTTP(rr, newRequest(t, http.MethodPost, "/api/users", body, adminClaims(), nil))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewCreateUserHandler(NewMockUserManager(ctrl)).ServeHTTP(rr, newRequest(t, http.MethodPost, "/api/users", "[", adminClaims(), nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	body := RegisterRequest{Surname: "Petrov", Name: "Petr", BirthYear: 1985, Username: "petr2", Password: "pw"}

	tests := []struct {
		name               string
		setupMock          func(m *MockUserManager)
		expectedStatusCode int
	}{
		{
			name: "updated",
			setupMock: func(m *MockUserManager) {
				m.EXPECT().Update(gomock.Any(), id, body.input()).Return(&models.UserDB{UserID: id, Username: "petr2"}, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name: "missing",
			setupMock: func(m *MockUserManager) {
				m.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil, services.ErrUserNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name: "validation",
			setupMock: func(m *MockUserManager) {
				m.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil, services.ErrValidation)
			},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserManager(ctrl)
			tt.setupMock(mockSvc)

			rr := httptest.NewRecorder()
			req := newRequest(t, http.MethodPut, "/api/users/"+id.String(), body, adminClaims(), map[string]string{"id": id.String()})
			NewUpdateUserHandler(mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
		})
	}
}

func TestDeleteUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		mockSvc := NewMockUserManager(ctrl)
		mockSvc.EXPECT().Delete(gomock.Any(), id).Return(nil)

		rr := httptest.NewRecorder()
		NewDeleteUserHandler(mockSvc).ServeHTTP(rr, newRequest(t, http.MethodDelete, "/", nil, adminClaims(), map[string]string{"id": id.String()}))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		mockSvc := NewMockUserManager(ctrl)
		mockSvc.EXPECT().Delete(gomock.Any(), id).Return(services.ErrUserNotFound)

		rr := httptest.NewRecorder()
		NewDeleteUserHandler(mockSvc).ServeHTTP(rr, newRequest(t, http.MethodDelete, "/", nil, adminClaims(), map[string]string{"id": id.String()}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
