package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account_backend/internal/feature/users/domain"
	"account_backend/internal/feature/users/domain/entity"
	"account_backend/internal/feature/users/usecase"
	"account_backend/internal/shared/apperr"
	"account_backend/internal/shared/authctx"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	ListFunc          func(ctx context.Context, perPage, page int) (entity.Page, error)
	CreateFunc        func(ctx context.Context, in usecase.CreateInput) (entity.UserView, error)
	GetByIDFunc       func(ctx context.Context, id uint) (entity.UserView, error)
	UpdateFunc        func(ctx context.Context, id uint, in usecase.UpdateInput) (entity.UserView, error)
	UpdateProfileFunc func(ctx context.Context, requester *authctx.Principal, targetID uint, in usecase.UpdateInput) (entity.UserView, error)
	DeleteFunc        func(ctx context.Context, id uint) error
}

func (m *mockUserUsecase) List(ctx context.Context, perPage, page int) (entity.Page, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, perPage, page)
	}
	return entity.Page{}, nil
}

func (m *mockUserUsecase) Create(ctx context.Context, in usecase.CreateInput) (entity.UserView, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return entity.UserView{}, nil
}

func (m *mockUserUsecase) GetByID(ctx context.Context, id uint) (entity.UserView, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return entity.UserView{}, domain.ErrUserNotFound
}

func (m *mockUserUsecase) Update(ctx context.Context, id uint, in usecase.UpdateInput) (entity.UserView, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return entity.UserView{}, domain.ErrUserNotFound
}

func (m *mockUserUsecase) UpdateProfile(ctx context.Context, requester *authctx.Principal, targetID uint, in usecase.UpdateInput) (entity.UserView, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, requester, targetID, in)
	}
	return entity.UserView{}, nil
}

func (m *mockUserUsecase) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// withPrincipal stands in for the auth middleware.
func withPrincipal(p *authctx.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Request = c.Request.WithContext(authctx.WithPrincipal(c.Request.Context(), p))
		}
		c.Next()
	}
}

func newRouter(uc UserUsecase, p *authctx.Principal) *gin.Engine {
	h := NewUserHandler(uc)
	r := gin.New()
	r.Use(withPrincipal(p))
	r.POST("/register", h.Register)
	r.GET("/users", h.List)
	r.GET("/users/:id", h.Show)
	r.PUT("/users/:id", h.Update)
	r.PUT("/users/:id/profile", h.UpdateProfile)
	r.DELETE("/users/:id", h.Destroy)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()

	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

var bob = entity.UserView{ID: 7, Role: "user", Username: "bob", FirstName: "Bob", LastName: "Lee", Email: "bob@x.com"}

func TestUserHandler_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		createFunc  func(ctx context.Context, in usecase.CreateInput) (entity.UserView, error)
		wantStatus  int
		wantMessage string
		check       func(t *testing.T, body map[string]any)
	}{
		{
			name: "success: 201 with view and no password",
			body: `{"username":"bob","firstName":"Bob","lastName":"Lee","email":"bob@x.com","password":"Abcdef12"}`,
			createFunc: func(ctx context.Context, in usecase.CreateInput) (entity.UserView, error) {
				assert.Equal(t, "Abcdef12", in.Password)
				return bob, nil
			},
			wantStatus:  http.StatusCreated,
			wantMessage: MsgRegistered,
			check: func(t *testing.T, body map[string]any) {
				data := body["data"].(map[string]any)
				assert.Equal(t, "bob", data["username"])
				assert.Equal(t, "Bob", data["firstName"])
				assert.NotContains(t, data, "password")
				assert.NotContains(t, data, "passwordHash")
			},
		},
		{
			name: "failure: validation errors listed per field",
			body: `{"username":"bob"}`,
			createFunc: func(ctx context.Context, in usecase.CreateInput) (entity.UserView, error) {
				return entity.UserView{}, apperr.NewValidationError([]apperr.FieldError{apperr.Unique("email")})
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "The given data was invalid.",
			check: func(t *testing.T, body map[string]any) {
				errs := body["errors"].(map[string]any)
				assert.Contains(t, errs, "email")
			},
		},
		{
			name:        "failure: malformed JSON",
			body:        `{"username":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "The given data was invalid.",
		},
		{
			name: "failure: store error hides cause",
			body: `{"username":"bob"}`,
			createFunc: func(ctx context.Context, in usecase.CreateInput) (entity.UserView, error) {
				return entity.UserView{}, errors.New("pq: connection reset")
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newRouter(&mockUserUsecase{CreateFunc: tt.createFunc}, nil)

			status, body := do(t, r, http.MethodPost, "/register", tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.Equal(t, tt.wantStatus < 300, body["success"])
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestUserHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("query params passed through", func(t *testing.T) {
		t.Parallel()

		uc := &mockUserUsecase{
			ListFunc: func(ctx context.Context, perPage, page int) (entity.Page, error) {
				assert.Equal(t, 5, perPage)
				assert.Equal(t, 2, page)
				return entity.NewPage([]entity.User{{ID: 7, Username: "bob"}}, page, perPage, 6), nil
			},
		}

		status, body := do(t, newRouter(uc, nil), http.MethodGet, "/users?perPage=5&page=2", "")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, MsgListed, body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(2), data["currentPage"])
		assert.Equal(t, float64(5), data["perPage"])
		assert.Equal(t, float64(6), data["total"])
		assert.Equal(t, float64(2), data["lastPage"])
		assert.Len(t, data["data"], 1)
	})

	t.Run("non-integer perPage", func(t *testing.T) {
		t.Parallel()

		status, _ := do(t, newRouter(&mockUserUsecase{}, nil), http.MethodGet, "/users?perPage=ten", "")

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestUserHandler_Show(t *testing.T) {
	t.Parallel()

	uc := &mockUserUsecase{
		GetByIDFunc: func(ctx context.Context, id uint) (entity.UserView, error) {
			if id == 7 {
				return bob, nil
			}
			return entity.UserView{}, domain.ErrUserNotFound
		},
	}
	r := newRouter(uc, nil)

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantMessage string
	}{
		{"found", "/users/7", http.StatusOK, MsgRetrieved},
		{"missing", "/users/8", http.StatusNotFound, MsgNotFound},
		{"non-numeric id", "/users/abc", http.StatusNotFound, MsgNotFound},
		{"zero id", "/users/0", http.StatusNotFound, MsgNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, body := do(t, r, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestUserHandler_Update(t *testing.T) {
	t.Parallel()

	t.Run("empty and missing fields are not supplied", func(t *testing.T) {
		t.Parallel()

		uc := &mockUserUsecase{
			UpdateFunc: func(ctx context.Context, id uint, in usecase.UpdateInput) (entity.UserView, error) {
				assert.Equal(t, uint(7), id)
				assert.Nil(t, in.Username)
				assert.Nil(t, in.Email)
				require.NotNil(t, in.FirstName)
				assert.Equal(t, "Rob", *in.FirstName)
				return bob, nil
			},
		}

		status, body := do(t, newRouter(uc, nil), http.MethodPut, "/users/7", `{"firstName":"Rob","email":""}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, MsgUpdated, body["message"])
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		status, body := do(t, newRouter(&mockUserUsecase{}, nil), http.MethodPut, "/users/9", `{"firstName":"Rob"}`)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, MsgNotFound, body["message"])
	})
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	t.Parallel()

	uc := &mockUserUsecase{
		UpdateProfileFunc: func(ctx context.Context, requester *authctx.Principal, targetID uint, in usecase.UpdateInput) (entity.UserView, error) {
			if requester == nil {
				return entity.UserView{}, usecase.ErrLoginRequired
			}
			if requester.UserID != targetID {
				return entity.UserView{}, usecase.ErrNotProfileOwner
			}
			return bob, nil
		},
	}

	tests := []struct {
		name       string
		principal  *authctx.Principal
		wantStatus int
	}{
		{"owner", &authctx.Principal{UserID: 7, Role: authctx.RoleUser}, http.StatusOK},
		{"other user", &authctx.Principal{UserID: 1, Role: authctx.RoleUser}, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, _ := do(t, newRouter(uc, tt.principal), http.MethodPut, "/users/7/profile", `{"lastName":"Li"}`)

			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestUserHandler_Destroy(t *testing.T) {
	t.Parallel()

	uc := &mockUserUsecase{
		DeleteFunc: func(ctx context.Context, id uint) error {
			if id == 7 {
				return nil
			}
			return domain.ErrUserNotFound
		},
	}
	r := newRouter(uc, nil)

	status, body := do(t, r, http.MethodDelete, "/users/7", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, MsgDeleted, body["message"])
	assert.NotContains(t, body, "data")

	status, body = do(t, r, http.MethodDelete, "/users/8", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, MsgNotFound, body["message"])
}
