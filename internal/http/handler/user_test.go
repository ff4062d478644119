package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bugdesk.app/api-server/internal/http/handler"
	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/service"
	"bugdesk.app/api-server/internal/workflow"
)

type mockUserService struct {
	createUserFn     func(ctx context.Context, actorID int64, username, password string, role model.Role) (*model.User, error)
	loginFn          func(ctx context.Context, username, password string) (*model.User, error)
	getUserByIDFn    func(ctx context.Context, userID int64) (*model.User, error)
	listDevelopersFn func(ctx context.Context) ([]model.User, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, actorID int64, username, password string, role model.Role) (*model.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, actorID, username, password, role)
	}
	return nil, nil
}

func (m *mockUserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return nil, nil
}

func (m *mockUserService) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserService) ListDevelopers(ctx context.Context) ([]model.User, error) {
	if m.listDevelopersFn != nil {
		return m.listDevelopersFn(ctx)
	}
	return nil, nil
}

var _ = Describe("UserHandler", func() {
	var (
		router *gin.Engine
		svc    *mockUserService
		tokens *handler.TokenProvider
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockUserService{}
		tokens = handler.NewTokenProvider("test-secret", false)
		h := handler.NewUserHandler(svc, tokens)

		router.Use(tokens.Authenticate)
		router.POST("/api/users/signup", h.Signup)
		router.POST("/api/users/login", h.Login)
		router.GET("/api/users", h.Me)
		router.GET("/api/users/devs", h.ListDevelopers)
	})

	authCookie := func(userID int64) *http.Cookie {
		token, err := tokens.Generate(userID)
		Expect(err).NotTo(HaveOccurred())
		return &http.Cookie{Name: "jwt", Value: token}
	}

	Describe("Signup", func() {
		It("creates a user and echoes it back", func() {
			svc.createUserFn = func(_ context.Context, actorID int64, username, _ string, role model.Role) (*model.User, error) {
				Expect(actorID).To(Equal(int64(1)))
				return &model.User{ID: 42, Username: username, Role: role}, nil
			}

			body, _ := json.Marshal(map[string]string{
				"username": "dev1",
				"password": "secret",
				"role":     "DEV",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/users/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			req.AddCookie(authCookie(1))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["username"]).To(Equal("dev1"))
			Expect(resp["role"]).To(Equal("DEV"))
			Expect(resp["id"]).To(Equal("42"))
		})

		It("rejects an unknown role with 400", func() {
			body, _ := json.Marshal(map[string]string{
				"username": "dev1",
				"password": "secret",
				"role":     "WIZARD",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/users/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps a policy rejection to 401", func() {
			svc.createUserFn = func(context.Context, int64, string, string, model.Role) (*model.User, error) {
				return nil, workflow.ErrNotLoggedIn
			}

			body, _ := json.Marshal(map[string]string{
				"username": "dev1",
				"password": "secret",
				"role":     "DEV",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/users/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("maps a duplicate username to 409", func() {
			svc.createUserFn = func(context.Context, int64, string, string, model.Role) (*model.User, error) {
				return nil, service.ErrUsernameTaken
			}

			body, _ := json.Marshal(map[string]string{
				"username": "dev1",
				"password": "secret",
				"role":     "DEV",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/users/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("Login", func() {
		It("sets the session cookie on success", func() {
			svc.loginFn = func(_ context.Context, username, _ string) (*model.User, error) {
				return &model.User{ID: 7, Username: username, Role: model.RoleTester}, nil
			}

			body, _ := json.Marshal(map[string]string{
				"username": "tester1",
				"password": "secret",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			cookies := w.Result().Cookies()
			var jwtCookie *http.Cookie
			for _, ck := range cookies {
				if ck.Name == "jwt" {
					jwtCookie = ck
				}
			}
			Expect(jwtCookie).NotTo(BeNil())
			Expect(jwtCookie.Value).NotTo(BeEmpty())

			userID, err := tokens.UserID(jwtCookie.Value)
			Expect(err).NotTo(HaveOccurred())
			Expect(userID).To(Equal(int64(7)))
		})

		It("maps bad credentials to 401", func() {
			svc.loginFn = func(context.Context, string, string) (*model.User, error) {
				return nil, service.ErrInvalidCredentials
			}

			body, _ := json.Marshal(map[string]string{
				"username": "tester1",
				"password": "wrong",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Me", func() {
		It("returns the authenticated user", func() {
			svc.getUserByIDFn = func(_ context.Context, userID int64) (*model.User, error) {
				return &model.User{ID: userID, Username: "me", Role: model.RoleAdmin}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.AddCookie(authCookie(9))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal(strconv.FormatInt(9, 10)))
		})

		It("returns 401 without a session", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("ignores a tampered token", func() {
			other := handler.NewTokenProvider("other-secret", false)
			token, err := other.Generate(9)
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("ListDevelopers", func() {
		It("returns the developer shortlist", func() {
			svc.listDevelopersFn = func(context.Context) ([]model.User, error) {
				return []model.User{
					{ID: 3, Username: "dev1", Role: model.RoleDeveloper},
					{ID: 4, Username: "dev2", Role: model.RoleDeveloper},
				}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/users/devs", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveLen(2))
			Expect(resp[0]["username"]).To(Equal("dev1"))
		})
	})
})
