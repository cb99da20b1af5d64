package user_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/fabianopolone123/ERP-TI/internal/core/database/dbtest"
	"github.com/fabianopolone123/ERP-TI/internal/transport"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	"github.com/fabianopolone123/ERP-TI/internal/user/repository"
	"github.com/fabianopolone123/ERP-TI/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User Handler Integration", func() {
	var (
		svc    *user.Service
		router *chi.Mux
	)

	BeforeEach(func() {
		db, err := dbtest.Open()
		Expect(err).NotTo(HaveOccurred())

		svc = user.NewService(repository.NewUserRepository(db), "TI", logger.Discard())
		handler := user.NewHandler(&transport.BaseHandler{Logger: logger.Discard()}, svc)

		router = chi.NewRouter()
		router.Get("/users", handler.ListUsers)
		router.Post("/users", handler.CreateUser)
		router.Get("/users/{id}/groups", handler.GetGroupLabel)
		router.Post("/groups", handler.CreateGroup)
		router.Post("/groups/{id}/members", handler.AddGroupMember)
		router.Delete("/groups/{id}/members/{userID}", handler.RemoveGroupMember)
		router.Get("/staff", handler.ListStaff)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("creates a user and returns 201", func() {
		w := do(http.MethodPost, "/users", `{"department":"RH","full_name":"Ana"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var u user.User
		Expect(json.NewDecoder(w.Body).Decode(&u)).To(Succeed())
		Expect(u.FullName).To(Equal("Ana"))
	})

	It("returns 400 with field details on missing fields", func() {
		w := do(http.MethodPost, "/users", `{"department":"","full_name":""}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("full_name is required"))
	})

	It("returns 409 for duplicate groups", func() {
		Expect(do(http.MethodPost, "/groups", `{"name":"TI"}`).Code).To(Equal(http.StatusCreated))
		w := do(http.MethodPost, "/groups", `{"name":"ti"}`)
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring("DUPLICATE_GROUP"))
	})

	It("manages membership through the API", func() {
		ctx := context.Background()
		u, _ := svc.CreateUser(ctx, user.CreateUserDTO{Department: "TI", FullName: "Bruno"})
		g, _ := svc.CreateGroup(ctx, user.CreateGroupDTO{Name: "TI"})

		w := do(http.MethodPost, fmt.Sprintf("/groups/%d/members", g.ID), fmt.Sprintf(`{"user_id":%d}`, u.ID))
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = do(http.MethodGet, fmt.Sprintf("/users/%d/groups", u.ID), "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var label user.GroupLabelResponse
		Expect(json.NewDecoder(w.Body).Decode(&label)).To(Succeed())
		Expect(label.Label).To(Equal("TI"))

		w = do(http.MethodGet, "/staff", "")
		var staff user.UsersResponse
		Expect(json.NewDecoder(w.Body).Decode(&staff)).To(Succeed())
		Expect(staff.Users).To(HaveLen(1))

		w = do(http.MethodDelete, fmt.Sprintf("/groups/%d/members/%d", g.ID, u.ID), "")
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = do(http.MethodGet, "/staff", "")
		Expect(json.NewDecoder(w.Body).Decode(&staff)).To(Succeed())
		Expect(staff.Users).To(BeEmpty())
	})

	It("rejects a malformed id", func() {
		w := do(http.MethodGet, "/users/abc/groups", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
