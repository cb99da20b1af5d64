package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/fabianopolone123/ERP-TI/internal"
	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
	"github.com/fabianopolone123/ERP-TI/internal/credential"
	"github.com/fabianopolone123/ERP-TI/internal/transport"
	"github.com/fabianopolone123/ERP-TI/pkg/logger"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler *Handler
		mux     *http.ServeMux
	)

	ginkgo.BeforeEach(func() {
		repo := newMockRepository(&userDatamodel.User{ID: 1, FullName: "Ana Souza", Username: "ana", Password: "pw"})
		svc := NewService(
			repo,
			credential.NewHasher(credential.MinIterations),
			NewJWTTokenGenerator("a", "r", time.Minute, time.Hour),
			logger.Discard(),
		)
		handler = NewHandler(transport.NewBaseHandler(logger.Discard()), svc)

		mux = http.NewServeMux()
		mux.HandleFunc("/login", handler.Login)
		mux.HandleFunc("/refresh", handler.RefreshToken)
		mux.Handle("/me", handler.AuthMiddleware(http.HandlerFunc(handler.Me)))
	})

	post := func(path string, body interface{}) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	login := func() LoginResponse {
		rec := post("/login", LoginDTO{Username: "ana", Password: "pw"})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		var resp LoginResponse
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
		return resp
	}

	ginkgo.It("logs in and resolves the caller through the middleware", func() {
		resp := login()
		gomega.Expect(resp.AccessToken).NotTo(gomega.BeEmpty())
		gomega.Expect(resp.Identity.Name).To(gomega.Equal("Ana Souza"))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		var id internal.Identity
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &id)).To(gomega.Succeed())
		gomega.Expect(id.UserID).To(gomega.Equal(int64(1)))
	})

	ginkgo.It("answers 401 on bad credentials", func() {
		rec := post("/login", LoginDTO{Username: "ana", Password: "wrong"})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(string(internal.ErrCodeInvalidCredentials)))
	})

	ginkgo.It("answers 401 without a bearer token", func() {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("refuses an access token at the refresh endpoint", func() {
		resp := login()
		rec := post("/refresh", RefreshTokenDTO{RefreshToken: resp.AccessToken})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))

		rec = post("/refresh", RefreshTokenDTO{RefreshToken: resp.RefreshToken})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
	})

	ginkgo.It("rejects an empty refresh request", func() {
		rec := post("/refresh", RefreshTokenDTO{})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
	})
})
