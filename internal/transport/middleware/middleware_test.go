package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

type staffByName map[string]bool

func (s staffByName) IsStaff(_ context.Context, id internal.Identity) (bool, error) {
	return s[id.Name], nil
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"access_token":"abc","status":"fine"}`))
})

var _ = Describe("Middleware", func() {
	It("filters credentials out of logged bodies", func() {
		out := filterBody([]byte(`{"username":"ana","password":"s3cret","nested":{"refresh_token":"x"}}`))
		Expect(out).To(ContainSubstring(`"username":"ana"`))
		Expect(out).NotTo(ContainSubstring("s3cret"))
		Expect(out).To(ContainSubstring(`"refresh_token":"[FILTERED]"`))
	})

	It("logs requests and responses without secrets", func() {
		var buf bytes.Buffer
		lg := slog.New(slog.NewTextHandler(&buf, nil))
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"pw"}`))
		req.Header.Set("Authorization", "Bearer secret-token")
		rec := httptest.NewRecorder()

		LoggingMiddleware(lg)(ok).ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(buf.String()).To(ContainSubstring("status_code=200"))
		Expect(buf.String()).NotTo(ContainSubstring("secret-token"))
		Expect(buf.String()).NotTo(ContainSubstring("abc"))
	})

	It("keeps an incoming trace id and creates one otherwise", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TraceHeader, "trace-1")
		RequestID(ok).ServeHTTP(rec, req)
		Expect(rec.Header().Get(TraceHeader)).To(Equal("trace-1"))

		rec = httptest.NewRecorder()
		RequestID(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Header().Get(TraceHeader)).To(HaveLen(36))
	})

	It("turns panics into a masked 500", func() {
		boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("db on fire") })
		rec := httptest.NewRecorder()
		RecoveryMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(boom).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("db on fire"))
	})

	It("answers preflight requests only for allowed origins", func() {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://intranet")
		rec := httptest.NewRecorder()
		CORS("http://intranet, http://helpdesk")(ok).ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://intranet"))

		req.Header.Set("Origin", "http://elsewhere")
		rec = httptest.NewRecorder()
		CORS("http://intranet")(ok).ServeHTTP(rec, req)
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	Describe("RequireStaff", func() {
		gate := RequireStaff(staffByName{"Bruno": true}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

		serve := func(id *internal.Identity) int {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if id != nil {
				req = req.WithContext(internal.ContextWithIdentity(req.Context(), *id))
			}
			rec := httptest.NewRecorder()
			gate(ok).ServeHTTP(rec, req)
			return rec.Code
		}

		It("lets staff through", func() {
			Expect(serve(&internal.Identity{Name: "Bruno"})).To(Equal(http.StatusOK))
		})

		It("forbids everyone else", func() {
			Expect(serve(&internal.Identity{Name: "Ana"})).To(Equal(http.StatusForbidden))
		})

		It("rejects anonymous callers", func() {
			Expect(serve(nil)).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("RequireSelfOrStaff", func() {
		router := chi.NewRouter()
		router.With(RequireSelfOrStaff(staffByName{"Bruno": true}, "id", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))).
			Post("/users/{id}/credentials", ok)

		serve := func(id *internal.Identity, target string) int {
			req := httptest.NewRequest(http.MethodPost, "/users/"+target+"/credentials", nil)
			if id != nil {
				req = req.WithContext(internal.ContextWithIdentity(req.Context(), *id))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			return rec.Code
		}

		It("lets users change their own credentials", func() {
			Expect(serve(&internal.Identity{UserID: 7, Name: "Ana"}, "7")).To(Equal(http.StatusOK))
		})

		It("forbids changing somebody else's credentials", func() {
			Expect(serve(&internal.Identity{UserID: 7, Name: "Ana"}, "8")).To(Equal(http.StatusForbidden))
		})

		It("lets staff change anyone's credentials", func() {
			Expect(serve(&internal.Identity{UserID: 2, Name: "Bruno"}, "8")).To(Equal(http.StatusOK))
		})

		It("lets a bootstrap session set the first credentials", func() {
			Expect(serve(&internal.Identity{Name: "admin", Bootstrap: true}, "8")).To(Equal(http.StatusOK))
		})

		It("rejects anonymous callers", func() {
			Expect(serve(nil, "8")).To(Equal(http.StatusUnauthorized))
		})
	})
})
