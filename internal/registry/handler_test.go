package registry_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/fabianopolone123/ERP-TI/internal/core/database/dbtest"
	"github.com/fabianopolone123/ERP-TI/internal/registry"
	"github.com/fabianopolone123/ERP-TI/internal/registry/repository"
	"github.com/fabianopolone123/ERP-TI/internal/transport"
	"github.com/fabianopolone123/ERP-TI/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := dbtest.Open()
		Expect(err).NotTo(HaveOccurred())

		svc := registry.NewService(repository.NewRecordRepository(db), logger.Discard())
		handler := registry.NewHandler(transport.NewBaseHandler(logger.Discard()), svc, "/records")

		router = chi.NewRouter()
		router.Get("/records", handler.ListModules)
		router.Get("/records/{module}", handler.ListRecords)
		router.Post("/records/{module}", handler.CreateRecord)
	})

	It("lists the module index", func() {
		req := httptest.NewRequest(http.MethodGet, "/records", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp registry.ModulesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Modules).To(HaveLen(8))
	})

	It("creates and lists a record", func() {
		req := httptest.NewRequest(http.MethodPost, "/records/emprestimos", strings.NewReader(`{"nome":"Ana","equipamento":"Notebook"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		req = httptest.NewRequest(http.MethodGet, "/records/emprestimos", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"equipamento":"Notebook"`))
	})

	It("redirects unknown modules to the index", func() {
		req := httptest.NewRequest(http.MethodGet, "/records/unknown", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusSeeOther))
		Expect(w.Header().Get("Location")).To(Equal("/records"))
	})

	It("returns 404 when posting to an unknown module", func() {
		req := httptest.NewRequest(http.MethodPost, "/records/unknown", strings.NewReader(`{"a":"b"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("returns 400 for a missing required field", func() {
		req := httptest.NewRequest(http.MethodPost, "/records/ips", strings.NewReader(`{"nome":"printer"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("ip is required"))
	})
})
