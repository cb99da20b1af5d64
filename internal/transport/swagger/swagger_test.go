package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fabianopolone123/ERP-TI/internal/transport/swagger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("OpenAPI document", func() {
	It("is valid and describes the ticket routes", func() {
		doc, err := swagger.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Paths.Find("/tickets/{id}/move")).NotTo(BeNil())
		Expect(doc.Paths.Find("/records/{module}")).NotTo(BeNil())
	})

	It("is served as yaml", func() {
		rec := httptest.NewRecorder()
		swagger.SpecHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, swagger.SpecURL, nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("openapi: 3.0.3"))
	})
})
