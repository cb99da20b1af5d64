package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fabianopolone123/ERP-TI/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Logger", func() {
	It("writes JSON records in production", func() {
		var buf bytes.Buffer
		l := logger.New(&buf, logger.Options{Env: "production"})
		l.Info("ticket moved", "ticket_id", 3)

		var rec map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &rec)).To(Succeed())
		Expect(rec["msg"]).To(Equal("ticket moved"))
		Expect(rec["ticket_id"]).To(BeNumerically("==", 3))
	})

	It("drops debug records when level is warn", func() {
		var buf bytes.Buffer
		l := logger.New(&buf, logger.Options{Format: "json", Level: "warn"})
		l.Debug("hidden")
		l.Info("hidden too")
		Expect(buf.Len()).To(BeZero())
	})

	It("uses plain text output for non terminals", func() {
		var buf bytes.Buffer
		l := logger.New(&buf, logger.Options{Env: "development"})
		l.Info("hello", "who", "staff")
		Expect(buf.String()).To(ContainSubstring("hello"))
		Expect(buf.String()).To(ContainSubstring("who=staff"))
		Expect(buf.String()).NotTo(ContainSubstring("\x1b["))
	})

	It("carries fields through the context", func() {
		ctx := logger.With(context.Background(), "request_id", "abc")
		Expect(logger.From(ctx)).NotTo(BeIdenticalTo(logger.LoggerWrapper()))
		Expect(logger.From(context.Background())).To(BeIdenticalTo(logger.LoggerWrapper()))
	})
})
