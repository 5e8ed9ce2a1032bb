package llm_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"funil.app/crm/common/llm"
	"github.com/anthropics/anthropic-sdk-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openai/openai-go"
)

func openaiErr(status int) error {
	return &openai.Error{
		StatusCode: status,
		Request:    httptest.NewRequest(http.MethodPost, "https://api.openai.com/v1/chat/completions", nil),
		Response:   &http.Response{StatusCode: status},
	}
}

func anthropicErr(status int) error {
	return &anthropic.Error{
		StatusCode: status,
		Request:    httptest.NewRequest(http.MethodPost, "https://api.anthropic.com/v1/messages", nil),
		Response:   &http.Response{StatusCode: status},
	}
}

var _ = Describe("IsOverloaded", func() {
	DescribeTable("classifies provider failures",
		func(err error, expected bool) {
			Expect(llm.IsOverloaded(err)).To(Equal(expected))
		},
		Entry("nil", nil, false),
		Entry("openai 503", openaiErr(503), true),
		Entry("anthropic 503", anthropicErr(503), true),
		Entry("anthropic 529", anthropicErr(529), true),
		Entry("openai 500", openaiErr(500), false),
		Entry("openai 429", openaiErr(429), false),
		Entry("anthropic 400", anthropicErr(400), false),
		Entry("network error", errors.New("connection reset"), false),
	)
})

var _ = Describe("IsRetryable", func() {
	ctx := context.Background()

	It("retries rate limits and server errors", func() {
		Expect(llm.IsRetryable(ctx, openaiErr(429))).To(BeTrue())
		Expect(llm.IsRetryable(ctx, anthropicErr(500))).To(BeTrue())
	})

	It("retries errors without an API response", func() {
		Expect(llm.IsRetryable(ctx, errors.New("dial tcp: i/o timeout"))).To(BeTrue())
	})

	It("does not retry client errors", func() {
		Expect(llm.IsRetryable(ctx, openaiErr(401))).To(BeFalse())
	})

	It("does not retry cancellation", func() {
		Expect(llm.IsRetryable(ctx, context.Canceled)).To(BeFalse())
	})
})

var _ = Describe("DecodeJSON", func() {
	type item struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}

	It("decodes a bare array", func() {
		var out []item
		Expect(llm.DecodeJSON(`[{"id":"a","message":"oi"}]`, &out)).To(Succeed())
		Expect(out).To(HaveLen(1))
		Expect(out[0].Message).To(Equal("oi"))
	})

	It("strips a markdown fence", func() {
		var out struct {
			Suggestions []item `json:"suggestions"`
		}
		text := "```json\n{\"suggestions\":[{\"id\":\"x\",\"message\":\"olá\"}]}\n```"
		Expect(llm.DecodeJSON(text, &out)).To(Succeed())
		Expect(out.Suggestions[0].Message).To(Equal("olá"))
	})

	It("fails when there is no JSON", func() {
		var out []item
		Expect(llm.DecodeJSON("desculpe, não consigo", &out)).NotTo(Succeed())
	})
})

var _ = Describe("New", func() {
	It("requires an API key", func() {
		_, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI})
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown providers", func() {
		_, err := llm.New(llm.Config{Provider: "mistral", APIKey: "k"})
		Expect(err).To(MatchError(ContainSubstring("unsupported")))
	})

	It("builds an anthropic client with its default model", func() {
		c, err := llm.New(llm.Config{Provider: llm.ProviderAnthropic, APIKey: "k"})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Model()).To(HavePrefix("claude-"))
	})
})
