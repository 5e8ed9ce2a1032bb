package retry_test

import (
	"context"
	"errors"
	"time"

	"funil.app/crm/common/retry"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var errBusy = errors.New("busy")
var errFatal = errors.New("fatal")

var _ = Describe("Policy", func() {
	var (
		ctx    context.Context
		slept  []time.Duration
		policy retry.Policy
	)

	BeforeEach(func() {
		ctx = context.Background()
		slept = nil
		policy = retry.Policy{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			Retryable:   func(err error) bool { return errors.Is(err, errBusy) },
			Sleep: func(_ context.Context, d time.Duration) error {
				slept = append(slept, d)
				return nil
			},
		}
	})

	It("returns the first success without sleeping", func() {
		v, err := retry.Do(ctx, policy, func(context.Context, int) (string, error) {
			return "ok", nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("ok"))
		Expect(slept).To(BeEmpty())
	})

	It("retries transient failures with linear backoff", func() {
		calls := 0
		v, err := retry.Do(ctx, policy, func(_ context.Context, attempt int) (int, error) {
			calls++
			if attempt < 3 {
				return 0, errBusy
			}
			return attempt, nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(3))
		Expect(calls).To(Equal(3))
		Expect(slept).To(Equal([]time.Duration{time.Second, 2 * time.Second}))
	})

	It("stops after MaxAttempts and wraps the last error", func() {
		calls := 0
		_, err := retry.Do(ctx, policy, func(context.Context, int) (int, error) {
			calls++
			return 0, errBusy
		})
		Expect(calls).To(Equal(3))
		Expect(err).To(MatchError(retry.ErrExhausted))
		Expect(err).To(MatchError(errBusy))
		Expect(slept).To(HaveLen(2))
	})

	It("surfaces non-retryable errors immediately", func() {
		calls := 0
		_, err := retry.Do(ctx, policy, func(context.Context, int) (int, error) {
			calls++
			return 0, errFatal
		})
		Expect(calls).To(Equal(1))
		Expect(err).To(Equal(errFatal))
		Expect(slept).To(BeEmpty())
	})

	It("aborts when the context is cancelled while waiting", func() {
		cctx, cancel := context.WithCancel(ctx)
		policy.Sleep = func(context.Context, time.Duration) error {
			cancel()
			return context.Canceled
		}
		calls := 0
		_, err := retry.Do(cctx, policy, func(context.Context, int) (int, error) {
			calls++
			return 0, errBusy
		})
		Expect(calls).To(Equal(1))
		Expect(err).To(MatchError(context.Canceled))
	})

	It("reports each retry to OnRetry", func() {
		var attempts []int
		policy.OnRetry = func(attempt int, _ error, _ time.Duration) {
			attempts = append(attempts, attempt)
		}
		_, _ = retry.Do(ctx, policy, func(context.Context, int) (int, error) {
			return 0, errBusy
		})
		Expect(attempts).To(Equal([]int{1, 2}))
	})
})

var _ = Describe("SleepContext", func() {
	It("returns early on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(retry.SleepContext(ctx, time.Hour)).To(MatchError(context.Canceled))
	})
})
