package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softsell-backend/internal/metrics"
	"softsell-backend/pkg/logging"
)

// fakeCompleter records calls and returns a fixed reply or error.
type fakeCompleter struct {
	mu     sync.Mutex
	reply  string
	err    error
	calls  int
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.system = system
	f.user = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func offlineResponder() *Responder {
	return NewResponder(nil, DefaultPrompt(), logging.Nop(), nil)
}

func onlineResponder(c Completer) *Responder {
	return NewResponder(c, DefaultPrompt(), logging.Nop(), metrics.New(prometheus.NewRegistry()))
}

func TestResponder_OfflineSellQuestion(t *testing.T) {
	r := offlineResponder()

	assert.False(t, r.Online())
	assert.Equal(t, fallbackSell, r.Reply(context.Background(), "How do I sell my license?"))
}

func TestResponder_OfflineGeneric(t *testing.T) {
	assert.Equal(t, fallbackGeneric, offlineResponder().Reply(context.Background(), "What's the weather"))
}

func TestResponder_OfflinePredefinedUsesKeywords(t *testing.T) {
	// With no API configured predefined questions go through keyword
	// matching, so the timing question lands on the process summary.
	got := offlineResponder().ReplyPredefined(context.Background(), QuestionTiming)

	assert.Equal(t, fallbackProcess, got)
}

func TestResponder_APISuccessIsVerbatim(t *testing.T) {
	fc := &fakeCompleter{reply: "  We buy Adobe licenses!\n"}
	r := onlineResponder(fc)

	res := r.Resolve(context.Background(), KindMessage, "Do you buy Adobe?")

	assert.True(t, r.Online())
	assert.Equal(t, "  We buy Adobe licenses!\n", res.Text)
	assert.Equal(t, SourceAPI, res.Source)
	assert.Equal(t, 1, fc.calls)
	assert.Equal(t, "Do you buy Adobe?", fc.user)
	assert.Equal(t, DefaultPrompt().System, fc.system)
}

func TestResponder_APIFailureFreeTextUsesKeywords(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("connection refused")}
	r := onlineResponder(fc)

	res := r.Resolve(context.Background(), KindMessage, "I want a valuation")

	assert.Equal(t, fallbackWorth, res.Text)
	assert.Equal(t, SourceKeyword, res.Source)
}

func TestResponder_APIFailurePredefinedUsesCanonical(t *testing.T) {
	fc := &fakeCompleter{err: ErrEmptyCompletion}
	r := onlineResponder(fc)

	tests := map[string]string{
		QuestionSell:          fallbackSell,
		QuestionTiming:        predefinedTiming,
		QuestionLicense:       fallbackTypes,
		"Something unrelated": predefinedOther,
	}
	for q, want := range tests {
		res := r.Resolve(context.Background(), KindPredefined, q)
		assert.Equal(t, want, res.Text, q)
		assert.Equal(t, SourceCanonical, res.Source, q)
	}
}

func TestResponder_APISuccessPredefined(t *testing.T) {
	fc := &fakeCompleter{reply: "Usually under a week."}

	got := onlineResponder(fc).ReplyPredefined(context.Background(), QuestionTiming)

	assert.Equal(t, "Usually under a week.", got)
}

func TestResponder_CancelledContextFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fc := &fakeCompleter{err: context.Canceled}

	got := onlineResponder(fc).Reply(ctx, "payment?")

	assert.Equal(t, fallbackPayment, got)
}

func TestRateLimitedCompleter(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	rl := NewRateLimitedCompleter(fc, 0.0001, 1)

	first, err := rl.Complete(context.Background(), "sys", "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", first)

	_, err = rl.Complete(context.Background(), "sys", "hi again")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, fc.calls)

	r := onlineResponder(rl)
	assert.Equal(t, fallbackWorth, r.Reply(context.Background(), "what's it worth"))
	assert.Equal(t, 1, fc.calls)
}
