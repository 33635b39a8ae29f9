package chat

import (
	"context"
	"time"

	"softsell-backend/internal/metrics"
	"softsell-backend/pkg/logging"
)

// Kind is how a turn was started in the widget.
type Kind string

const (
	KindMessage    Kind = "message"
	KindPredefined Kind = "predefined"
)

// Source says where a reply came from.
type Source string

const (
	SourceAPI       Source = "api"
	SourceKeyword   Source = "keyword"
	SourceCanonical Source = "canonical"
)

type Resolution struct {
	Text   string
	Source Source
}

// Responder turns a visitor message into a reply. With no Completer it runs
// in fallback-only mode. It never returns an error: every failure resolves
// to a canned reply.
type Responder struct {
	completer Completer
	prompt    Prompt
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

// NewResponder builds a responder. completer may be nil.
func NewResponder(completer Completer, prompt Prompt, logger *logging.Logger, m *metrics.Metrics) *Responder {
	if logger == nil {
		logger = logging.Default()
	}
	return &Responder{
		completer: completer,
		prompt:    prompt,
		logger:    logger,
		metrics:   m,
	}
}

// Online reports whether replies are attempted through the conversational API.
func (r *Responder) Online() bool {
	return r.completer != nil
}

// Reply answers free text typed by the visitor.
func (r *Responder) Reply(ctx context.Context, message string) string {
	return r.Resolve(ctx, KindMessage, message).Text
}

// ReplyPredefined answers one of the predefined shortcut questions.
func (r *Responder) ReplyPredefined(ctx context.Context, question string) string {
	return r.Resolve(ctx, KindPredefined, question).Text
}

func (r *Responder) Resolve(ctx context.Context, kind Kind, message string) Resolution {
	res := r.resolve(ctx, kind, message)
	r.metrics.ObserveReply(string(kind), string(res.Source))
	return res
}

func (r *Responder) resolve(ctx context.Context, kind Kind, message string) Resolution {
	if r.completer == nil {
		return Resolution{Text: Fallback(message), Source: SourceKeyword}
	}

	start := time.Now()
	reply, err := r.completer.Complete(ctx, r.prompt.System, message)
	r.metrics.ObserveAPICall(time.Since(start).Seconds(), err == nil)
	if err == nil {
		return Resolution{Text: reply, Source: SourceAPI}
	}

	r.logger.Warn("conversational api failed, using fallback",
		"kind", string(kind),
		"error", err,
	)
	if kind == KindPredefined {
		return Resolution{Text: predefinedAnswer(message), Source: SourceCanonical}
	}
	return Resolution{Text: Fallback(message), Source: SourceKeyword}
}
