// Package rag orchestrates retrieval-augmented generation: vector
// retrieval, prompt assembly, LLM generation, and the conversation
// history that threads one exchange into the next.
package rag

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arunavtnt-prog/jarvis/internal/provider"
	"github.com/arunavtnt-prog/jarvis/internal/vector"
)

// ErrClosed is returned by Query after Close.
var ErrClosed = errors.New("rag: engine closed")

// Retriever finds facts relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]vector.Result, error)
}

// Interface guard: the vector index is the production retriever.
var _ Retriever = (*vector.Index)(nil)

// Config carries the engine knobs.
type Config struct {
	// UserName names the person whose memories ground the answers.
	UserName string

	// TopK is the number of facts retrieved per query.
	TopK int

	// HistoryWindow is the number of past turns included in each prompt.
	HistoryWindow int

	// HistoryLoad is the number of turns read back from the durable log
	// at startup.
	HistoryLoad int
}

func (c *Config) defaults() {
	if c.TopK == 0 {
		c.TopK = 10
	}
	if c.HistoryWindow == 0 {
		c.HistoryWindow = 5
	}
	if c.HistoryLoad == 0 {
		c.HistoryLoad = 20
	}
}

// Answer is the result of one Query.
type Answer struct {
	Text           string
	FactsRetrieved int
	Model          string
	Timestamp      time.Time
}

// Engine runs the retrieve-prompt-generate pipeline. It is strictly
// sequential: one Query completes fully before the next begins, so no
// internal locking is used.
type Engine struct {
	retriever Retriever
	llm       provider.Provider
	log       *Log
	cfg       Config
	logger    *slog.Logger

	history []Turn
	closed  bool
}

// NewEngine builds an engine and loads the last cfg.HistoryLoad turns
// from log into the in-memory window.
func NewEngine(retriever Retriever, llm provider.Provider, log *Log, cfg Config, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg.defaults()

	e := &Engine{
		retriever: retriever,
		llm:       llm,
		log:       log,
		cfg:       cfg,
		logger:    logger,
	}

	if log != nil {
		turns, err := log.LoadTail(cfg.HistoryLoad)
		if err != nil {
			return nil, err
		}
		e.history = turns
	}

	return e, nil
}

// Query answers text using retrieved memories. Retrieval runs exactly
// once per query; if it fails the engine degrades to answering without
// context rather than failing the query. Generation errors propagate
// to the caller and the turn is not recorded.
func (e *Engine) Query(ctx context.Context, text string) (*Answer, error) {
	if e.closed {
		return nil, ErrClosed
	}

	results, err := e.retriever.Search(ctx, text, e.cfg.TopK)
	if err != nil {
		e.logger.Warn("retrieval failed, answering without context", "error", err)
		results = nil
	}

	contextBlock := buildContext(results)

	resp, err := e.llm.Complete(ctx, provider.Request{
		System:   systemPrompt(e.cfg.UserName),
		Messages: e.buildMessages(contextBlock, text),
	})
	if err != nil {
		return nil, err
	}

	turn := Turn{
		Timestamp:      time.Now(),
		Query:          text,
		Response:       resp.Text,
		FactsRetrieved: len(results),
		ContextPreview: preview(contextBlock),
	}
	e.history = append(e.history, turn)

	if e.log != nil {
		if err := e.log.Append(turn); err != nil {
			e.logger.Warn("conversation log write failed", "error", err)
		}
	}

	return &Answer{
		Text:           resp.Text,
		FactsRetrieved: len(results),
		Model:          resp.Model,
		Timestamp:      turn.Timestamp,
	}, nil
}

// buildMessages assembles the prompt messages: the most recent history
// turns as alternating user/assistant pairs, then the templated query.
func (e *Engine) buildMessages(contextBlock, query string) []provider.Message {
	window := e.history
	if len(window) > e.cfg.HistoryWindow {
		window = window[len(window)-e.cfg.HistoryWindow:]
	}

	msgs := make([]provider.Message, 0, 2*len(window)+1)
	for _, turn := range window {
		msgs = append(msgs,
			provider.Message{Role: provider.RoleUser, Content: turn.Query},
			provider.Message{Role: provider.RoleAssistant, Content: turn.Response},
		)
	}

	return append(msgs, provider.Message{
		Role:    provider.RoleUser,
		Content: userMessage(e.cfg.UserName, contextBlock, query),
	})
}

// ClearHistory empties the in-memory window. The durable log is left
// intact as an audit trail.
func (e *Engine) ClearHistory() {
	e.history = nil
}

// History returns a copy of the in-memory conversation window.
func (e *Engine) History() []Turn {
	out := make([]Turn, len(e.history))
	copy(out, e.history)
	return out
}

// Close marks the engine closed. Safe to call more than once.
func (e *Engine) Close() error {
	e.closed = true
	return nil
}
