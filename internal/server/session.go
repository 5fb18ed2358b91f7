package server

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sasha-s/go-deadlock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kyu49/euonymus/internal/config"
	"github.com/kyu49/euonymus/internal/demo"
	"github.com/kyu49/euonymus/internal/errors"
	"github.com/kyu49/euonymus/pkg/dom"
	"github.com/kyu49/euonymus/pkg/instrument"
)

// Session is one page's live state.
type Session struct {
	ID string

	mu       deadlock.Mutex
	doc      *dom.Document
	app      *demo.App
	created  time.Time
	attached bool
	closed   bool

	logger *slog.Logger
	tracer trace.Tracer
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("s%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func newSession(cfg *config.Config, logger *slog.Logger, rec instrument.Recorder, tracer trace.Tracer) (*Session, error) {
	id := generateSessionID()
	logger = logger.With("session", id)

	doc := dom.NewDocument(cfg.Name)
	app, err := demo.New(doc, cfg, logger, rec)
	if err != nil {
		return nil, err
	}

	script := doc.Create("script")
	script.SetAttribute("data-session", id)
	doc.Body().AppendChild(script)
	if err := script.SetInnerHTML(clientScript); err != nil {
		return nil, err
	}

	return &Session{
		ID:      id,
		doc:     doc,
		app:     app,
		created: time.Now(),
		logger:  logger,
		tracer:  tracer,
	}, nil
}

// Render writes the full page with element ids.
func (s *Session) Render() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := s.doc.RenderWithIDs(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Handle applies one raw client message and returns the reply to send.
// Failures are reported in the reply, never as a closed connection.
func (s *Session) Handle(ctx context.Context, data []byte) Reply {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return errorReply(errors.New("E040").Wrap(err))
	}
	html, err := s.Apply(ctx, msg)
	if err != nil {
		e := errors.FromBinding(err)
		s.logger.Warn("event failed", "type", msg.Type, "element", msg.ID, "error", e.FormatCompact())
		return errorReply(e)
	}
	return Reply{HTML: html}
}

func errorReply(e *errors.Error) Reply {
	return Reply{Error: json.RawMessage(e.FormatJSON())}
}

// Apply copies msg's element state into the document, dispatches the event
// and returns the re-rendered page.
func (s *Session) Apply(ctx context.Context, msg Message) (string, error) {
	_, span := s.tracer.Start(ctx, "euonymus."+msg.Type,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("euonymus.session_id", s.ID),
			attribute.String("euonymus.event_type", msg.Type),
			attribute.String("euonymus.event_target", msg.ID),
		))
	defer span.End()

	html, err := s.apply(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetStatus(codes.Ok, "")
	return html, nil
}

func (s *Session) apply(msg Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", errors.Newf(errors.CategoryProtocol, "session %s is closed", s.ID)
	}
	el, ok := s.doc.ElementByID(msg.ID)
	if !ok {
		return "", errors.New("E041").WithDetail(fmt.Sprintf("No element with id %q in this session.", msg.ID))
	}
	switch msg.Type {
	case "input", "change", "click", "submit":
	default:
		return "", errors.New("E040").WithDetail(fmt.Sprintf("Unsupported event type %q.", msg.Type))
	}

	if msg.Value != nil {
		el.SetValue(*msg.Value)
	}
	if msg.SelStart != nil && msg.SelEnd != nil {
		el.SetSelection(*msg.SelStart, *msg.SelEnd)
	}
	if msg.Checked != nil {
		el.SetChecked(*msg.Checked)
	}
	if err := el.Dispatch(msg.Type); err != nil {
		return "", err
	}
	return s.app.Page.OuterHTMLWithIDs(), nil
}

// attach marks the session as connected. A session accepts one
// connection at a time.
func (s *Session) attach() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached || s.closed {
		return false
	}
	s.attached = true
	return true
}

// expired reports whether the session never connected within ttl.
func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.attached && now.Sub(s.created) > ttl
}

// Close disposes the app.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.app.Close()
}
