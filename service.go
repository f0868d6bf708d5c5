package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Service owns the collaborators shared by all builders: the transport, the
// template resolver and the identifier classifier.
type Service struct {
	transport  Transport
	templates  TemplateResolver
	classifier *Classifier
	logger     *slog.Logger
	opts       *options
	otel       *otelInstrumentation
}

// NewService creates a new notification service. A transport is required;
// a template resolver is only needed when templates are referenced by name.
func NewService(opts ...Option) (*Service, error) {
	o := newOptions(opts...)

	if o.transport == nil {
		return nil, ErrTransportRequired
	}

	otelInstr, err := newOtelInstrumentation(o)
	if err != nil {
		return nil, fmt.Errorf("init otel: %w", err)
	}

	return &Service{
		transport:  o.transport,
		templates:  o.templates,
		classifier: NewClassifier(o.registry),
		logger:     o.logger,
		opts:       o,
		otel:       otelInstr,
	}, nil
}

// Compose starts a new email builder bound to this service.
func (s *Service) Compose() *Builder {
	return &Builder{
		svc: s,
		email: Email{
			SaveAsInteraction: true,
		},
	}
}

// Classifier returns the identifier classifier used by this service.
func (s *Service) Classifier() *Classifier {
	return s.classifier
}

// send dispatches a finalized configuration through the transport and
// returns its results verbatim.
func (s *Service) send(ctx context.Context, email *Email) ([]SendResult, error) {
	ctx, done := s.otel.startSpan(ctx, "notification.Send",
		attribute.Int("recipient_count", len(email.To)),
		attribute.Bool("save_as_interaction", email.SaveAsInteraction),
	)

	start := time.Now()
	results, err := s.transport.Send(ctx, email)
	s.otel.recordSend(ctx, time.Since(start), len(email.To), email.SaveAsInteraction, err)
	done(err)

	if err != nil {
		s.logger.Error("notification dispatch failed",
			"transport", s.transport.Name(),
			"recipients", len(email.To),
			"error", err,
		)
		return results, err
	}

	s.logger.Debug("notification dispatched",
		"transport", s.transport.Name(),
		"recipients", len(email.To),
		"save_as_interaction", email.SaveAsInteraction,
	)
	return results, nil
}

// resolveTemplate resolves a template name through the configured resolver.
func (s *Service) resolveTemplate(ctx context.Context, name string) (Identifier, error) {
	if s.templates == nil {
		return "", ErrResolverRequired
	}

	ctx, done := s.otel.startSpan(ctx, "notification.ResolveTemplate",
		attribute.String("template_name", name),
	)

	start := time.Now()
	id, err := s.templates.ResolveByName(ctx, name)
	s.otel.recordResolve(ctx, time.Since(start), err)
	done(err)

	return id, err
}
