package notification

import (
	"log/slog"
	"testing"
)

func TestNewOptions(t *testing.T) {
	t.Run("returns defaults without options", func(t *testing.T) {
		opts := newOptions()

		if opts.logger == nil {
			t.Error("expected default logger")
		}
		if opts.transport != nil {
			t.Error("expected no default transport")
		}
		if opts.templates != nil {
			t.Error("expected no default resolver")
		}
		if opts.tracingEnabled || opts.metricsEnabled {
			t.Error("expected telemetry disabled by default")
		}
	})
}

func TestWithLogger(t *testing.T) {
	t.Run("sets custom logger", func(t *testing.T) {
		customLogger := slog.Default()
		opts := newOptions(WithLogger(customLogger))
		if opts.logger != customLogger {
			t.Error("expected custom logger to be set")
		}
	})

	t.Run("ignores nil logger", func(t *testing.T) {
		opts := newOptions(WithLogger(nil))
		if opts.logger == nil {
			t.Error("expected default logger when nil passed")
		}
	})
}

func TestWithTransport(t *testing.T) {
	t.Run("sets transport", func(t *testing.T) {
		tr := &mockTransport{}
		opts := newOptions(WithTransport(tr))
		if opts.transport != Transport(tr) {
			t.Error("expected transport to be set")
		}
	})

	t.Run("ignores nil transport", func(t *testing.T) {
		opts := newOptions(WithTransport(nil))
		if opts.transport != nil {
			t.Error("expected transport to stay unset")
		}
	})
}

func TestWithTemplateResolver(t *testing.T) {
	r := &mockResolver{}
	opts := newOptions(WithTemplateResolver(r))
	if opts.templates != TemplateResolver(r) {
		t.Error("expected resolver to be set")
	}
}

func TestWithTypeRegistry(t *testing.T) {
	reg := prefixMap{"005": TypeUser}
	opts := newOptions(WithTypeRegistry(reg))
	if opts.registry == nil {
		t.Error("expected registry to be set")
	}
}

func TestOTelOptions(t *testing.T) {
	t.Run("WithTracing enables tracing only", func(t *testing.T) {
		opts := newOptions(WithTracing(true))
		if !opts.tracingEnabled {
			t.Error("expected tracing enabled")
		}
		if opts.metricsEnabled {
			t.Error("expected metrics to stay disabled")
		}
	})

	t.Run("WithMetrics enables metrics only", func(t *testing.T) {
		opts := newOptions(WithMetrics(true))
		if !opts.metricsEnabled {
			t.Error("expected metrics enabled")
		}
		if opts.tracingEnabled {
			t.Error("expected tracing to stay disabled")
		}
	})

	t.Run("WithOTel enables both", func(t *testing.T) {
		opts := newOptions(WithOTel(true))
		if !opts.tracingEnabled || !opts.metricsEnabled {
			t.Error("expected both tracing and metrics enabled")
		}
	})

	t.Run("WithServiceName sets non-empty name", func(t *testing.T) {
		opts := newOptions(WithServiceName("mailer"))
		if opts.serviceName != "mailer" {
			t.Errorf("expected service name mailer, got %q", opts.serviceName)
		}
	})

	t.Run("WithServiceName ignores empty name", func(t *testing.T) {
		opts := newOptions(WithServiceName(""))
		if opts.serviceName != "" {
			t.Errorf("expected empty service name, got %q", opts.serviceName)
		}
	})
}
