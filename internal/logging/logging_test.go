package logging

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uicontrol/pkg/interfaces"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, fields)
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLogger_FallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, HelperModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger, got %T", logger)
	}
	logger.WithContext(context.Background()).Info("dropped")
}

func TestModuleLogger_AnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	ModuleLogger(provider, RulesModule)

	if diff := cmp.Diff([]string{RulesModule}, provider.requested); diff != "" {
		t.Fatalf("requested modules (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]map[string]any{{"module": RulesModule}}, rec.fields); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
}

func TestModuleLogger_DefaultsToRoot(t *testing.T) {
	provider := &stubProvider{}
	logger := ModuleLogger(provider, "  ")
	if diff := cmp.Diff([]string{RootModule}, provider.requested); diff != "" {
		t.Fatalf("requested modules (-want +got):\n%s", diff)
	}
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("nil provider logger should fall back to noop, got %T", logger)
	}
}

func TestWithFields_CopiesInput(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"control_id": "a"}
	WithFields(rec, fields)
	fields["control_id"] = "b"
	if rec.fields[0]["control_id"] != "a" {
		t.Fatalf("expected fields to be copied, got %v", rec.fields[0])
	}
}

func TestWithFields_SkipsEmpty(t *testing.T) {
	rec := &recordingLogger{}
	if got := WithFields(rec, nil); got != rec {
		t.Fatalf("expected same logger back")
	}
	if len(rec.fields) != 0 {
		t.Fatalf("expected no fields call")
	}
}

func TestScoped_NilLogger(t *testing.T) {
	if _, ok := Scoped(nil, HelperModule).(noopLogger); !ok {
		t.Fatalf("expected noop for nil logger")
	}
}

func TestControlFields(t *testing.T) {
	want := map[string]any{"control_id": "x", "control_type": "button"}
	if diff := cmp.Diff(want, ControlFields("x", "button")); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
	if got := ControlFields("", ""); len(got) != 0 {
		t.Fatalf("expected empty fields, got %v", got)
	}
}
