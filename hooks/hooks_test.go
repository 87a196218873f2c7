package hooks_test

import (
	"testing"
	"time"

	recast "github.com/reoring/recast"
	"github.com/reoring/recast/hooks"
	"github.com/reoring/recast/schema"
)

func TestRFC3339_ParsesWireStrings(t *testing.T) {
	rec := schema.NewRecord("Event").
		Field("name", schema.String()).
		Field("at", hooks.Time()).
		MustBuild()

	cfg := &recast.Config{Hooks: []recast.TypeHook{hooks.RFC3339()}}
	out, err := recast.FromMap(rec, map[string]any{
		"name": "deploy",
		"at":   "2026-08-30T12:00:00Z",
	}, cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	at, ok := out.Value("at").(time.Time)
	if !ok || !at.Equal(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %#v", out.Value("at"))
	}
}

func TestRFC3339_TimeValuesPassThrough(t *testing.T) {
	rec := schema.NewRecord("Event").
		Field("at", hooks.Time()).
		MustBuild()

	now := time.Now()
	cfg := &recast.Config{Hooks: []recast.TypeHook{hooks.RFC3339()}}
	out, err := recast.FromMap(rec, map[string]any{"at": now}, cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !out.Value("at").(time.Time).Equal(now) {
		t.Fatalf("unexpected time: %#v", out.Value("at"))
	}
}

func TestRFC3339_RejectsBadInput(t *testing.T) {
	rec := schema.NewRecord("Event").
		Field("at", hooks.Time()).
		MustBuild()

	cfg := &recast.Config{Hooks: []recast.TypeHook{hooks.RFC3339()}}
	_, err := recast.FromMap(rec, map[string]any{"at": "yesterday-ish"}, cfg)
	iss, ok := recast.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != recast.CodeTransformFailed || iss[0].Path != "at" {
		t.Fatalf("expected transform_failed at at, got: %v", err)
	}
}

func TestFormatRFC3339_Canonical(t *testing.T) {
	in := time.Date(2026, 8, 30, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	if got := hooks.FormatRFC3339(in); got != "2026-08-30T12:30:00Z" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestChain(t *testing.T) {
	fn := hooks.Chain(hooks.TrimSpace(), hooks.Lower())
	out, err := fn("  MiXeD  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "mixed" {
		t.Fatalf("unexpected value: %#v", out)
	}
}

func TestChain_Empty(t *testing.T) {
	out, err := hooks.Chain()("as-is")
	if err != nil || out != "as-is" {
		t.Fatalf("unexpected: %#v, %v", out, err)
	}
}

func TestIdentity(t *testing.T) {
	out, err := hooks.Identity()(42)
	if err != nil || out != 42 {
		t.Fatalf("unexpected: %#v, %v", out, err)
	}
}

func TestStrings_NormalizesEveryStringField(t *testing.T) {
	rec := schema.NewRecord("User").
		Field("email", schema.String()).
		Field("age", schema.Int()).
		MustBuild()

	cfg := &recast.Config{Hooks: []recast.TypeHook{
		hooks.Strings(hooks.Chain(hooks.TrimSpace(), hooks.Lower())),
	}}
	out, err := recast.FromMap(rec, map[string]any{
		"email": " Ann@Example.COM ",
		"age":   30,
	}, cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Value("email") != "ann@example.com" {
		t.Fatalf("unexpected email: %#v", out.Value("email"))
	}
	if out.Value("age") != 30 {
		t.Fatalf("non-string fields must stay untouched: %#v", out.Value("age"))
	}
}
