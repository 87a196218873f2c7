package recast_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	recast "github.com/reoring/recast"
	"github.com/reoring/recast/schema"
)

func TestTransform_ExactHookIsTerminal(t *testing.T) {
	cfg := &recast.Config{
		Cast: []schema.Type{schema.Int()},
		Hooks: []recast.TypeHook{
			{Type: schema.Int(), Fn: func(v any) (any, error) {
				return fmt.Sprintf("<%v>", v), nil
			}},
		},
	}
	// the exact hook's output is final: no cast runs afterwards
	out, err := recast.Transform("5", schema.Int(), cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "<5>" {
		t.Fatalf("unexpected value: %#v", out)
	}
}

func TestTransform_WildcardRunsBeforeExact(t *testing.T) {
	var order []string
	cfg := &recast.Config{
		Hooks: []recast.TypeHook{
			{Type: schema.Int(), Fn: func(v any) (any, error) {
				order = append(order, "exact")
				return v, nil
			}},
			{Type: schema.Any(), Fn: func(v any) (any, error) {
				order = append(order, "wildcard")
				return v, nil
			}},
		},
	}
	if _, err := recast.Transform(1, schema.Int(), cfg); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"wildcard", "exact"}) {
		t.Fatalf("unexpected hook order: %v", order)
	}
}

func TestTransform_OriginHookThenElementRecursion(t *testing.T) {
	var order []string
	cfg := &recast.Config{
		Hooks: []recast.TypeHook{
			{Type: schema.List(nil), Fn: func(v any) (any, error) {
				order = append(order, "origin")
				return v, nil
			}},
			{Type: schema.Int(), Fn: func(v any) (any, error) {
				order = append(order, "elem")
				return v, nil
			}},
		},
	}
	if _, err := recast.Transform([]any{1, 2}, schema.List(schema.Int()), cfg); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"origin", "elem", "elem"}) {
		t.Fatalf("unexpected hook order: %v", order)
	}
}

func TestTransform_CastScalar(t *testing.T) {
	cfg := &recast.Config{Cast: []schema.Type{schema.Int(), schema.String(), schema.Bool()}}

	for _, tc := range []struct {
		in   any
		to   schema.Type
		want any
	}{
		{"42", schema.Int(), int64(42)},
		{7.9, schema.Int(), int64(7)},
		{42, schema.String(), "42"},
		{"true", schema.Bool(), true},
		{1, schema.Bool(), true},
		{0, schema.Bool(), false},
	} {
		out, err := recast.Transform(tc.in, tc.to, cfg)
		if err != nil {
			t.Fatalf("cast %#v to %s: %v", tc.in, tc.to, err)
		}
		if out != tc.want {
			t.Fatalf("cast %#v to %s: got %#v want %#v", tc.in, tc.to, out, tc.want)
		}
	}
}

func TestTransform_CastFailure(t *testing.T) {
	cfg := &recast.Config{Cast: []schema.Type{schema.Int()}}
	_, err := recast.Transform("abc", schema.Int(), cfg)
	iss, ok := recast.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != recast.CodeTransformFailed {
		t.Fatalf("expected transform_failed, got: %v", err)
	}
}

func TestTransform_CastNamedResolvesToUnderlying(t *testing.T) {
	userID := schema.Named("UserID", schema.Int())
	cfg := &recast.Config{Cast: []schema.Type{userID}}
	out, err := recast.Transform("17", userID, cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != int64(17) {
		t.Fatalf("unexpected value: %#v", out)
	}
}

func TestTransform_SetCastReturnsFreshSequence(t *testing.T) {
	cfg := &recast.Config{Cast: []schema.Type{schema.Set(nil)}}
	in := []any{3, 1, 3, 2, 1}
	out, err := recast.Transform(in, schema.Set(schema.Int()), cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	seq, ok := out.([]any)
	if !ok || !reflect.DeepEqual(seq, in) {
		t.Fatalf("unexpected sequence: %#v", out)
	}
	// deduplication belongs to construction; the cast only detaches the input
	seq[0] = 99
	if in[0] != 3 {
		t.Fatalf("cast must not alias the input slice")
	}
}

func TestTransform_OptionalNilShortCircuits(t *testing.T) {
	called := false
	cfg := &recast.Config{
		Hooks: []recast.TypeHook{
			{Type: schema.Int(), Fn: func(v any) (any, error) {
				called = true
				return v, nil
			}},
		},
	}
	out, err := recast.Transform(nil, schema.Optional(schema.Int()), cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil, got: %#v", out)
	}
	if called {
		t.Fatalf("inner hook must not run for nil optional input")
	}
}

func TestTransform_OptionalPeelsForNonNil(t *testing.T) {
	cfg := &recast.Config{
		Hooks: []recast.TypeHook{
			{Type: schema.String(), Fn: func(v any) (any, error) {
				return strings.ToUpper(v.(string)), nil
			}},
		},
	}
	out, err := recast.Transform("abc", schema.Optional(schema.String()), cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "ABC" {
		t.Fatalf("unexpected value: %#v", out)
	}
}

func TestTransform_ElementWiseKeepsContainerKind(t *testing.T) {
	cfg := &recast.Config{
		Hooks: []recast.TypeHook{
			{Type: schema.Int(), Fn: func(v any) (any, error) {
				return v.(int) * 10, nil
			}},
		},
	}
	out, err := recast.Transform([]any{1, 2}, schema.List(schema.Int()), cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(out, []any{10, 20}) {
		t.Fatalf("unexpected list: %#v", out)
	}

	out, err = recast.Transform(map[string]any{"a": 1}, schema.MapOf(schema.String(), schema.Int()), cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(out, map[string]any{"a": 10}) {
		t.Fatalf("unexpected map: %#v", out)
	}
}

func TestTransform_KindMismatchSkipsElementRecursion(t *testing.T) {
	called := false
	cfg := &recast.Config{
		Hooks: []recast.TypeHook{
			{Type: schema.Int(), Fn: func(v any) (any, error) {
				called = true
				return v, nil
			}},
		},
	}
	// a string is not a sequence, so list-typed recursion leaves it alone
	out, err := recast.Transform("oops", schema.List(schema.Int()), cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "oops" || called {
		t.Fatalf("value should pass through untouched: %#v (hook called=%v)", out, called)
	}
}

func TestTransform_HookErrorSurfacesAsIssue(t *testing.T) {
	cfg := &recast.Config{
		Hooks: []recast.TypeHook{
			{Type: schema.Int(), Fn: func(v any) (any, error) {
				return nil, fmt.Errorf("no good")
			}},
		},
	}
	_, err := recast.Transform(1, schema.Int(), cfg)
	iss, ok := recast.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != recast.CodeTransformFailed {
		t.Fatalf("expected transform_failed, got: %v", err)
	}
	if iss[0].Cause == nil || !strings.Contains(iss[0].Cause.Error(), "no good") {
		t.Fatalf("expected cause preserved, got: %#v", iss[0].Cause)
	}
}
