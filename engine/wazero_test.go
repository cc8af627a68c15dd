package engine

import (
	"context"
	stderrors "errors"
	"testing"

	arerrors "github.com/AR-js-org/artoolkit5-go/errors"
)

func TestEngine_LoadRejectsNonWasm(t *testing.T) {
	ctx := context.Background()
	e, err := NewEngine(ctx, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	defer e.Close(ctx)

	if _, err := e.Load(ctx, []byte("not a binary")); err == nil {
		t.Fatal("expected error for non-wasm bytes")
	}
	if _, err := e.Load(ctx, nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestEngine_LoadRejectsComponentBinary(t *testing.T) {
	ctx := context.Background()
	e, err := NewEngine(ctx, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	defer e.Close(ctx)

	// Component Model preamble: magic, version 13, layer 1.
	header := []byte{0x00, 'a', 's', 'm', 0x0d, 0x00, 0x01, 0x00}
	_, err = e.Load(ctx, header)
	if err == nil {
		t.Fatal("expected error for component binary")
	}

	var structured *arerrors.Error
	if !stderrors.As(err, &structured) {
		t.Fatalf("expected structured error, got %T", err)
	}
	if structured.Kind != arerrors.KindInvalidInput {
		t.Errorf("Kind = %q, want invalid_input", structured.Kind)
	}
}

func TestEngine_LoadRejectsTruncatedModule(t *testing.T) {
	ctx := context.Background()
	e, err := NewEngine(ctx, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	defer e.Close(ctx)

	// Valid core preamble followed by a truncated section.
	bytes := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00, 0x01}
	if _, err := e.Load(ctx, bytes); err == nil {
		t.Fatal("expected compile error for truncated module")
	}
}

// The smallest valid core module: magic and version, no sections.
var emptyModule = []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

func TestEngine_LoadEmptyModule(t *testing.T) {
	ctx := context.Background()
	e, err := NewEngine(ctx, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	defer e.Close(ctx)

	mod, err := e.Load(ctx, emptyModule)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(mod.ExportNames()) != 0 {
		t.Errorf("ExportNames() = %v, want empty", mod.ExportNames())
	}

	if _, err := mod.Func("detectMarker"); err == nil {
		t.Error("expected not_found for missing entry point")
	}
	if _, ok := mod.Constant("AR_TEMPLATE_MATCHING_COLOR"); ok {
		t.Error("expected missing constant")
	}

	// Storage works independently of the guest's exports.
	if err := mod.WriteFile("/marker_0", []byte("patt")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := mod.Storage().ReadFile("/marker_0")
	if err != nil || string(got) != "patt" {
		t.Errorf("read back = %q, %v", got, err)
	}
}

func TestEngine_SecondLoadFails(t *testing.T) {
	ctx := context.Background()
	e, err := NewEngine(ctx, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	defer e.Close(ctx)

	if _, err := e.Load(ctx, emptyModule); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := e.Load(ctx, emptyModule); err == nil {
		t.Fatal("second load succeeded, want error")
	}
}
