package artoolkit

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/AR-js-org/artoolkit5-go/errors"
)

// fakeModule substitutes the wazero-backed native module so facade behavior
// can be tested without a real ARToolKit binary.
type fakeModule struct {
	funcs     map[string]func(args ...uint64) (int32, error)
	consts    map[string]int32
	files     map[string][]byte
	version   string
	callLog   []string
	stringArg map[string]string
}

func newFakeModule() *fakeModule {
	f := &fakeModule{
		funcs:     make(map[string]func(args ...uint64) (int32, error)),
		consts:    map[string]int32{"AR_TEMPLATE_MATCHING_COLOR": 0, "AR_MATRIX_CODE_3x3": 3},
		files:     make(map[string][]byte),
		stringArg: make(map[string]string),
	}
	for _, name := range delegatedFuncs {
		f.funcs[name] = func(...uint64) (int32, error) { return 0, nil }
	}
	return f
}

func (f *fakeModule) HasFunc(name string) bool {
	if name == versionEntryPoint {
		return f.version != ""
	}
	_, ok := f.funcs[name]
	return ok
}

func (f *fakeModule) Constant(name string) (int32, bool) {
	v, ok := f.consts[name]
	return v, ok
}

func (f *fakeModule) WriteFile(path string, data []byte) error {
	f.files[path] = append([]byte(nil), data...)
	return nil
}

func (f *fakeModule) ExportNames() []string {
	names := make([]string, 0, len(f.funcs))
	for name := range f.funcs {
		names = append(names, name)
	}
	return names
}

func (f *fakeModule) Call(_ context.Context, name string, args ...uint64) ([]uint64, error) {
	v, err := f.invoke(name, args...)
	if err != nil {
		return nil, err
	}
	return []uint64{uint64(uint32(v))}, nil
}

func (f *fakeModule) CallI32(_ context.Context, name string, args ...uint64) (int32, error) {
	return f.invoke(name, args...)
}

func (f *fakeModule) CallString(_ context.Context, name, s string, rest ...uint64) (int32, error) {
	f.stringArg[name] = s
	return f.invoke(name, rest...)
}

func (f *fakeModule) CallCString(context.Context, string, ...uint64) (string, error) {
	return f.version, nil
}

func (f *fakeModule) Close(context.Context) error { return nil }

func (f *fakeModule) invoke(name string, args ...uint64) (int32, error) {
	fn, ok := f.funcs[name]
	if !ok {
		return 0, errors.NotFound(errors.PhaseCall, "entry point", name)
	}
	f.callLog = append(f.callLog, name)
	return fn(args...)
}

func newBoundFacade(t *testing.T, fake *fakeModule) *ARToolKit {
	t.Helper()
	a := &ARToolKit{module: fake, logger: zap.NewNop()}
	if err := a.bind(context.Background(), DefaultVersionConstraint); err != nil {
		t.Fatalf("bind: %v", err)
	}
	return a
}

func TestBind_AllDelegatedFuncsResolve(t *testing.T) {
	a := newBoundFacade(t, newFakeModule())

	if got := len(a.BoundFuncs()); got != len(delegatedFuncs) {
		t.Errorf("BoundFuncs() = %d names, want %d", got, len(delegatedFuncs))
	}
}

func TestBind_MissingEntryPointFails(t *testing.T) {
	fake := newFakeModule()
	delete(fake.funcs, "detectMarker")

	a := &ARToolKit{module: fake, logger: zap.NewNop()}
	err := a.bind(context.Background(), DefaultVersionConstraint)
	if err == nil {
		t.Fatal("bind succeeded with missing entry point")
	}

	var structured *errors.Error
	if !stderrors.As(err, &structured) {
		t.Fatalf("expected structured error, got %T", err)
	}
	if structured.Kind != errors.KindNotFound {
		t.Errorf("Kind = %q, want not_found", structured.Kind)
	}
	if !strings.Contains(structured.Detail, "detectMarker") {
		t.Errorf("Detail = %q, want the missing name", structured.Detail)
	}
}

func TestBind_CopiesExportedConstants(t *testing.T) {
	a := newBoundFacade(t, newFakeModule())

	if v, ok := a.Constant("AR_MATRIX_CODE_3x3"); !ok || v != 3 {
		t.Errorf("Constant(AR_MATRIX_CODE_3x3) = %d, %v", v, ok)
	}
	if _, ok := a.Constant("AR_DEBUG_ENABLE"); ok {
		t.Error("constant absent from module must not appear on the facade")
	}
}

func TestBind_VersionGate(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"5.0.3", false},
		{"5.4.0", false},
		{"4.6.0", true},
		{"6.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			fake := newFakeModule()
			fake.version = tt.version

			a := &ARToolKit{module: fake, logger: zap.NewNop()}
			err := a.bind(context.Background(), DefaultVersionConstraint)
			if tt.wantErr {
				if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBind, Kind: errors.KindVersionMismatch}) {
					t.Errorf("err = %v, want version_mismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("bind: %v", err)
			}
			if a.Version() != tt.version {
				t.Errorf("Version() = %q, want %q", a.Version(), tt.version)
			}
		})
	}
}

func TestUnboundFacade_NotInitialized(t *testing.T) {
	var a ARToolKit

	_, err := a.GetMarkerNum(context.Background(), 0)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindNotInitialized}) {
		t.Errorf("err = %v, want not_initialized", err)
	}

	if err := a.StoreFile("/marker_0", []byte("x")); err == nil {
		t.Error("StoreFile on unbound facade succeeded")
	}
}

func TestNextPath_MonotonicAndDistinct(t *testing.T) {
	a := newBoundFacade(t, newFakeModule())

	var paths []string
	for i := 0; i < 4; i++ {
		paths = append(paths, a.NextMarkerPath())
	}

	seen := make(map[string]bool)
	for i, p := range paths {
		want := fmt.Sprintf("/marker_%d", i)
		if p != want {
			t.Errorf("path[%d] = %q, want %q", i, p, want)
		}
		if seen[p] {
			t.Errorf("duplicate path %q", p)
		}
		seen[p] = true
	}
}

func TestNextPath_KindsAreIndependent(t *testing.T) {
	a := newBoundFacade(t, newFakeModule())

	if p := a.NextCameraPath(); p != "/camera_param_0" {
		t.Errorf("camera path = %q", p)
	}
	if p := a.NextMultiMarkerPath(); p != "/multi_marker_0" {
		t.Errorf("multi path = %q", p)
	}
	if p := a.NextMarkerPath(); p != "/marker_0" {
		t.Errorf("marker path = %q", p)
	}
}

func TestNextNFTPrefix_SharesMarkerCounter(t *testing.T) {
	a := newBoundFacade(t, newFakeModule())

	if p := a.NextMarkerPath(); p != "/marker_0" {
		t.Fatalf("marker path = %q", p)
	}
	if p := a.NextNFTPrefix(); p != "/markerNFT_1" {
		t.Errorf("NFT prefix = %q, want /markerNFT_1", p)
	}
	if p := a.NextMarkerPath(); p != "/marker_2" {
		t.Errorf("marker path after NFT = %q, want /marker_2", p)
	}
}

func TestRegisterMarker_PassesPathAndOwner(t *testing.T) {
	fake := newFakeModule()
	fake.funcs["addMarker"] = func(args ...uint64) (int32, error) {
		if len(args) != 1 || args[0] != 7 {
			t.Errorf("addMarker args = %v, want owner id 7", args)
		}
		return 42, nil
	}
	a := newBoundFacade(t, fake)

	h, err := a.RegisterMarker(context.Background(), 7, "/marker_0")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if h != 42 {
		t.Errorf("handle = %d, want 42", h)
	}
	if fake.stringArg["addMarker"] != "/marker_0" {
		t.Errorf("path arg = %q", fake.stringArg["addMarker"])
	}
}

func TestRegister_NegativeHandleIsNativeCallError(t *testing.T) {
	fake := newFakeModule()
	fake.funcs["loadCamera"] = func(...uint64) (int32, error) { return -1, nil }
	a := newBoundFacade(t, fake)

	_, err := a.RegisterCamera(context.Background(), "/camera_param_0")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindNativeCall}) {
		t.Errorf("err = %v, want native_call", err)
	}
}

func TestDelegatedSetterGetter_RoundTrip(t *testing.T) {
	fake := newFakeModule()
	var stored int32
	fake.funcs["setThreshold"] = func(args ...uint64) (int32, error) {
		stored = int32(uint32(args[1]))
		return 0, nil
	}
	fake.funcs["getThreshold"] = func(...uint64) (int32, error) { return stored, nil }
	a := newBoundFacade(t, fake)

	ctx := context.Background()
	if err := a.SetThreshold(ctx, 0, 120); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := a.GetThreshold(ctx, 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != 120 {
		t.Errorf("threshold = %d, want 120", v)
	}
}
