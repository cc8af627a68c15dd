package artoolkit

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/AR-js-org/artoolkit5-go/engine"
	"github.com/AR-js-org/artoolkit5-go/errors"
)

// nativeModule is the call surface the facade drives. *engine.Module is the
// production implementation; tests substitute a fake.
type nativeModule interface {
	HasFunc(name string) bool
	Constant(name string) (int32, bool)
	WriteFile(path string, data []byte) error
	ExportNames() []string
	Call(ctx context.Context, name string, args ...uint64) ([]uint64, error)
	CallI32(ctx context.Context, name string, args ...uint64) (int32, error)
	CallString(ctx context.Context, name, s string, rest ...uint64) (int32, error)
	CallCString(ctx context.Context, name string, args ...uint64) (string, error)
	Close(ctx context.Context) error
}

// ARToolKit is the facade applications interact with. It owns the native
// module handle, the asset counters, and the set of delegated entry points
// captured at bind time.
type ARToolKit struct {
	engine *engine.Engine
	module nativeModule
	logger *zap.Logger

	mu               sync.Mutex
	markerCount      int
	multiMarkerCount int
	cameraCount      int

	bound     map[string]struct{}
	constants map[string]int32
	version   string
}

// Option is a functional option for configuring the facade.
type Option func(*options)

type options struct {
	logger            *zap.Logger
	memoryLimitPages  uint32
	versionConstraint string
}

// WithLogger installs a logger for facade and engine diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMemoryLimitPages caps the native module's linear memory (64KB pages).
func WithMemoryLimitPages(pages uint32) Option {
	return func(o *options) { o.memoryLimitPages = pages }
}

// WithVersionConstraint overrides DefaultVersionConstraint for the bind-time
// native ABI check.
func WithVersionConstraint(constraint string) Option {
	return func(o *options) { o.versionConstraint = constraint }
}

// New loads the ARToolKit native wasm binary and binds its call surface onto
// a facade. This is the adapter's one-time setup; the returned facade is
// ready for delegated calls and asset ingestion.
func New(ctx context.Context, wasmBytes []byte, opts ...Option) (*ARToolKit, error) {
	o := options{
		logger:            zap.NewNop(),
		versionConstraint: DefaultVersionConstraint,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	eng, err := engine.NewEngine(ctx, &engine.Config{MemoryLimitPages: o.memoryLimitPages})
	if err != nil {
		return nil, errors.Load("create engine", err)
	}

	module, err := eng.Load(ctx, wasmBytes)
	if err != nil {
		_ = eng.Close(ctx)
		return nil, err
	}

	a := &ARToolKit{
		engine: eng,
		module: module,
		logger: o.logger,
	}
	if err := a.bind(ctx, o.versionConstraint); err != nil {
		_ = eng.Close(ctx)
		return nil, err
	}
	return a, nil
}

// Close tears down the native module and the hosting runtime.
func (a *ARToolKit) Close(ctx context.Context) error {
	if a.module != nil {
		_ = a.module.Close(ctx)
	}
	if a.engine != nil {
		return a.engine.Close(ctx)
	}
	return nil
}

// Version returns the native module's reported version, or "" if the build
// does not expose one.
func (a *ARToolKit) Version() string {
	return a.version
}

// Constant returns a native AR_ constant copied onto the facade at bind time.
func (a *ARToolKit) Constant(name string) (int32, bool) {
	v, ok := a.constants[name]
	return v, ok
}

// Constants returns the full bind-time constant map.
func (a *ARToolKit) Constants() map[string]int32 {
	out := make(map[string]int32, len(a.constants))
	for k, v := range a.constants {
		out[k] = v
	}
	return out
}

// BoundFuncs lists the delegated entry points captured at bind time.
func (a *ARToolKit) BoundFuncs() []string {
	out := make([]string, 0, len(a.bound))
	for _, name := range delegatedFuncs {
		if _, ok := a.bound[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// call invokes a delegated entry point after the initialization check.
// All native calls funnel through here and through callString below, under
// the facade mutex; the native surface is never entered concurrently.
func (a *ARToolKit) call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	if err := a.checkBound(name); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.module.Call(ctx, name, args...)
}

func (a *ARToolKit) callI32(ctx context.Context, name string, args ...uint64) (int32, error) {
	if err := a.checkBound(name); err != nil {
		return 0, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.module.CallI32(ctx, name, args...)
}

func (a *ARToolKit) callString(ctx context.Context, name, s string, rest ...uint64) (int32, error) {
	if err := a.checkBound(name); err != nil {
		return 0, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.module.CallString(ctx, name, s, rest...)
}

func (a *ARToolKit) checkBound(name string) error {
	if a == nil || a.module == nil || a.bound == nil {
		return errors.NotInitialized("facade")
	}
	if _, ok := a.bound[name]; !ok {
		return errors.NotFound(errors.PhaseCall, "delegated entry point", name)
	}
	return nil
}

func encodeI32(v int) uint64     { return uint64(uint32(int32(v))) }
func encodeF64(v float64) uint64 { return math.Float64bits(v) }

func (a *ARToolKit) callF64(ctx context.Context, name string, args ...uint64) (float64, error) {
	results, err := a.call(ctx, name, args...)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return math.Float64frombits(results[0]), nil
}

// ---- Counters and storage paths ----
//
// Paths embed a monotonically incremented counter, so no two registrations
// of the same kind can collide. Increment and path capture happen under the
// same mutex acquisition.

// NextCameraPath assigns a storage path for the next camera parameter file.
func (a *ARToolKit) NextCameraPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	path := fmt.Sprintf("/camera_param_%d", a.cameraCount)
	a.cameraCount++
	return path
}

// NextMarkerPath assigns a storage path for the next single marker pattern.
func (a *ARToolKit) NextMarkerPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	path := fmt.Sprintf("/marker_%d", a.markerCount)
	a.markerCount++
	return path
}

// NextMultiMarkerPath assigns a storage path for the next multi-marker
// configuration file.
func (a *ARToolKit) NextMultiMarkerPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	path := fmt.Sprintf("/multi_marker_%d", a.multiMarkerCount)
	a.multiMarkerCount++
	return path
}

// NextNFTPrefix assigns the shared storage prefix for the next NFT triplet.
// NFT markers draw from the marker counter, matching the single-marker
// numbering space.
func (a *ARToolKit) NextNFTPrefix() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	prefix := fmt.Sprintf("/markerNFT_%d", a.markerCount)
	a.markerCount++
	return prefix
}

// StoreFile writes asset bytes into the native module's storage.
func (a *ARToolKit) StoreFile(path string, data []byte) error {
	if a == nil || a.module == nil || a.bound == nil {
		return errors.NotInitialized("facade")
	}
	return a.module.WriteFile(path, data)
}

// ---- Native registration entry points (driven by the assets package) ----

// RegisterCamera registers a stored camera parameter file and returns the
// native camera handle.
func (a *ARToolKit) RegisterCamera(ctx context.Context, path string) (int, error) {
	h, err := a.callString(ctx, "loadCamera", path)
	if err != nil {
		return 0, err
	}
	if h < 0 {
		return 0, errors.NativeCall("loadCamera", h, nil)
	}
	return int(h), nil
}

// RegisterMarker registers a stored pattern file with the owning controller
// and returns the native marker handle.
func (a *ARToolKit) RegisterMarker(ctx context.Context, ownerID int, path string) (int, error) {
	h, err := a.callString(ctx, "addMarker", path, encodeI32(ownerID))
	if err != nil {
		return 0, err
	}
	if h < 0 {
		return 0, errors.NativeCall("addMarker", h, nil)
	}
	return int(h), nil
}

// RegisterMultiMarker registers a stored multi-marker configuration file and
// returns the native multi-marker handle. All dependency pattern files must
// already exist in storage.
func (a *ARToolKit) RegisterMultiMarker(ctx context.Context, ownerID int, path string) (int, error) {
	h, err := a.callString(ctx, "addMultiMarker", path, encodeI32(ownerID))
	if err != nil {
		return 0, err
	}
	if h < 0 {
		return 0, errors.NativeCall("addMultiMarker", h, nil)
	}
	return int(h), nil
}

// RegisterNFTMarker registers a stored NFT triplet by its shared path prefix
// and returns the native NFT marker handle.
func (a *ARToolKit) RegisterNFTMarker(ctx context.Context, ownerID int, prefix string) (int, error) {
	h, err := a.callString(ctx, "addNFTMarker", prefix, encodeI32(ownerID))
	if err != nil {
		return 0, err
	}
	if h < 0 {
		return 0, errors.NativeCall("addNFTMarker", h, nil)
	}
	return int(h), nil
}

// MultiMarkerCount queries how many markers a registered multi-marker
// configuration tracks.
func (a *ARToolKit) MultiMarkerCount(ctx context.Context, multiMarkerID int) (int, error) {
	n, err := a.callI32(ctx, "getMultiMarkerNum", encodeI32(multiMarkerID))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.NativeCall("getMultiMarkerNum", n, nil)
	}
	return int(n), nil
}
