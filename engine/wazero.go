package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/emscripten"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/AR-js-org/artoolkit5-go/errors"
)

// Engine creates and manages the wazero runtime hosting the native module.
type Engine struct {
	runtime wazero.Runtime
	loaded  bool
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	// NFT feature sets are large; 4096 pages (256MB) is a reasonable cap.
	MemoryLimitPages uint32
}

// NewEngine creates a new wazero-based engine.
func NewEngine(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)

	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	return &Engine{runtime: runtime}, nil
}

// Close releases all engine resources, including any loaded module.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Load compiles and instantiates the ARToolKit core wasm binary.
//
// The binary must be a core module (emscripten standalone build), not a
// Component Model binary. Its WASI and emscripten env imports are satisfied
// here, and the returned Module's storage is mounted at the guest root.
func (e *Engine) Load(ctx context.Context, wasmBytes []byte) (*Module, error) {
	if e.loaded {
		return nil, errors.InvalidInput(errors.PhaseLoad, "engine already hosts a native module")
	}
	if len(wasmBytes) < 8 || string(wasmBytes[0:4]) != "\x00asm" {
		return nil, errors.Load("not a wasm binary", nil)
	}
	if wasmBytes[6] == 1 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "component binaries are not supported; expected an emscripten core module")
	}

	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, e.runtime); err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Load("instantiate wasi", err)
	}

	// Emscripten builds import invoke_* thunks under "env".
	if _, err := emscripten.InstantiateForModule(ctx, e.runtime, compiled); err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Load("instantiate emscripten env", err)
	}

	storage := NewMemFS()
	moduleCfg := wazero.NewModuleConfig().
		WithName("artoolkit").
		WithFSConfig(wazero.NewFSConfig().WithFSMount(storage, "/")).
		WithStartFunctions("_initialize")

	instance, err := e.runtime.InstantiateModule(ctx, compiled, moduleCfg)
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Load("instantiate module", err)
	}

	exportNames := make([]string, 0, len(compiled.ExportedFunctions()))
	for name := range compiled.ExportedFunctions() {
		exportNames = append(exportNames, name)
	}

	e.loaded = true
	Logger().Debug("native module loaded",
		zap.Int("binary_bytes", len(wasmBytes)),
		zap.Int("exported_functions", len(exportNames)))

	return &Module{
		instance: instance,
		storage:  storage,
		exports:  exportNames,
	}, nil
}

// Module is a running native module instance: a flat table of callable entry
// points and constants, plus byte-oriented storage addressed by path.
type Module struct {
	instance api.Module
	storage  *MemFS
	exports  []string
}

// Storage returns the module's addressable storage.
func (m *Module) Storage() *MemFS {
	return m.storage
}

// WriteFile writes asset bytes into native storage at path.
func (m *Module) WriteFile(path string, data []byte) error {
	if err := m.storage.WriteFile(path, data); err != nil {
		return errors.StoreFailed(path, err)
	}
	return nil
}

// ExportNames lists the module's exported function names.
func (m *Module) ExportNames() []string {
	return m.exports
}

// HasFunc reports whether the native call surface exports name.
func (m *Module) HasFunc(name string) bool {
	return m.instance.ExportedFunction(name) != nil
}

// Func resolves a named entry point on the native call surface.
func (m *Module) Func(name string) (api.Function, error) {
	fn := m.instance.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseBind, "entry point", name)
	}
	return fn, nil
}

// Constant reads a named exported global as an i32 constant value.
func (m *Module) Constant(name string) (int32, bool) {
	g := m.instance.ExportedGlobal(name)
	if g == nil {
		return 0, false
	}
	return api.DecodeI32(g.Get()), true
}

// Call invokes a named entry point with raw numeric arguments.
func (m *Module) Call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	fn, err := m.Func(name)
	if err != nil {
		return nil, err
	}
	results, err := fn.Call(ctx, args...)
	if err != nil {
		return nil, errors.NativeCall(name, 0, err)
	}
	return results, nil
}

// CallI32 invokes a named entry point and decodes its single i32 result.
// Entry points with no result yield 0.
func (m *Module) CallI32(ctx context.Context, name string, args ...uint64) (int32, error) {
	results, err := m.Call(ctx, name, args...)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return api.DecodeI32(results[0]), nil
}

// CallString invokes an entry point whose first parameter is a C string.
// The string is written NUL-terminated into guest memory via the module's
// exported allocator and freed after the call returns.
func (m *Module) CallString(ctx context.Context, name, s string, rest ...uint64) (int32, error) {
	malloc, err := m.Func("malloc")
	if err != nil {
		return 0, err
	}
	free, err := m.Func("free")
	if err != nil {
		return 0, err
	}

	size := uint64(len(s) + 1)
	allocated, err := malloc.Call(ctx, size)
	if err != nil || len(allocated) == 0 || allocated[0] == 0 {
		return 0, errors.NativeCall("malloc", 0, err)
	}
	ptr := allocated[0]
	defer func() { _, _ = free.Call(ctx, ptr) }()

	buf := make([]byte, len(s)+1)
	copy(buf, s)
	if !m.instance.Memory().Write(uint32(ptr), buf) {
		return 0, errors.NativeCall(name, 0, errors.InvalidInput(errors.PhaseCall, "string write out of memory bounds"))
	}

	return m.CallI32(ctx, name, append([]uint64{ptr}, rest...)...)
}

// CallCString invokes an entry point returning a pointer to a NUL-terminated
// string in guest memory and copies the string out.
func (m *Module) CallCString(ctx context.Context, name string, args ...uint64) (string, error) {
	results, err := m.Call(ctx, name, args...)
	if err != nil {
		return "", err
	}
	if len(results) == 0 || results[0] == 0 {
		return "", errors.NativeCall(name, 0, errors.InvalidInput(errors.PhaseCall, "entry point returned no string"))
	}

	ptr := uint32(results[0])
	var out []byte
	for {
		chunk, ok := m.instance.Memory().Read(ptr+uint32(len(out)), 64)
		if !ok {
			// Shrink to whatever remains before the memory boundary.
			chunk, ok = m.instance.Memory().Read(ptr+uint32(len(out)), 1)
			if !ok {
				return "", errors.NativeCall(name, 0, errors.InvalidInput(errors.PhaseCall, "unterminated string in guest memory"))
			}
		}
		for i, b := range chunk {
			if b == 0 {
				return string(append(out, chunk[:i]...)), nil
			}
		}
		out = append(out, chunk...)
	}
}

// Close releases the module instance.
func (m *Module) Close(ctx context.Context) error {
	return m.instance.Close(ctx)
}
