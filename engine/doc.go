// Package engine hosts the precompiled ARToolKit5 native module.
//
// This package wraps wazero to load the emscripten-built core WebAssembly
// binary, expose its flat entry-point table, and mount an in-memory
// filesystem the host writes asset bytes into before invoking native
// registration calls.
//
// # Architecture
//
// The package provides three main types:
//
//	Engine - Creates and manages the wazero runtime
//	Module - A running native module instance with exports and storage
//	MemFS  - The module's addressable storage, an fs.FS over host memory
//
// # Load Flow
//
//  1. Engine.Load() validates and compiles the core wasm binary
//  2. The MemFS is mounted at the guest root so host writes become
//     guest-visible files
//  3. WASI preview1 and emscripten env thunks are instantiated to satisfy
//     the binary's imports
//  4. Module exposes Func/Constant/WriteFile/CallString to callers
//
// # Calling Convention
//
// The native module is a core wasm binary with numeric-only signatures.
// Entry points taking file paths receive a pointer to a NUL-terminated
// string in guest memory; CallString performs the malloc/write/call/free
// dance through the module's exported allocator.
//
// # Thread Safety
//
// Engine is safe for concurrent use. Module is NOT thread-safe; callers
// must serialize access to the native call surface. The facade package
// does this with a single mutex.
package engine
