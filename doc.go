// Package artoolkit adapts the precompiled ARToolKit5 native module to a
// stable Go API.
//
// No vision algorithm lives here. Pattern matching, pose estimation, NFT
// recognition, and camera-parameter math all execute inside the opaque wasm
// module this package loads and calls into. What this package owns is the
// boundary: binding the native module's flat entry-point table onto a typed
// facade, and moving marker/camera asset bytes into the module's virtual
// filesystem before invoking native registration calls.
//
// # Architecture Overview
//
//	artoolkit/        Facade: capability binding and typed delegated methods
//	├── assets/       Resource ingestion: camera, marker, multi-marker, NFT
//	├── fetch/        Remote asset retrieval over HTTP
//	├── netutil/      Size-limited reads, transport retry, URL helpers
//	├── engine/       wazero integration and the in-memory guest filesystem
//	└── errors/       Structured phase/kind errors
//
// # Quick Start
//
//	ark, err := artoolkit.New(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ark.Close(ctx)
//
//	loader := assets.NewLoader(ark)
//	camera, err := loader.LoadCamera(ctx, assets.FromURL("https://host/camera_para.dat"))
//	arID, err := ark.Setup(ctx, 640, 480, camera)
//	marker, err := loader.AddMarker(ctx, arID, assets.FromURL("https://host/patt.hiro"))
//
// # Capability Binding
//
// New loads the native module and binds a fixed allow-list of entry points
// onto the facade in one step. Every delegated method checks that binding
// completed; calling one on a zero-value ARToolKit fails with a
// not_initialized error rather than panicking.
//
// # Thread Safety
//
// The native call surface is not reentrant. The facade serializes all
// delegated calls and counter updates behind a single mutex, so an
// ARToolKit value may be shared across goroutines.
package artoolkit
