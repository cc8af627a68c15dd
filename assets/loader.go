package assets

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AR-js-org/artoolkit5-go/errors"
	"github.com/AR-js-org/artoolkit5-go/fetch"
	"github.com/AR-js-org/artoolkit5-go/netutil"
)

// Registrar is the slice of the native call surface the ingestion pipeline
// drives: path assignment, storage writes, and the registration entry
// points. *artoolkit.ARToolKit implements it.
type Registrar interface {
	StoreFile(path string, data []byte) error

	NextCameraPath() string
	NextMarkerPath() string
	NextMultiMarkerPath() string
	NextNFTPrefix() string

	RegisterCamera(ctx context.Context, path string) (int, error)
	RegisterMarker(ctx context.Context, ownerID int, path string) (int, error)
	RegisterMultiMarker(ctx context.Context, ownerID int, path string) (int, error)
	RegisterNFTMarker(ctx context.Context, ownerID int, prefix string) (int, error)
	MultiMarkerCount(ctx context.Context, multiMarkerID int) (int, error)
}

// Source describes where one asset's bytes come from: either in-memory data
// or a remote locator.
type Source struct {
	data    []byte
	locator string
}

// FromBytes wraps in-memory asset bytes.
func FromBytes(data []byte) Source {
	return Source{data: data}
}

// FromURL wraps a remote locator. For AddMarker, a string containing a line
// break is treated as inline pattern text rather than a locator.
func FromURL(locator string) Source {
	return Source{locator: locator}
}

// NFT triplet suffixes appended to the base locator and the storage prefix.
var nftSuffixes = []string{".fset", ".iset", ".fset3"}

// Option is a functional option for configuring a Loader.
type Option func(*Loader)

// WithFetcher overrides the default HTTP fetcher.
func WithFetcher(f fetch.Fetcher) Option {
	return func(l *Loader) { l.fetcher = f }
}

// WithLogger installs a logger for load diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// Loader is the resource ingestion pipeline bound to one facade.
type Loader struct {
	reg     Registrar
	fetcher fetch.Fetcher
	logger  *zap.Logger
}

// NewLoader creates a loader driving the given registrar.
func NewLoader(reg Registrar, opts ...Option) *Loader {
	l := &Loader{
		reg:     reg,
		fetcher: fetch.NewHTTPFetcher(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// resolve obtains the asset bytes: in-memory data wins, otherwise the
// locator is fetched.
func (l *Loader) resolve(ctx context.Context, src Source) ([]byte, error) {
	if src.data != nil {
		return src.data, nil
	}
	if src.locator == "" {
		return nil, errors.InvalidInput(errors.PhaseFetch, "empty asset source")
	}
	return l.fetcher.Fetch(ctx, src.locator)
}

// storeAndRegister is the shared tail of every load: write the bytes at
// path, then run the registration call. Registration never runs if the
// store fails.
func (l *Loader) storeAndRegister(path string, data []byte, register func(path string) (int, error)) (int, error) {
	if err := l.reg.StoreFile(path, data); err != nil {
		return 0, err
	}
	return register(path)
}

// LoadCamera loads a camera parameter file and returns the native camera
// handle.
func (l *Loader) LoadCamera(ctx context.Context, src Source) (int, error) {
	data, err := l.resolve(ctx, src)
	if err != nil {
		return 0, err
	}

	path := l.reg.NextCameraPath()
	handle, err := l.storeAndRegister(path, data, func(path string) (int, error) {
		return l.reg.RegisterCamera(ctx, path)
	})
	if err != nil {
		return 0, err
	}

	l.logger.Debug("camera loaded", zap.String("path", path), zap.Int("handle", handle))
	return handle, nil
}

// AddMarker loads a single square marker pattern for the owning controller
// and returns the native marker handle. A source string containing a line
// break is decoded as inline pattern text; anything else is fetched.
func (l *Loader) AddMarker(ctx context.Context, ownerID int, src Source) (int, error) {
	var data []byte
	var err error
	if src.data == nil && strings.ContainsRune(src.locator, '\n') {
		data = []byte(src.locator)
	} else {
		data, err = l.resolve(ctx, src)
		if err != nil {
			return 0, err
		}
	}

	path := l.reg.NextMarkerPath()
	handle, err := l.storeAndRegister(path, data, func(path string) (int, error) {
		return l.reg.RegisterMarker(ctx, ownerID, path)
	})
	if err != nil {
		return 0, err
	}

	l.logger.Debug("marker loaded", zap.String("path", path), zap.Int("handle", handle))
	return handle, nil
}

// AddMultiMarker loads a multi-marker configuration and its dependency
// pattern files, returning the native multi-marker handle and the number of
// markers the configuration tracks.
//
// Dependencies are fetched strictly sequentially in list order; each is
// stored before the next fetch starts, and the primary file is only
// registered once every dependency exists in native storage. The first
// fetch failure aborts the remaining chain.
func (l *Loader) AddMultiMarker(ctx context.Context, ownerID int, locator string) (int, int, error) {
	data, err := l.fetcher.Fetch(ctx, locator)
	if err != nil {
		return 0, 0, err
	}

	deps, err := ParseDependencies(data)
	if err != nil {
		return 0, 0, errors.ParseFailed("multi-marker configuration "+netutil.StripCredentials(locator), err)
	}

	for _, dep := range deps {
		depData, err := l.fetcher.Fetch(ctx, netutil.ResolveRelative(locator, dep))
		if err != nil {
			return 0, 0, err
		}
		// Stored under the name the configuration references, so the
		// native parser resolves it relative to the storage root.
		if err := l.reg.StoreFile("/"+strings.TrimPrefix(dep, "/"), depData); err != nil {
			return 0, 0, err
		}
	}

	path := l.reg.NextMultiMarkerPath()
	handle, err := l.storeAndRegister(path, data, func(path string) (int, error) {
		return l.reg.RegisterMultiMarker(ctx, ownerID, path)
	})
	if err != nil {
		return 0, 0, err
	}

	count, err := l.reg.MultiMarkerCount(ctx, handle)
	if err != nil {
		return 0, 0, err
	}

	l.logger.Debug("multi-marker loaded",
		zap.String("path", path),
		zap.Int("handle", handle),
		zap.Int("markers", count),
		zap.Int("dependencies", len(deps)))
	return handle, count, nil
}

// AddNFTMarker loads the three companion files of an NFT marker and returns
// the native NFT handle. The parts are independent until registration, so
// they are fetched and stored concurrently; registration happens only after
// all three stores complete, and never if any fetch fails.
func (l *Loader) AddNFTMarker(ctx context.Context, ownerID int, baseLocator string) (int, error) {
	prefix := l.reg.NextNFTPrefix()

	g, gctx := errgroup.WithContext(ctx)
	for _, suffix := range nftSuffixes {
		suffix := suffix
		g.Go(func() error {
			data, err := l.fetcher.Fetch(gctx, baseLocator+suffix)
			if err != nil {
				return err
			}
			return l.reg.StoreFile(prefix+suffix, data)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	handle, err := l.reg.RegisterNFTMarker(ctx, ownerID, prefix)
	if err != nil {
		return 0, err
	}

	l.logger.Debug("NFT marker loaded", zap.String("prefix", prefix), zap.Int("handle", handle))
	return handle, nil
}
