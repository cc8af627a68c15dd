package artoolkit

import (
	"context"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/AR-js-org/artoolkit5-go/errors"
)

// bind adapts the native module's flat export table into the facade's call
// surface. It runs exactly once, from New, after the module is loaded:
//
//  1. Every name on the delegated allow-list must resolve to an exported
//     function; the first miss aborts binding.
//  2. Every reserved AR_ constant the module exports is copied onto the
//     facade. Absent constants are skipped without error.
//  3. If the build exposes a version entry point, the reported version is
//     checked against the supported ABI range.
//
// Delegated calls made before bind completes fail with not_initialized.
func (a *ARToolKit) bind(ctx context.Context, versionConstraint string) error {
	bound := make(map[string]struct{}, len(delegatedFuncs))
	for _, name := range delegatedFuncs {
		if !a.module.HasFunc(name) {
			return errors.NotFound(errors.PhaseBind, "entry point", name)
		}
		bound[name] = struct{}{}
	}

	constants := make(map[string]int32)
	for _, name := range constantNames {
		if v, ok := a.module.Constant(name); ok {
			constants[name] = v
		}
	}

	if a.module.HasFunc(versionEntryPoint) {
		version, err := a.checkVersion(ctx, versionConstraint)
		if err != nil {
			return err
		}
		a.version = version
	}

	a.bound = bound
	a.constants = constants

	a.logger.Info("native call surface bound",
		zap.Int("entry_points", len(bound)),
		zap.Int("constants", len(constants)),
		zap.String("version", a.version))
	return nil
}

func (a *ARToolKit) checkVersion(ctx context.Context, constraint string) (string, error) {
	reported, err := a.module.CallCString(ctx, versionEntryPoint)
	if err != nil {
		return "", errors.Wrap(errors.PhaseBind, errors.KindNativeCall, err, "query native version")
	}

	version, err := semver.NewVersion(reported)
	if err != nil {
		return "", errors.Wrap(errors.PhaseBind, errors.KindParseFailed, err, "native version "+reported)
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", errors.InvalidInput(errors.PhaseBind, "version constraint "+constraint)
	}

	if !c.Check(version) {
		return "", errors.VersionMismatch(reported, constraint)
	}
	return reported, nil
}
