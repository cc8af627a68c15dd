package artoolkit

import (
	"context"

	"github.com/AR-js-org/artoolkit5-go/errors"
)

// Typed wrappers over the delegated entry points. Each forwards through the
// bound native surface; the int the native side returns as a status code is
// folded into the error, handles and values come back as results.

// Setup creates a native controller for the given frame size and registered
// camera, returning the controller id markers are attached to.
func (a *ARToolKit) Setup(ctx context.Context, width, height, cameraID int) (int, error) {
	id, err := a.callI32(ctx, "setup", encodeI32(width), encodeI32(height), encodeI32(cameraID))
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, errors.NativeCall("setup", id, nil)
	}
	return int(id), nil
}

// Teardown releases a native controller and everything registered to it.
func (a *ARToolKit) Teardown(ctx context.Context, arID int) error {
	_, err := a.call(ctx, "teardown", encodeI32(arID))
	return err
}

// DetectMarker runs square marker detection on the controller's current frame.
func (a *ARToolKit) DetectMarker(ctx context.Context, arID int) error {
	code, err := a.callI32(ctx, "detectMarker", encodeI32(arID))
	if err != nil {
		return err
	}
	if code < 0 {
		return errors.NativeCall("detectMarker", code, nil)
	}
	return nil
}

// DetectNFTMarker runs natural-feature tracking on the controller's current frame.
func (a *ARToolKit) DetectNFTMarker(ctx context.Context, arID int) error {
	code, err := a.callI32(ctx, "detectNFTMarker", encodeI32(arID))
	if err != nil {
		return err
	}
	if code < 0 {
		return errors.NativeCall("detectNFTMarker", code, nil)
	}
	return nil
}

// GetMarkerNum returns the number of markers detected in the current frame.
func (a *ARToolKit) GetMarkerNum(ctx context.Context, arID int) (int, error) {
	n, err := a.callI32(ctx, "getMarkerNum", encodeI32(arID))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// GetMarker stages detection data for one detected marker into the native
// transfer buffer.
func (a *ARToolKit) GetMarker(ctx context.Context, arID, index int) error {
	code, err := a.callI32(ctx, "getMarker", encodeI32(arID), encodeI32(index))
	if err != nil {
		return err
	}
	if code < 0 {
		return errors.NativeCall("getMarker", code, nil)
	}
	return nil
}

// GetNFTMarker stages detection data for one NFT marker into the native
// transfer buffer.
func (a *ARToolKit) GetNFTMarker(ctx context.Context, arID, index int) error {
	code, err := a.callI32(ctx, "getNFTMarker", encodeI32(arID), encodeI32(index))
	if err != nil {
		return err
	}
	if code < 0 {
		return errors.NativeCall("getNFTMarker", code, nil)
	}
	return nil
}

// GetMultiEachMarker stages per-marker data of a multi-marker set.
func (a *ARToolKit) GetMultiEachMarker(ctx context.Context, arID, multiMarkerID, index int) error {
	code, err := a.callI32(ctx, "getMultiEachMarker", encodeI32(arID), encodeI32(multiMarkerID), encodeI32(index))
	if err != nil {
		return err
	}
	if code < 0 {
		return errors.NativeCall("getMultiEachMarker", code, nil)
	}
	return nil
}

// GetTransMatSquare computes the transformation matrix for a detected square
// marker of the given physical width.
func (a *ARToolKit) GetTransMatSquare(ctx context.Context, arID, markerIndex int, width float64) error {
	_, err := a.call(ctx, "getTransMatSquare", encodeI32(arID), encodeI32(markerIndex), encodeF64(width))
	return err
}

// GetTransMatSquareCont computes the transformation matrix using the
// previous frame's matrix as the continuity hint.
func (a *ARToolKit) GetTransMatSquareCont(ctx context.Context, arID, markerIndex int, width float64) error {
	_, err := a.call(ctx, "getTransMatSquareCont", encodeI32(arID), encodeI32(markerIndex), encodeF64(width))
	return err
}

// GetTransMatMultiSquare computes the transformation matrix for a
// multi-marker set.
func (a *ARToolKit) GetTransMatMultiSquare(ctx context.Context, arID, multiMarkerID int) error {
	_, err := a.call(ctx, "getTransMatMultiSquare", encodeI32(arID), encodeI32(multiMarkerID))
	return err
}

// GetTransMatMultiSquareRobust computes the multi-marker transformation
// matrix with robust outlier handling.
func (a *ARToolKit) GetTransMatMultiSquareRobust(ctx context.Context, arID, multiMarkerID int) error {
	_, err := a.call(ctx, "getTransMatMultiSquareRobust", encodeI32(arID), encodeI32(multiMarkerID))
	return err
}

// GetMultiMarkerNum returns how many multi-marker sets a controller tracks.
func (a *ARToolKit) GetMultiMarkerNum(ctx context.Context, arID int) (int, error) {
	n, err := a.callI32(ctx, "getMultiMarkerCount", encodeI32(arID))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// SetThreshold sets the binarization threshold.
func (a *ARToolKit) SetThreshold(ctx context.Context, arID, threshold int) error {
	_, err := a.call(ctx, "setThreshold", encodeI32(arID), encodeI32(threshold))
	return err
}

// GetThreshold returns the binarization threshold.
func (a *ARToolKit) GetThreshold(ctx context.Context, arID int) (int, error) {
	v, err := a.callI32(ctx, "getThreshold", encodeI32(arID))
	return int(v), err
}

// SetThresholdMode selects manual or automatic thresholding.
func (a *ARToolKit) SetThresholdMode(ctx context.Context, arID, mode int) error {
	_, err := a.call(ctx, "setThresholdMode", encodeI32(arID), encodeI32(mode))
	return err
}

// GetThresholdMode returns the active thresholding mode.
func (a *ARToolKit) GetThresholdMode(ctx context.Context, arID int) (int, error) {
	v, err := a.callI32(ctx, "getThresholdMode", encodeI32(arID))
	return int(v), err
}

// SetDebugMode toggles the native debug image.
func (a *ARToolKit) SetDebugMode(ctx context.Context, arID int, enable bool) error {
	v := 0
	if enable {
		v = 1
	}
	_, err := a.call(ctx, "setDebugMode", encodeI32(arID), encodeI32(v))
	return err
}

// GetDebugMode reports whether the native debug image is enabled.
func (a *ARToolKit) GetDebugMode(ctx context.Context, arID int) (bool, error) {
	v, err := a.callI32(ctx, "getDebugMode", encodeI32(arID))
	return v != 0, err
}

// GetProcessingImage returns the guest-memory pointer of the debug image.
func (a *ARToolKit) GetProcessingImage(ctx context.Context, arID int) (uint32, error) {
	v, err := a.callI32(ctx, "getProcessingImage", encodeI32(arID))
	return uint32(v), err
}

// SetLogLevel sets the native library's log verbosity.
func (a *ARToolKit) SetLogLevel(ctx context.Context, level int) error {
	_, err := a.call(ctx, "setLogLevel", encodeI32(level))
	return err
}

// GetLogLevel returns the native library's log verbosity.
func (a *ARToolKit) GetLogLevel(ctx context.Context) (int, error) {
	v, err := a.callI32(ctx, "getLogLevel")
	return int(v), err
}

// SetMarkerInfoDir sets the direction field of a detected marker.
func (a *ARToolKit) SetMarkerInfoDir(ctx context.Context, arID, markerIndex, dir int) error {
	_, err := a.call(ctx, "setMarkerInfoDir", encodeI32(arID), encodeI32(markerIndex), encodeI32(dir))
	return err
}

// SetMarkerInfoVertex recomputes a detected marker's vertices from its
// direction.
func (a *ARToolKit) SetMarkerInfoVertex(ctx context.Context, arID, markerIndex int) error {
	_, err := a.call(ctx, "setMarkerInfoVertex", encodeI32(arID), encodeI32(markerIndex))
	return err
}

// SetProjectionNearPlane sets the near clip plane used when deriving the
// camera projection matrix.
func (a *ARToolKit) SetProjectionNearPlane(ctx context.Context, arID int, value float64) error {
	_, err := a.call(ctx, "setProjectionNearPlane", encodeI32(arID), encodeF64(value))
	return err
}

// GetProjectionNearPlane returns the near clip plane.
func (a *ARToolKit) GetProjectionNearPlane(ctx context.Context, arID int) (float64, error) {
	return a.callF64(ctx, "getProjectionNearPlane", encodeI32(arID))
}

// SetProjectionFarPlane sets the far clip plane used when deriving the
// camera projection matrix.
func (a *ARToolKit) SetProjectionFarPlane(ctx context.Context, arID int, value float64) error {
	_, err := a.call(ctx, "setProjectionFarPlane", encodeI32(arID), encodeF64(value))
	return err
}

// GetProjectionFarPlane returns the far clip plane.
func (a *ARToolKit) GetProjectionFarPlane(ctx context.Context, arID int) (float64, error) {
	return a.callF64(ctx, "getProjectionFarPlane", encodeI32(arID))
}

// SetPatternDetectionMode selects template, matrix, or combined detection.
func (a *ARToolKit) SetPatternDetectionMode(ctx context.Context, arID, mode int) error {
	_, err := a.call(ctx, "setPatternDetectionMode", encodeI32(arID), encodeI32(mode))
	return err
}

// GetPatternDetectionMode returns the active pattern detection mode.
func (a *ARToolKit) GetPatternDetectionMode(ctx context.Context, arID int) (int, error) {
	v, err := a.callI32(ctx, "getPatternDetectionMode", encodeI32(arID))
	return int(v), err
}

// SetMatrixCodeType selects the barcode dictionary for matrix markers.
func (a *ARToolKit) SetMatrixCodeType(ctx context.Context, arID, codeType int) error {
	_, err := a.call(ctx, "setMatrixCodeType", encodeI32(arID), encodeI32(codeType))
	return err
}

// GetMatrixCodeType returns the barcode dictionary for matrix markers.
func (a *ARToolKit) GetMatrixCodeType(ctx context.Context, arID int) (int, error) {
	v, err := a.callI32(ctx, "getMatrixCodeType", encodeI32(arID))
	return int(v), err
}

// SetLabelingMode selects black or white region labeling.
func (a *ARToolKit) SetLabelingMode(ctx context.Context, arID, mode int) error {
	_, err := a.call(ctx, "setLabelingMode", encodeI32(arID), encodeI32(mode))
	return err
}

// GetLabelingMode returns the labeling mode.
func (a *ARToolKit) GetLabelingMode(ctx context.Context, arID int) (int, error) {
	v, err := a.callI32(ctx, "getLabelingMode", encodeI32(arID))
	return int(v), err
}

// SetPattRatio sets the pattern border ratio.
func (a *ARToolKit) SetPattRatio(ctx context.Context, arID int, ratio float64) error {
	_, err := a.call(ctx, "setPattRatio", encodeI32(arID), encodeF64(ratio))
	return err
}

// GetPattRatio returns the pattern border ratio.
func (a *ARToolKit) GetPattRatio(ctx context.Context, arID int) (float64, error) {
	return a.callF64(ctx, "getPattRatio", encodeI32(arID))
}

// SetImageProcMode selects frame or field image processing.
func (a *ARToolKit) SetImageProcMode(ctx context.Context, arID, mode int) error {
	_, err := a.call(ctx, "setImageProcMode", encodeI32(arID), encodeI32(mode))
	return err
}

// GetImageProcMode returns the image processing mode.
func (a *ARToolKit) GetImageProcMode(ctx context.Context, arID int) (int, error) {
	v, err := a.callI32(ctx, "getImageProcMode", encodeI32(arID))
	return int(v), err
}
