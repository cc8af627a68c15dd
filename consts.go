package artoolkit

// delegatedFuncs is the fixed allow-list of native entry points bound onto
// the facade. Binding fails if any of these is missing from the module's
// export table; the adapter never discovers entry points dynamically.
var delegatedFuncs = []string{
	"setup",
	"teardown",
	"setLogLevel",
	"getLogLevel",
	"setDebugMode",
	"getDebugMode",
	"getProcessingImage",
	"setMarkerInfoDir",
	"setMarkerInfoVertex",
	"getTransMatSquare",
	"getTransMatSquareCont",
	"getTransMatMultiSquare",
	"getTransMatMultiSquareRobust",
	"getMultiMarkerNum",
	"getMultiMarkerCount",
	"detectMarker",
	"getMarkerNum",
	"detectNFTMarker",
	"getNFTMarker",
	"getMarker",
	"getMultiEachMarker",
	"setProjectionNearPlane",
	"getProjectionNearPlane",
	"setProjectionFarPlane",
	"getProjectionFarPlane",
	"setThresholdMode",
	"getThresholdMode",
	"setThreshold",
	"getThreshold",
	"setPatternDetectionMode",
	"getPatternDetectionMode",
	"setMatrixCodeType",
	"getMatrixCodeType",
	"setLabelingMode",
	"getLabelingMode",
	"setPattRatio",
	"getPattRatio",
	"setImageProcMode",
	"getImageProcMode",
	"loadCamera",
	"addMarker",
	"addMultiMarker",
	"addNFTMarker",
}

// constantNames lists the reserved AR_-prefixed symbols probed on the native
// module at bind time. Symbols the module exports are copied into the facade
// constant map; absent names are skipped.
var constantNames = []string{
	"AR_DEBUG_DISABLE",
	"AR_DEBUG_ENABLE",
	"AR_DEFAULT_DEBUG_MODE",
	"AR_LABELING_WHITE_REGION",
	"AR_LABELING_BLACK_REGION",
	"AR_DEFAULT_LABELING_MODE",
	"AR_DEFAULT_LABELING_THRESH",
	"AR_IMAGE_PROC_FRAME_IMAGE",
	"AR_IMAGE_PROC_FIELD_IMAGE",
	"AR_DEFAULT_IMAGE_PROC_MODE",
	"AR_TEMPLATE_MATCHING_COLOR",
	"AR_TEMPLATE_MATCHING_MONO",
	"AR_MATRIX_CODE_DETECTION",
	"AR_TEMPLATE_MATCHING_COLOR_AND_MATRIX",
	"AR_TEMPLATE_MATCHING_MONO_AND_MATRIX",
	"AR_DEFAULT_PATTERN_DETECTION_MODE",
	"AR_USE_TRACKING_HISTORY",
	"AR_NOUSE_TRACKING_HISTORY",
	"AR_USE_TRACKING_HISTORY_V2",
	"AR_DEFAULT_MARKER_EXTRACTION_MODE",
	"AR_MAX_LOOP_COUNT",
	"AR_LOOP_BREAK_THRESH",
	"AR_MATRIX_CODE_3x3",
	"AR_MATRIX_CODE_3x3_HAMMING63",
	"AR_MATRIX_CODE_3x3_PARITY65",
	"AR_MATRIX_CODE_4x4",
	"AR_MATRIX_CODE_4x4_BCH_13_9_3",
	"AR_MATRIX_CODE_4x4_BCH_13_5_5",
	"AR_LABELING_THRESH_MODE_MANUAL",
	"AR_LABELING_THRESH_MODE_AUTO_MEDIAN",
	"AR_LABELING_THRESH_MODE_AUTO_OTSU",
	"AR_LABELING_THRESH_MODE_AUTO_ADAPTIVE",
	"AR_MARKER_INFO_CUTOFF_PHASE_NONE",
	"AR_MARKER_INFO_CUTOFF_PHASE_PATTERN_EXTRACTION",
	"AR_MARKER_INFO_CUTOFF_PHASE_MATCH_GENERIC",
	"AR_MARKER_INFO_CUTOFF_PHASE_MATCH_CONTRAST",
	"AR_MARKER_INFO_CUTOFF_PHASE_MATCH_BARCODE_NOT_FOUND",
	"AR_MARKER_INFO_CUTOFF_PHASE_MATCH_BARCODE_EDC_FAIL",
	"AR_MARKER_INFO_CUTOFF_PHASE_MATCH_CONFIDENCE",
	"AR_MARKER_INFO_CUTOFF_PHASE_POSE_ERROR",
	"AR_MARKER_INFO_CUTOFF_PHASE_POSE_ERROR_MULTI",
	"AR_MARKER_INFO_CUTOFF_PHASE_HEURISTIC_TROUBLESOME_MATRIX_CODES",
}

// versionEntryPoint optionally exposes the native build's version string.
// Older builds lack it; binding proceeds without the version gate then.
const versionEntryPoint = "getARToolKitVersion"

// DefaultVersionConstraint is the supported native ABI range.
const DefaultVersionConstraint = ">= 5.0.0, < 6.0.0"
