package sufat

import "github.com/cockroachdb/errors"

// Startup failure taxonomy. Every error returned by LoadEntryPoint and
// New wraps exactly one of these sentinels; callers classify with
// errors.Is and treat all of them as fatal to startup.
var (
	ErrUnableToLoadLib          = errors.New("unable to load the vulkan library")
	ErrMissingExtension         = errors.New("missing required instance extension")
	ErrMissingLayer             = errors.New("missing required layer")
	ErrMissingExtensionAndLayer = errors.New("missing required instance extension and layer")
	ErrInstanceCreationFailed   = errors.New("instance creation failed")
	ErrSurfaceCreationFailed    = errors.New("surface creation failed")
)
