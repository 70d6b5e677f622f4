package sufat

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

// Static application identity reported to the driver.
const (
	AppName    = "sufat"
	EngineName = "Rageware"
)

const validationLayerName = "VK_LAYER_KHRONOS_validation"

// Config carries the negotiator inputs that would otherwise come from
// ambient process state.
type Config struct {
	// Logger receives negotiation diagnostics and, once the context is
	// live, every message the driver reports through the debug sink.
	// Defaults to slog.Default.
	Logger *slog.Logger

	// LogLevel is the process's minimum enabled log level. It decides
	// which severities the debug messenger captures.
	LogLevel slog.Level
}

// RenderContext owns the Vulkan instance, the window-bound presentation
// surface, and the debug messenger when one could be attached, for the
// lifetime of the process. The window itself belongs to the shell and
// must outlive the context.
type RenderContext struct {
	logger *slog.Logger

	instance  Instance
	messenger DebugMessenger
	surface   Surface

	// non-owning; the shell destroys the window after the context
	window Window
}

// New runs the one-shot startup negotiation: it diffs the window's
// required instance extensions plus the debug-utils extension against
// what the platform reports, requires the Khronos validation layer,
// creates the instance, attaches the debug sink (best effort), and
// binds a surface to the window. On any failure nothing is leaked and
// no context is returned.
func New(cfg Config, entry EntryPoint, win Window) (*RenderContext, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	version := entry.Version()
	if version == 0 {
		version = common.Vulkan1_0
	}

	required := append([]string{}, win.VulkanGetInstanceExtensions()...)
	required = append(required, ext_debug_utils.ExtensionName)

	availableExts, err := entry.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating instance extensions")
	}
	missingExts := missingNames(required, availableExts)

	requiredLayers := []string{validationLayerName}

	availableLayers, err := entry.AvailableLayers()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating layers")
	}
	missingLayers := missingNames(requiredLayers, availableLayers)

	for _, name := range missingExts {
		logger.Error("missing instance extension", "name", name)
	}
	for _, name := range missingLayers {
		logger.Error("missing layer", "name", name)
	}

	switch {
	case len(missingExts) > 0 && len(missingLayers) > 0:
		return nil, errors.Mark(
			errors.Newf("%d instance extension(s) and %d layer(s) unavailable", len(missingExts), len(missingLayers)),
			ErrMissingExtensionAndLayer)
	case len(missingLayers) > 0:
		return nil, errors.Mark(
			errors.Newf("%d layer(s) unavailable", len(missingLayers)),
			ErrMissingLayer)
	case len(missingExts) > 0:
		return nil, errors.Mark(
			errors.Newf("%d instance extension(s) unavailable", len(missingExts)),
			ErrMissingExtension)
	}

	logger.Debug("all required instance extensions and layers present")

	createInfo := core1_0.InstanceCreateInfo{
		ApplicationName:    AppName,
		ApplicationVersion: common.CreateVersion(0, 0, 0),
		EngineName:         EngineName,
		EngineVersion:      common.CreateVersion(0, 0, 0),
		APIVersion:         version,

		EnabledExtensionNames: required,
		EnabledLayerNames:     requiredLayers,
	}

	// Portability drivers (MoltenVK and friends) only enumerate when
	// asked. The extension is opportunistic, so it never joins the
	// required set and never shows up in a missing list.
	if _, ok := availableExts[khr_portability_enumeration.ExtensionName]; ok {
		createInfo.EnabledExtensionNames = append(createInfo.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		createInfo.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	instance, err := entry.CreateInstance(createInfo)
	if err != nil {
		logger.Error("instance creation failed", "err", err)
		return nil, errors.Mark(errors.Wrap(err, "creating instance"), ErrInstanceCreationFailed)
	}
	logger.Info("created instance", "apiVersion", version)

	ctx := &RenderContext{
		logger:   logger,
		instance: instance,
		window:   win,
	}

	messenger, err := instance.CreateDebugMessenger(debugMessengerCreateInfo(logger, cfg.LogLevel))
	if err != nil {
		// Diagnostics are best effort; a context without a sink is
		// still a working context.
		logger.Warn("debug messenger unavailable", "err", err)
	} else {
		ctx.messenger = messenger
		selfTestDebugSink(messenger)
	}

	surface, err := instance.CreateSurface(win)
	if err != nil {
		ctx.Destroy()
		return nil, errors.Mark(errors.Wrap(err, "creating window surface"), ErrSurfaceCreationFailed)
	}
	ctx.surface = surface

	return ctx, nil
}

// missingNames reports the required names absent from available,
// preserving required's order. Matching is exact and case sensitive.
func missingNames[T any](required []string, available map[string]T) []string {
	var missing []string
	for _, name := range required {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Destroy releases everything the context acquired, in reverse
// acquisition order: messenger, then surface, then instance. Handles
// are cleared as they are released, so a resource is never destroyed
// twice and a handle that was never acquired is never touched.
func (c *RenderContext) Destroy() {
	c.logger.Info("destroying render context")

	if c.messenger != nil {
		c.messenger.Destroy()
		c.messenger = nil
	}

	if c.surface != nil {
		c.surface.Destroy()
		c.surface = nil
	}

	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
}
