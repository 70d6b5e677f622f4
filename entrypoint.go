package sufat

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

// Window is the slice of the windowing shell the negotiator consumes:
// the instance extensions the window's display demands for surface
// creation. *sdl.Window satisfies it directly.
type Window interface {
	VulkanGetInstanceExtensions() []string
}

// EntryPoint is a loaded Vulkan entry point. The negotiator only ever
// needs the pre-instance surface of the API, so that is all it sees;
// the production implementation lives in vulkan.go and tests substitute
// an in-memory fake.
type EntryPoint interface {
	// Version reports the highest instance-level API version the loader
	// supports, or zero when the loader cannot say.
	Version() common.APIVersion

	AvailableExtensions() (map[string]*core1_0.ExtensionProperties, error)
	AvailableLayers() (map[string]*core1_0.LayerProperties, error)

	CreateInstance(info core1_0.InstanceCreateInfo) (Instance, error)
}

// Instance is a created Vulkan instance together with the
// instance-level extensions the render context drives.
type Instance interface {
	CreateDebugMessenger(info ext_debug_utils.DebugUtilsMessengerCreateInfo) (DebugMessenger, error)
	CreateSurface(win Window) (Surface, error)
	Destroy()
}

// DebugMessenger is an attached debug-utils messenger.
type DebugMessenger interface {
	// Submit injects a synthetic message through the messenger as if
	// the driver had reported it.
	Submit(severity ext_debug_utils.DebugUtilsMessageSeverityFlags, msgType ext_debug_utils.DebugUtilsMessageTypeFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData)
	Destroy()
}

// Surface is a created window surface.
type Surface interface {
	Destroy()
}
