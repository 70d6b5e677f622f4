package sufat

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	core "github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

// LoadEntryPoint resolves the Vulkan loader through SDL and wraps it in
// the EntryPoint the negotiator consumes. SDL video must be initialized
// and a Vulkan-capable window created before calling this.
func LoadEntryPoint() (EntryPoint, error) {
	procAddr := sdl.VulkanGetVkGetInstanceProcAddr()
	if procAddr == nil {
		return nil, errors.Mark(errors.New("sdl could not resolve vkGetInstanceProcAddr"), ErrUnableToLoadLib)
	}

	driver, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "loading vulkan driver"), ErrUnableToLoadLib)
	}

	return &vulkanEntryPoint{driver: driver}, nil
}

type vulkanEntryPoint struct {
	driver core1_0.GlobalDriver
}

func (e *vulkanEntryPoint) Version() common.APIVersion {
	return e.driver.Version()
}

func (e *vulkanEntryPoint) AvailableExtensions() (map[string]*core1_0.ExtensionProperties, error) {
	extensions, _, err := e.driver.AvailableExtensions()
	return extensions, err
}

func (e *vulkanEntryPoint) AvailableLayers() (map[string]*core1_0.LayerProperties, error) {
	layers, _, err := e.driver.AvailableLayers()
	return layers, err
}

func (e *vulkanEntryPoint) CreateInstance(info core1_0.InstanceCreateInfo) (Instance, error) {
	instanceDriver, _, err := e.driver.CreateInstance(nil, info)
	if err != nil {
		return nil, err
	}

	return &vulkanInstance{driver: instanceDriver}, nil
}

type vulkanInstance struct {
	driver core1_0.CoreInstanceDriver
}

func (i *vulkanInstance) CreateDebugMessenger(info ext_debug_utils.DebugUtilsMessengerCreateInfo) (DebugMessenger, error) {
	ext := ext_debug_utils.CreateExtensionDriverFromCoreDriver(i.driver)

	messenger, _, err := ext.CreateDebugUtilsMessenger(nil, info)
	if err != nil {
		return nil, err
	}

	return &vulkanMessenger{ext: ext, messenger: messenger}, nil
}

func (i *vulkanInstance) CreateSurface(win Window) (Surface, error) {
	sdlWindow, ok := win.(*sdl.Window)
	if !ok {
		return nil, errors.Newf("window type %T cannot back an sdl vulkan surface", win)
	}

	ext := khr_surface.CreateExtensionDriverFromCoreDriver(i.driver)

	surface, err := vkng_sdl2.CreateSurface(i.driver.Instance(), ext, sdlWindow)
	if err != nil {
		return nil, err
	}

	return &vulkanSurface{ext: ext, surface: surface}, nil
}

func (i *vulkanInstance) Destroy() {
	i.driver.DestroyInstance(nil)
}

type vulkanMessenger struct {
	ext       ext_debug_utils.ExtensionDriver
	messenger ext_debug_utils.DebugUtilsMessenger
}

func (m *vulkanMessenger) Submit(severity ext_debug_utils.DebugUtilsMessageSeverityFlags, msgType ext_debug_utils.DebugUtilsMessageTypeFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) {
	m.ext.SubmitDebugUtilsMessage(severity, msgType, data)
}

func (m *vulkanMessenger) Destroy() {
	m.ext.DestroyDebugUtilsMessenger(m.messenger, nil)
}

type vulkanSurface struct {
	ext     khr_surface.ExtensionDriver
	surface khr_surface.Surface
}

func (s *vulkanSurface) Destroy() {
	s.ext.DestroySurface(s.surface, nil)
}
