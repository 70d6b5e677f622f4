package sufat

import (
	"context"
	"log/slog"

	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

// recorder collects native destroy calls so tests can assert ordering.
type recorder struct {
	events []string
}

func (r *recorder) record(event string) {
	r.events = append(r.events, event)
}

type fakeWindow struct {
	extensions []string
}

func (w *fakeWindow) VulkanGetInstanceExtensions() []string {
	return w.extensions
}

func extensionSet(names ...string) map[string]*core1_0.ExtensionProperties {
	set := make(map[string]*core1_0.ExtensionProperties, len(names))
	for _, name := range names {
		set[name] = &core1_0.ExtensionProperties{}
	}
	return set
}

func layerSet(names ...string) map[string]*core1_0.LayerProperties {
	set := make(map[string]*core1_0.LayerProperties, len(names))
	for _, name := range names {
		set[name] = &core1_0.LayerProperties{}
	}
	return set
}

type fakeEntryPoint struct {
	rec *recorder

	version    common.APIVersion
	extensions map[string]*core1_0.ExtensionProperties
	layers     map[string]*core1_0.LayerProperties

	createErr error
	instance  *fakeInstance

	createCalls    int
	lastCreateInfo core1_0.InstanceCreateInfo
}

// workingEntryPoint reports everything the default fake window needs,
// so negotiation succeeds unless a test breaks something on purpose.
func workingEntryPoint(rec *recorder) (*fakeEntryPoint, *fakeWindow) {
	win := &fakeWindow{extensions: []string{"VK_KHR_surface", "VK_KHR_xcb_surface"}}
	entry := &fakeEntryPoint{
		rec:        rec,
		version:    common.Vulkan1_2,
		extensions: extensionSet("VK_KHR_surface", "VK_KHR_xcb_surface", ext_debug_utils.ExtensionName),
		layers:     layerSet(validationLayerName),
		instance:   &fakeInstance{rec: rec},
	}
	return entry, win
}

func (f *fakeEntryPoint) Version() common.APIVersion {
	return f.version
}

func (f *fakeEntryPoint) AvailableExtensions() (map[string]*core1_0.ExtensionProperties, error) {
	return f.extensions, nil
}

func (f *fakeEntryPoint) AvailableLayers() (map[string]*core1_0.LayerProperties, error) {
	return f.layers, nil
}

func (f *fakeEntryPoint) CreateInstance(info core1_0.InstanceCreateInfo) (Instance, error) {
	f.createCalls++
	f.lastCreateInfo = info

	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.instance == nil {
		f.instance = &fakeInstance{rec: f.rec}
	}
	return f.instance, nil
}

type fakeInstance struct {
	rec *recorder

	messengerErr error
	surfaceErr   error
}

func (i *fakeInstance) CreateDebugMessenger(info ext_debug_utils.DebugUtilsMessengerCreateInfo) (DebugMessenger, error) {
	if i.messengerErr != nil {
		return nil, i.messengerErr
	}
	return &fakeMessenger{
		rec:      i.rec,
		mask:     info.MessageSeverity,
		callback: info.UserCallback,
	}, nil
}

func (i *fakeInstance) CreateSurface(win Window) (Surface, error) {
	if i.surfaceErr != nil {
		return nil, i.surfaceErr
	}
	return &fakeSurface{rec: i.rec}, nil
}

func (i *fakeInstance) Destroy() {
	i.rec.record("destroy instance")
}

type fakeMessenger struct {
	rec      *recorder
	mask     ext_debug_utils.DebugUtilsMessageSeverityFlags
	callback func(ext_debug_utils.DebugUtilsMessageTypeFlags, ext_debug_utils.DebugUtilsMessageSeverityFlags, *ext_debug_utils.DebugUtilsMessengerCallbackData) bool
}

// Submit delivers the message the way the driver would: filtered by the
// capture mask, straight into the registered callback.
func (m *fakeMessenger) Submit(severity ext_debug_utils.DebugUtilsMessageSeverityFlags, msgType ext_debug_utils.DebugUtilsMessageTypeFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) {
	if severity&m.mask == 0 {
		return
	}
	m.callback(msgType, severity, data)
}

func (m *fakeMessenger) Destroy() {
	m.rec.record("destroy messenger")
}

type fakeSurface struct {
	rec *recorder
}

func (s *fakeSurface) Destroy() {
	s.rec.record("destroy surface")
}

type logEntry struct {
	level   slog.Level
	message string
	attrs   map[string]any
}

// captureHandler is a slog.Handler that keeps every record in memory.
type captureHandler struct {
	entries []logEntry
}

func newCaptureLogger() (*slog.Logger, *captureHandler) {
	h := &captureHandler{}
	return slog.New(h), h
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	entry := logEntry{
		level:   r.Level,
		message: r.Message,
		attrs:   map[string]any{},
	}
	r.Attrs(func(a slog.Attr) bool {
		entry.attrs[a.Key] = a.Value.Any()
		return true
	})
	h.entries = append(h.entries, entry)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

// withMessage returns the captured entries carrying message, in the
// order they were logged.
func (h *captureHandler) withMessage(message string) []logEntry {
	var out []logEntry
	for _, e := range h.entries {
		if e.message == message {
			out = append(out, e)
		}
	}
	return out
}
