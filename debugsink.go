package sufat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

// severityMask translates the process's minimum enabled log level into
// the messenger's capture mask. The mask is cumulative: lowering the
// threshold never drops a more severe level.
func severityMask(level slog.Level) ext_debug_utils.DebugUtilsMessageSeverityFlags {
	var mask ext_debug_utils.DebugUtilsMessageSeverityFlags

	if level <= slog.LevelError {
		mask |= ext_debug_utils.SeverityError
	}
	if level <= slog.LevelWarn {
		mask |= ext_debug_utils.SeverityWarning
	}
	if level <= slog.LevelInfo {
		mask |= ext_debug_utils.SeverityInfo
	}
	if level <= slog.LevelDebug {
		mask |= ext_debug_utils.SeverityVerbose
	}

	return mask
}

func debugMessengerCreateInfo(logger *slog.Logger, level slog.Level) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: severityMask(level),
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    routeDebugMessage(logger),
	}
}

// routeDebugMessage re-emits driver diagnostics through logger at the
// matching level. The extension defines exactly four severities; any
// other value means the binding and the driver disagree about the
// contract, and there is no safe level to file the message under.
func routeDebugMessage(logger *slog.Logger) func(ext_debug_utils.DebugUtilsMessageTypeFlags, ext_debug_utils.DebugUtilsMessageSeverityFlags, *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	return func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
		var level slog.Level
		switch severity {
		case ext_debug_utils.SeverityError:
			level = slog.LevelError
		case ext_debug_utils.SeverityWarning:
			level = slog.LevelWarn
		case ext_debug_utils.SeverityInfo:
			level = slog.LevelInfo
		case ext_debug_utils.SeverityVerbose:
			level = slog.LevelDebug
		default:
			panic(fmt.Sprintf("debug messenger delivered unknown severity %s", severity))
		}

		logger.Log(context.Background(), level, "vulkan debug utils",
			"type", msgType.String(),
			"id_name", data.MessageIDName,
			"id_num", data.MessageIDNumber,
			"message", data.Message,
		)

		return false
	}
}

// selfTestDebugSink pushes one synthetic message per capturable
// severity through the live messenger, so a broken diagnostics path
// shows up at startup instead of during the first real validation
// failure.
func selfTestDebugSink(m DebugMessenger) {
	data := &ext_debug_utils.DebugUtilsMessengerCallbackData{
		MessageIDName:   "testing",
		MessageIDNumber: 1,
		Message:         "test",
	}

	m.Submit(ext_debug_utils.SeverityError, ext_debug_utils.TypeGeneral, data)
	m.Submit(ext_debug_utils.SeverityWarning, ext_debug_utils.TypePerformance, data)
	m.Submit(ext_debug_utils.SeverityInfo, ext_debug_utils.TypeValidation, data)
	m.Submit(ext_debug_utils.SeverityVerbose, ext_debug_utils.TypeGeneral, data)
}
