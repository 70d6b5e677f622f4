package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/loov/hrtime"
	"github.com/rageware/sufat"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

type app struct {
	logger *slog.Logger
	level  slog.Level

	window  *sdl.Window
	context *sufat.RenderContext
}

func (a *app) run() error {
	err := a.initWindow()
	if err != nil {
		return err
	}

	err = a.initVulkan()
	if err != nil {
		return err
	}
	defer a.cleanup()

	a.window.Show()

	return a.mainLoop()
}

func (a *app) initWindow() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	// Stays hidden until the render context is ready.
	window, err := sdl.CreateWindow(sufat.AppName, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		windowWidth, windowHeight, sdl.WINDOW_HIDDEN|sdl.WINDOW_VULKAN)
	if err != nil {
		return err
	}
	a.window = window

	return nil
}

func (a *app) initVulkan() error {
	start := hrtime.Now()

	entry, err := sufat.LoadEntryPoint()
	if err != nil {
		return err
	}

	context, err := sufat.New(sufat.Config{
		Logger:   a.logger,
		LogLevel: a.level,
	}, entry, a.window)
	if err != nil {
		return err
	}
	a.context = context

	a.logger.Info("vulkan ready", "took", hrtime.Since(start))

	return nil
}

func (a *app) mainLoop() error {
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				a.logger.Debug("received shutdown request")
				a.window.Hide()
				return nil
			}
		}
	}
}

func (a *app) cleanup() {
	if a.context != nil {
		a.context.Destroy()
	}

	if a.window != nil {
		a.window.Destroy()
	}
	sdl.Quit()

	a.logger.Debug("loop exiting")
}

// logLevel reads the process log level from $SUFAT_LOG ("debug",
// "info", "warn", "error"), defaulting to info.
func logLevel() slog.Level {
	level := slog.LevelInfo
	if raw, ok := os.LookupEnv("SUFAT_LOG"); ok {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			level = slog.LevelInfo
		}
	}
	return level
}

func main() {
	runtime.LockOSThread()

	level := logLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})).With("run", uuid.NewString())

	a := &app{
		logger: logger,
		level:  level,
	}

	err := a.run()
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}
}
