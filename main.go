package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/pflag"

	"github.com/adinfit/sierpinski/config"
	"github.com/adinfit/sierpinski/geom"
	"github.com/adinfit/sierpinski/gpu"
	"github.com/adinfit/sierpinski/gpu/glgpu"
	"github.com/adinfit/sierpinski/scene"
	"github.com/adinfit/sierpinski/texture"
)

func init() {
	// glfw event handling must run on the main OS thread
	runtime.LockOSThread()
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	scene.SetLogger(logger)

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			fatal("unable to create cpu-profile", "path", cfg.CPUProfile, "err", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fatal("unable to start cpu-profile", "err", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := glfw.Init(); err != nil {
		fatal("failed to initialize glfw", "err", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 2)

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		fatal("failed to create window", "err", err)
	}
	window.MakeContextCurrent()

	device, err := glgpu.New()
	if err != nil {
		fatal("failed to initialize glow", "err", err)
	}
	slog.Info("OpenGL", "version", device.Version())

	program, err := gpu.LoadProgram(device, "scene", cfg.VertexShader, cfg.FragmentShader)
	if err != nil {
		slog.Error("scene program unusable, nothing will be drawn", "err", err)
	} else {
		slog.Debug("scene program", "attributes", program.Attributes(), "uniforms", program.Uniforms())
	}

	textures := texture.NewLibrary(device, cfg.TextureSize)
	crate, err := textures.Load(cfg.Texture)
	if err != nil {
		slog.Warn("textured cubes will render untextured", "err", err)
	}

	world := scene.New(device, program, options(cfg, crate))
	centerpiece := geom.NewUnitSierpinski(cfg.Depth)
	centerpiece.Scale = mgl32.Vec3{8, 8, 8}
	if err := world.AddVolume(centerpiece); err != nil {
		slog.Warn("unable to add centerpiece", "err", err)
	}

	host := &Host{Scene: world}
	host.Attach(window)

	clock := scene.NewClock(cfg.TickRate)
	for !window.ShouldClose() && !world.ExitRequested() {
		host.NextFrameGLFW(window)

		for ticks := clock.Advance(glfw.GetTime()); ticks > 0; ticks-- {
			world.Update(host.Input(window))
		}
		world.Render()

		window.SetTitle(cfg.Title + "\t" + world.Stats().String())

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func options(cfg *config.Config, crate gpu.TextureID) scene.Options {
	opts := scene.DefaultOptions()
	opts.Capacity = cfg.Capacity
	opts.Depth = cfg.Depth
	opts.SpawnIncrement = cfg.SpawnIncrement
	opts.BurstPairs = cfg.BurstPairs
	opts.FOV = cfg.FOV
	opts.Near, opts.Far = cfg.Near, cfg.Far
	opts.Sensitivity = cfg.Sensitivity
	opts.MoveSpeed = cfg.MoveSpeed
	opts.ZoomSteps = cfg.ZoomSteps
	opts.ZoomStep = cfg.ZoomStep
	opts.ZoomStepsPerTick = cfg.ZoomStepsPerTick
	opts.TickRate = cfg.TickRate
	opts.Seed = cfg.Seed
	opts.Texture = crate
	return opts
}
