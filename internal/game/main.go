package game

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func RunDesktop() {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}

	// Seed from environment or clock.
	seed := uint64(glfw.GetTimerValue())
	if s := os.Getenv("TCROSS_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(
		float32(Palette.Background.R)/255.0,
		float32(Palette.Background.G)/255.0,
		float32(Palette.Background.B)/255.0,
		1.0,
	)

	cfg := DefaultConfig()

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	rend.InitBackground(&cfg)
	rend.InitCarTextures()

	// Audio cues ride on the world's event stream.
	newWorld := func(s uint64) *TrafficWorld {
		w := NewTrafficWorld(cfg, s)
		w.Events.Subscribe(EventVehicleStopped, func(Event) { PlaySound(SoundBrake) })
		w.Events.Subscribe(EventVehicleBlocked, func(Event) { PlaySound(SoundHorn) })
		return w
	}
	world := newWorld(seed)

	input := NewInput()
	var cam Camera

	var glowBuf, tagBuf []float32
	paused := false
	step := 1.0 / cfg.TickRate
	acc := 0.0
	titleAt := 0.0

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeySpace) {
			paused = !paused
		}
		if input.JustPressed(window, glfw.KeyR) {
			seed = splitmix64(seed)
			world = newWorld(seed)
			acc = 0
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		cam.FitWorld(&cfg, fbW, fbH)

		// Fixed-timestep simulation; rendering interpolation is not needed
		// at this scale.
		if !paused {
			acc += dt
			for acc >= step {
				world.Step()
				acc -= step
			}
		}

		rend.BeginFrame(cam, fbW, fbH)
		rend.DrawBackground(&cfg, cam, fbW, fbH)
		rend.DrawVehicles(world, cam, fbW, fbH)
		tagBuf = DestinationTagSprites(world, tagBuf)
		rend.DrawSprites(tagBuf, cam, fbW, fbH)
		glowBuf = BrakeLightSprites(world, glowBuf)
		rend.DrawGlowSprites(glowBuf, cam, fbW, fbH)

		if now-titleAt > 0.25 {
			titleAt = now
			state := ""
			if paused {
				state = " [paused]"
			}
			window.SetTitle(fmt.Sprintf("T-Junction | cars %d | tick %d%s",
				world.LiveCount(), world.Tick, state))
		}

		window.SwapBuffers()
	}
}
