package game

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// makeCarTexture builds the 8x8 top-down car sprite for one body colour.
// Vertical bands front to rear: bumper, windshield, roof, trunk. Textures
// face up, so quads rotate by heading + π/2 at draw time.
func makeCarTexture(body RGB) uint32 {
	const s = 8
	pix := make([]uint8, s*s*4)

	window := Palette.Glass
	roof := body.Mul(180)

	set := func(x, y int, col RGB) {
		i := (y*s + x) * 4
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 255
	}

	for y := 0; y < s; y++ {
		var col RGB
		switch y / 2 {
		case 0:
			col = body
		case 1:
			col = window
		case 2:
			col = roof
		default:
			col = body
		}
		for x := 0; x < s; x++ {
			set(x, y, col)
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, s, s, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return tex
}

// InitCarTextures creates one texture per body colour in CarColors.
func (r *Renderer) InitCarTextures() {
	r.carTexs = make([]uint32, len(CarColors))
	for i, col := range CarColors {
		r.carTexs[i] = makeCarTexture(col)
	}
}

// carTexFor picks the texture matching a vehicle's body colour.
func (r *Renderer) carTexFor(col RGB) uint32 {
	for i, c := range CarColors {
		if c == col && i < len(r.carTexs) {
			return r.carTexs[i]
		}
	}
	if len(r.carTexs) > 0 {
		return r.carTexs[0]
	}
	return 0
}

// DrawVehicles renders cars as rotated textured quads.
func (rend *Renderer) DrawVehicles(w *TrafficWorld, cam Camera, fbW, fbH int) {
	if len(w.Vehicles) == 0 {
		return
	}
	cfg := &w.Cfg

	gl.UseProgram(rend.quadProg)
	gl.BindVertexArray(rend.quadVAO)
	gl.Uniform2f(rend.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(rend.uZoom, float32(cam.Zoom))
	gl.Uniform2f(rend.uResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	for i := range w.Vehicles {
		v := &w.Vehicles[i]
		if !v.Alive {
			continue
		}
		// The texture is drawn facing up: width across, length down.
		gl.Uniform2f(rend.uQuadSize, float32(cfg.CarHeight), float32(cfg.CarWidth))
		gl.Uniform2f(rend.uQuadOrigin, float32(v.X-cfg.CarHeight*0.5), float32(v.Y-cfg.CarWidth*0.5))
		gl.Uniform1f(rend.uRotation, float32(v.Angle+math.Pi*0.5))

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, rend.carTexFor(v.Color))
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.Disable(gl.BLEND)
	gl.Uniform1f(rend.uRotation, 0)
}

// BrakeLightSprites returns additive glow sprites at the rear of every
// stopped car. Pass a reusable buf (reset to [:0] internally).
func BrakeLightSprites(w *TrafficWorld, buf []float32) []float32 {
	buf = buf[:0]
	cfg := &w.Cfg
	for i := range w.Vehicles {
		v := &w.Vehicles[i]
		if !v.Alive || v.State != StateStopped {
			continue
		}
		offset := cfg.CarWidth * 0.5
		rearX := v.X - v.DX*offset
		rearY := v.Y - v.DY*offset
		perpX := -v.DY * cfg.CarHeight * 0.3
		perpY := v.DX * cfg.CarHeight * 0.3
		const sz = 7.0
		buf = append(buf,
			float32(rearX+perpX), float32(rearY+perpY), sz, 0.9, 0.05, 0.05, 1, 0,
			float32(rearX-perpX), float32(rearY-perpY), sz, 0.9, 0.05, 0.05, 1, 0)
	}
	return buf
}

// DestinationTagSprites returns one small coloured dot above each car,
// keyed to its exit branch. Pass a reusable buf (reset to [:0] internally).
func DestinationTagSprites(w *TrafficWorld, buf []float32) []float32 {
	buf = buf[:0]
	cfg := &w.Cfg
	for i := range w.Vehicles {
		v := &w.Vehicles[i]
		if !v.Alive {
			continue
		}
		var col RGB
		switch v.Destination {
		case DestLeft:
			col = Palette.TagLeft
		case DestRight:
			col = Palette.TagRight
		case DestBottom:
			col = Palette.TagBottom
		}
		buf = append(buf,
			float32(v.X), float32(v.Y-cfg.CarWidth*0.8), 5,
			float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, 1, 0)
	}
	return buf
}
