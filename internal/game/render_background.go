package game

import "github.com/go-gl/gl/v4.1-core/gl"

// InitBackground builds the static road texture once: the horizontal main
// road spanning the full width and the vertical branch running from the
// junction down to the bottom edge, with dashed centerlines.
func (r *Renderer) InitBackground(cfg *Config) {
	w := int(cfg.WorldWidth)
	h := int(cfg.WorldHeight)
	pix := make([]uint8, w*h*4)

	set := func(x, y int, col RGB) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		i := (y*w + x) * 4
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 255
	}
	fillRect := func(x0, y0, x1, y1 int, col RGB) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				set(x, y, col)
			}
		}
	}

	fillRect(0, 0, w, h, Palette.Background)

	cx := int(cfg.CenterX)
	cy := int(cfg.CenterY)
	half := int(cfg.RoadWidth / 2)

	// Main road, full width.
	fillRect(0, cy-half, w, cy+half, Palette.Road)
	// Branch road, junction to bottom edge.
	fillRect(cx-half, cy, cx+half, h, Palette.Road)

	// Dashed centerlines: 20 px dash every 40 px, 2 px wide.
	const dashLen, dashStep, dashW = 20, 40, 2
	for x := 0; x < w; x += dashStep {
		fillRect(x, cy-dashW/2, x+dashLen, cy+dashW/2, Palette.LaneMark)
	}
	for y := cy + half; y < h; y += dashStep {
		fillRect(cx-dashW/2, y, cx+dashW/2, y+dashLen, Palette.LaneMark)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	r.bgTex = tex
}

// DrawBackground renders the road texture as one world-sized quad.
func (r *Renderer) DrawBackground(cfg *Config, cam Camera, fbW, fbH int) {
	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)
	gl.Uniform2f(r.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.uZoom, float32(cam.Zoom))
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))

	gl.Uniform2f(r.uQuadOrigin, 0, 0)
	gl.Uniform2f(r.uQuadSize, float32(cfg.WorldWidth), float32(cfg.WorldHeight))
	gl.Uniform1f(r.uRotation, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.bgTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}
