package game

type Camera struct {
	X, Y float64 // world-pixel space, camera centre
	Zoom float64 // screen pixels per world pixel
}

// FitWorld centres the camera and picks the zoom that shows the whole
// world inside the framebuffer.
func (c *Camera) FitWorld(cfg *Config, fbW, fbH int) {
	c.X = cfg.WorldWidth / 2
	c.Y = cfg.WorldHeight / 2
	zx := float64(fbW) / cfg.WorldWidth
	zy := float64(fbH) / cfg.WorldHeight
	if zx < zy {
		c.Zoom = zx
	} else {
		c.Zoom = zy
	}
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
}
