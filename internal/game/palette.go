package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

var Palette = struct {
	Background RGB
	Road       RGB
	LaneMark   RGB
	Glass      RGB
	TagLeft    RGB
	TagRight   RGB
	TagBottom  RGB
}{
	Background: RGB{R: 255, G: 255, B: 255},
	Road:       RGB{R: 120, G: 120, B: 120},
	LaneMark:   RGB{R: 255, G: 255, B: 255},
	Glass:      RGB{R: 140, G: 140, B: 140},
	TagLeft:    RGB{R: 235, G: 200, B: 40},
	TagRight:   RGB{R: 60, G: 190, B: 220},
	TagBottom:  RGB{R: 200, G: 80, B: 200},
}

// CarColors is the cosmetic body colour candidate set sampled at spawn.
var CarColors = []RGB{
	{R: 200, G: 50, B: 50},
	{R: 50, G: 50, B: 200},
	{R: 50, G: 200, B: 50},
}
