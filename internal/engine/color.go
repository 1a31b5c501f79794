package engine

// RGBA is an 8-bit-per-channel color.
type RGBA struct {
	R, G, B, A uint8
}

// LinearFade interpolates each channel of c1 toward c2 by fraction,
// truncating to the channel's integer range. fraction is clamped to [0, 1].
func LinearFade(c1, c2 RGBA, fraction float64) RGBA {
	if fraction <= 0 {
		return c1
	}
	if fraction >= 1 {
		return c2
	}
	return RGBA{
		R: uint8(float64(c1.R) + (float64(c2.R)-float64(c1.R))*fraction),
		G: uint8(float64(c1.G) + (float64(c2.G)-float64(c1.G))*fraction),
		B: uint8(float64(c1.B) + (float64(c2.B)-float64(c1.B))*fraction),
		A: uint8(float64(c1.A) + (float64(c2.A)-float64(c1.A))*fraction),
	}
}
