package trig

import "math"

const radPerDeg = math.Pi / 180

// Polynomial evaluates the degree-8 Taylor expansion of cosine around zero.
// Arguments are folded into [-90, 0] degrees before evaluation, where the
// truncation error stays below 3e-5.
type Polynomial struct{}

// taylorCos approximates cos for deg in [-90, 90]. Powers are built by
// repeated multiplication.
func taylorCos(deg int) float32 {
	rad := float32(deg) * radPerDeg
	pow2 := rad * rad
	pow4 := pow2 * pow2
	pow6 := pow4 * pow2
	pow8 := pow4 * pow4
	return 1 - pow2/2 +
		pow4/24 - // 4!
		pow6/720 + // 6!
		pow8/40320 // 8!
}

func (Polynomial) Sin(deg int) float32 {
	d := Normalize(deg)
	switch {
	case d <= 90:
		return taylorCos(d - 90)
	case d <= 180:
		return taylorCos((180 - d) - 90)
	case d <= 270:
		return -taylorCos((d - 180) - 90)
	default:
		return -taylorCos((360 - d) - 90)
	}
}

func (p Polynomial) Cos(deg int) float32 {
	return p.Sin(deg + 90)
}
