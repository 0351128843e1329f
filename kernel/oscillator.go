package kernel

import "math"

// Step advances o by dt seconds. At most one step fires per call: when the
// accumulated time reaches interval, the remainder modulo interval is kept,
// the angle advances by StepAngle and the counter increments. After frames
// steps in one direction StepAngle is negated and the counter resets, so
// CurrentAngle traces a triangle wave. Step reports whether a step fired.
func (o *Oscillator) Step(dt, interval float32, frames int32) bool {
	o.DeltaAccum += dt
	if o.DeltaAccum < interval {
		return false
	}
	o.DeltaAccum = float32(math.Mod(float64(o.DeltaAccum), float64(interval)))
	o.CurrentAngle += o.StepAngle
	o.FrameCounter++
	if o.FrameCounter >= frames {
		o.StepAngle = -o.StepAngle
		o.FrameCounter = 0
	}
	return true
}
