// Package billboard solves the camera-facing rotation of flat sprites.
//
// Rotations use a Y-up convention: local +Z is the sprite's forward axis and
// +Y is up.
package billboard

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// epsilon below which a direction is treated as zero-length.
const epsilon = 1e-6

var (
	// WorldUp is the reference up vector of every look rotation.
	WorldUp = mgl32.Vec3{0, 1, 0}
	forward = mgl32.Vec3{0, 0, 1}
)

// Orient returns the rotation that turns local +Z from entityPos toward
// cameraPos, keeping world up as the reference. Coincident positions have no
// defined direction and yield the identity rotation.
func Orient(entityPos, cameraPos mgl32.Vec3) mgl32.Quat {
	return LookRotation(cameraPos.Sub(entityPos), WorldUp)
}

// LookRotation builds the rotation whose +Z axis is forward and whose +Y axis
// is as close to up as possible. A zero forward yields identity; when forward
// is parallel to up, +Z is used as the reference up instead.
func LookRotation(fwd, up mgl32.Vec3) mgl32.Quat {
	if fwd.Len() < epsilon {
		return mgl32.QuatIdent()
	}
	f := fwd.Normalize()
	right := up.Cross(f)
	if right.Len() < epsilon {
		right = forward.Cross(f)
	}
	right = right.Normalize()
	u := f.Cross(right)
	basis := mgl32.Mat4FromCols(
		right.Vec4(0),
		u.Vec4(0),
		f.Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
	return mgl32.Mat4ToQuat(basis).Normalize()
}

// halfTurn turns +Z around to -Z about the up axis.
var halfTurn = mgl32.QuatRotate(math.Pi, WorldUp)

// FromCameraRotation drops the roll of a camera rotation and turns the result
// half way around, so local +Z points back against the camera's view direction
// as it does for Orient. Applied to every sprite it makes them face the camera
// plane without a per-sprite look-at solve.
func FromCameraRotation(q mgl32.Quat) mgl32.Quat {
	yaw, pitch := YawPitch(q)
	return mgl32.QuatRotate(yaw, WorldUp).
		Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})).
		Mul(halfTurn)
}

// YawPitch extracts yaw (about +Y) and pitch (about +X) in radians from the
// forward axis of q.
func YawPitch(q mgl32.Quat) (yaw, pitch float32) {
	f := q.Rotate(forward)
	yaw = float32(math.Atan2(float64(f.X()), float64(f.Z())))
	y := min(max(float64(f.Y()), -1), 1)
	pitch = float32(-math.Asin(y))
	return yaw, pitch
}

// Forward returns the +Z axis of q.
func Forward(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(forward)
}
