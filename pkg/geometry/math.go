package geometry

import (
	"math"

	"github.com/StutiRuparel/FocusMind/pkg/landmark"
)

// clamp restricts a value to a range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// dist returns the Euclidean distance between two landmarks.
func dist(a, b landmark.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// MatrixToEuler extracts X-Y-Z Euler angles in degrees from a
// rotation matrix under the camera convention (+X right, +Y down,
// +Z into the scene). Near the gimbal singularity the roll axis is
// unrecoverable and is reported as 0.
func MatrixToEuler(r [3][3]float64) (pitch, yaw, roll float64) {
	sy := math.Sqrt(r[0][0]*r[0][0] + r[1][0]*r[1][0])

	if sy < 1e-6 {
		// Gimbal lock case
		pitch = math.Atan2(-r[1][2], r[1][1])
		yaw = math.Atan2(-r[2][0], sy)
		roll = 0
	} else {
		pitch = math.Atan2(r[2][1], r[2][2])
		yaw = math.Atan2(-r[2][0], sy)
		roll = math.Atan2(r[1][0], r[0][0])
	}

	const toDeg = 180 / math.Pi
	return pitch * toDeg, yaw * toDeg, roll * toDeg
}

// rodrigues converts an axis-angle rotation vector into a rotation
// matrix. A near-zero vector yields the identity.
func rodrigues(r [3]float64) [3][3]float64 {
	theta := math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
	if theta < 1e-12 {
		return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}

	kx, ky, kz := r[0]/theta, r[1]/theta, r[2]/theta
	c := math.Cos(theta)
	s := math.Sin(theta)
	v := 1 - c

	return [3][3]float64{
		{c + kx*kx*v, kx*ky*v - kz*s, kx*kz*v + ky*s},
		{ky*kx*v + kz*s, c + ky*ky*v, ky*kz*v - kx*s},
		{kz*kx*v - ky*s, kz*ky*v + kx*s, c + kz*kz*v},
	}
}
