package engine

import "math"

// Vec3 is a world-space vector or point.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector, or the zero vector unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// rotate applies a yaw about the up axis, then a pitch about the resulting
// local axis. Angles are in degrees.
func rotate(v Vec3, pitchDeg, yawDeg float64) Vec3 {
	yaw := yawDeg * math.Pi / 180
	cy, sy := math.Cos(yaw), math.Sin(yaw)
	r := Vec3{
		X: cy*v.X + sy*v.Z,
		Y: v.Y,
		Z: -sy*v.X + cy*v.Z,
	}

	pitch := pitchDeg * math.Pi / 180
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	return Vec3{
		X: r.X,
		Y: cp*r.Y - sp*r.Z,
		Z: sp*r.Y + cp*r.Z,
	}
}
