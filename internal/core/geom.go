// Package core provides fundamental types and utilities shared by the engine
// and the platform layer. It has no external dependencies (especially no
// Bubble Tea) to keep simulation code pure and testable.
package core

import "math"

// Vec is a point or displacement in field units.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Circle is a collision shape centered on a point.
type Circle struct {
	Center Vec
	Radius float64
}

// Overlaps reports whether two circles overlap. Touching circles
// (distance exactly equal to the sum of radii) do not overlap.
func (c Circle) Overlaps(o Circle) bool {
	return CirclesOverlap(c.Center, c.Radius, o.Center, o.Radius)
}

// DistanceSquared returns the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether the distance between the centers is strictly
// less than the sum of the radii.
func CirclesOverlap(a Vec, ra float64, b Vec, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}

// Bounds is an axis-aligned rectangle in field units, used for clamping.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Clamp restricts p to lie inside the bounds.
func (b Bounds) Clamp(p Vec) Vec {
	return Vec{
		X: ClampF(p.X, b.MinX, b.MaxX),
		Y: ClampF(p.Y, b.MinY, b.MaxY),
	}
}

// Contains returns true if p lies inside the bounds (edges inclusive).
func (b Bounds) Contains(p Vec) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
