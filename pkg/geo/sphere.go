package geo

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// WorldUp is the globe's polar axis. Positions follow the s2 frame: +Z is the north pole.
var WorldUp = r3.Vector{X: 0, Y: 0, Z: 1}

// WorldX is the fallback tangent when WorldUp is parallel to a surface normal.
var WorldX = r3.Vector{X: 1, Y: 0, Z: 0}

// degenerateCross is the minimum |up x n| accepted before falling back to WorldX.
const degenerateCross = 1e-6

// ToVector converts lat/lng (degrees) into a 3D position on a sphere of the given radius.
func ToVector(lat, lng, radius float64) r3.Vector {
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	return p.Vector.Mul(radius)
}

// ToUnitVector converts lat/lng (degrees) into a point on the unit sphere.
func ToUnitVector(lat, lng float64) r3.Vector {
	return ToVector(lat, lng, 1)
}

// AngularDistance returns the great-circle angle between two unit vectors.
// The dot product is clamped so rounding never produces NaN.
func AngularDistance(a, b r3.Vector) s1.Angle {
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return s1.Angle(math.Acos(d))
}

// KmToAngle converts a surface distance in kilometers into a central angle.
func KmToAngle(km, planetRadiusKm float64) s1.Angle {
	if planetRadiusKm <= 0 {
		planetRadiusKm = EarthRadiusKm
	}
	return s1.Angle(km / planetRadiusKm)
}

// TangentBasis builds an orthonormal frame in the plane tangent to the sphere at n.
// X points east (up x n); near the poles, where that cross product degenerates, WorldX is used.
func TangentBasis(n r3.Vector) (x, y r3.Vector) {
	n = n.Normalize()
	x = WorldUp.Cross(n)
	if x.Norm() < degenerateCross {
		// Project WorldX onto the tangent plane so the frame stays orthogonal to n.
		x = WorldX.Sub(n.Mul(WorldX.Dot(n)))
		if x.Norm() < degenerateCross {
			x = r3.Vector{X: 0, Y: 1, Z: 0}
		}
	}
	x = x.Normalize()
	y = n.Cross(x).Normalize()
	return x, y
}

// Renormalize scales v back onto a sphere of the given radius.
func Renormalize(v r3.Vector, radius float64) r3.Vector {
	if v.Norm() == 0 {
		return v
	}
	return v.Normalize().Mul(radius)
}
