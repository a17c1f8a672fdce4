// Package stock reads raw stock meshes and writes the volume a job removes,
// both as STL solids with the spindle along the Z axis.
package stock

import (
	"errors"
	"fmt"
	"math"

	"github.com/hschendel/stl"

	"lathecam/internal/lathe"
)

const (
	X = 0
	Y = 1
	Z = 2
)

// Facets is the number of flat sides used to approximate a full revolution.
const Facets = 64

var ErrEmptyMesh = errors.New("stl mesh has no triangles")

// StartDepth measures the stock mesh at path in the axis op steps along: the
// largest radius about Z for turning (a diameter unless radiusMode), the top
// of the part in Z for facing.
func StartDepth(path string, op lathe.Operation, radiusMode bool) (float64, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read stock %s: %w", path, err)
	}
	return measure(solid, op, radiusMode)
}

func measure(solid *stl.Solid, op lathe.Operation, radiusMode bool) (float64, error) {
	if len(solid.Triangles) == 0 {
		return 0, ErrEmptyMesh
	}

	maxR := math.Inf(-1)
	maxZ := math.Inf(-1)
	for i := range solid.Triangles {
		for _, v := range solid.Triangles[i].Vertices {
			r := math.Hypot(float64(v[X]), float64(v[Y]))
			maxR = math.Max(maxR, r)
			maxZ = math.Max(maxZ, float64(v[Z]))
		}
	}

	switch op {
	case lathe.Facing, lathe.FaceBoring:
		return maxZ, nil
	}
	if radiusMode {
		return maxR, nil
	}
	return 2 * maxR, nil
}

// Ring is the cross-section of a solid of revolution about Z: everything
// between radii R0 and R1 from Z0 to Z1.
type Ring struct {
	Z0, Z1 float64
	R0, R1 float64
}

// Removed returns the cross-section of the material a program cuts away.
// ok is false for programs with no toolpath.
func Removed(p *lathe.Program, job lathe.Job, radiusMode bool) (ring Ring, ok bool) {
	if p.Unsupported() || len(p.Passes) == 0 {
		return Ring{}, false
	}

	scale := 1.0
	if !radiusMode {
		scale = 0.5
	}

	switch job.Operation {
	case lathe.Turning:
		ring = Ring{
			Z0: job.End(), Z1: job.StartCut,
			R0: job.FinishDepth * scale, R1: p.Passes.Largest() * scale,
		}
	default:
		ring = Ring{
			Z0: job.FinishDepth, Z1: p.Passes.Largest(),
			R0: math.Abs(job.StartCut) * scale, R1: math.Abs(job.End()) * scale,
		}
		if job.StartCut*job.End() < 0 {
			// the cut crosses the axis, so the whole face is cleared
			ring.R0 = 0
			ring.R1 = math.Max(math.Abs(job.StartCut), math.Abs(job.End())) * scale
		}
	}

	return ring.normalized(), true
}

func (r Ring) normalized() Ring {
	if r.Z0 > r.Z1 {
		r.Z0, r.Z1 = r.Z1, r.Z0
	}
	if r.R0 > r.R1 {
		r.R0, r.R1 = r.R1, r.R0
	}
	if r.R0 < 0 {
		r.R0 = 0
	}
	return r
}

// Solid sweeps the ring through a full turn in the given number of facets.
func (r Ring) Solid(name string, facets int) *stl.Solid {
	solid := &stl.Solid{Name: name}

	vertex := func(radius, z float64, k int) stl.Vec3 {
		a := 2 * math.Pi * float64(k%facets) / float64(facets)
		return stl.Vec3{float32(radius * math.Cos(a)), float32(radius * math.Sin(a)), float32(z)}
	}

	quad := func(a, b, c, d stl.Vec3) {
		solid.Triangles = append(solid.Triangles, triangle(a, b, c), triangle(a, c, d))
	}

	for k := 0; k < facets; k++ {
		outerLo, outerLo2 := vertex(r.R1, r.Z0, k), vertex(r.R1, r.Z0, k+1)
		outerHi, outerHi2 := vertex(r.R1, r.Z1, k), vertex(r.R1, r.Z1, k+1)

		// outer wall
		quad(outerLo, outerLo2, outerHi2, outerHi)

		if r.R0 == 0 {
			// solid cylinder: end caps are fans around the axis
			bottom := stl.Vec3{0, 0, float32(r.Z0)}
			top := stl.Vec3{0, 0, float32(r.Z1)}
			solid.Triangles = append(solid.Triangles,
				triangle(bottom, outerLo2, outerLo),
				triangle(top, outerHi, outerHi2),
			)
			continue
		}

		innerLo, innerLo2 := vertex(r.R0, r.Z0, k), vertex(r.R0, r.Z0, k+1)
		innerHi, innerHi2 := vertex(r.R0, r.Z1, k), vertex(r.R0, r.Z1, k+1)

		// inner wall faces the axis
		quad(innerLo, innerHi, innerHi2, innerLo2)
		// bottom and top annuli
		quad(innerLo, innerLo2, outerLo2, outerLo)
		quad(innerHi, outerHi, outerHi2, innerHi2)
	}

	return solid
}

// WriteRemoved writes the material cut away by p to path as binary STL.
// It reports false without writing when p has no toolpath.
func WriteRemoved(path string, p *lathe.Program, job lathe.Job, radiusMode bool) (bool, error) {
	ring, ok := Removed(p, job, radiusMode)
	if !ok {
		return false, nil
	}

	solid := ring.Solid("lathecam "+job.Operation.String(), Facets)
	if err := solid.WriteFile(path); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

func triangle(a, b, c stl.Vec3) stl.Triangle {
	u := [3]float64{float64(b[X] - a[X]), float64(b[Y] - a[Y]), float64(b[Z] - a[Z])}
	v := [3]float64{float64(c[X] - a[X]), float64(c[Y] - a[Y]), float64(c[Z] - a[Z])}
	n := [3]float64{
		u[Y]*v[Z] - u[Z]*v[Y],
		u[Z]*v[X] - u[X]*v[Z],
		u[X]*v[Y] - u[Y]*v[X],
	}

	l := math.Sqrt(n[X]*n[X] + n[Y]*n[Y] + n[Z]*n[Z])
	if l > 0 {
		n[X] /= l
		n[Y] /= l
		n[Z] /= l
	}

	return stl.Triangle{
		Normal:   stl.Vec3{float32(n[X]), float32(n[Y]), float32(n[Z])},
		Vertices: [3]stl.Vec3{a, b, c},
	}
}
