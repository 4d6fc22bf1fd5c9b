package mesh

import (
	gomath "math"

	"github.com/Faultbox/edgeloop/pkg/math"
)

// Torus builds a closed quad torus standing on its rim like a wheel: the
// major circle lies in the XZ plane, so the mesh has a single highest vertex
// whenever segments is a multiple of 4. Vertex (i, j) has index i*rings+j,
// where i walks the major circle and j the tube. Panics if segments or rings
// is below 3.
func Torus(segments, rings int, major, minor float64) Data {
	if segments < 3 || rings < 3 {
		panic("mesh: torus needs at least 3 segments and 3 rings")
	}
	d := Data{
		Positions: make([]math.Vec3, 0, segments*rings),
		Faces:     make([][]int, 0, segments*rings),
	}
	up := math.Vec3{Y: 1}
	for i := 0; i < segments; i++ {
		theta := 2 * gomath.Pi * float64(i) / float64(segments)
		dir := math.Vec3{X: gomath.Cos(theta), Z: gomath.Sin(theta)}
		center := dir.Scale(major)
		for j := 0; j < rings; j++ {
			phi := 2 * gomath.Pi * float64(j) / float64(rings)
			offset := dir.Scale(gomath.Cos(phi)).Add(up.Scale(gomath.Sin(phi)))
			d.Positions = append(d.Positions, center.Add(offset.Scale(minor)))
		}
	}
	idx := func(i, j int) int { return (i%segments)*rings + j%rings }
	for i := 0; i < segments; i++ {
		for j := 0; j < rings; j++ {
			d.Faces = append(d.Faces, []int{idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)})
		}
	}
	return d
}

// Box builds a closed cube of edge length size centered on the origin, each
// side subdivided into an n×n quad grid with outward winding. Panics if n < 1.
func Box(n int, size float64) Data {
	if n < 1 {
		panic("mesh: box needs at least one subdivision")
	}
	var d Data
	index := make(map[[3]int]int)
	vertex := func(p [3]int) int {
		if id, ok := index[p]; ok {
			return id
		}
		id := len(d.Positions)
		index[p] = id
		step := size / float64(n)
		half := float64(n) / 2
		d.Positions = append(d.Positions, math.Vec3{
			X: (float64(p[0]) - half) * step,
			Y: (float64(p[1]) - half) * step,
			Z: (float64(p[2]) - half) * step,
		})
		return id
	}
	for a := 0; a < 3; a++ {
		u, v := (a+1)%3, (a+2)%3
		for _, side := range []int{0, n} {
			for cu := 0; cu < n; cu++ {
				for cv := 0; cv < n; cv++ {
					corner := func(du, dv int) int {
						var p [3]int
						p[a] = side
						p[u] = cu + du
						p[v] = cv + dv
						return vertex(p)
					}
					quad := []int{corner(0, 0), corner(1, 0), corner(1, 1), corner(0, 1)}
					if side == 0 {
						quad[1], quad[3] = quad[3], quad[1]
					}
					d.Faces = append(d.Faces, quad)
				}
			}
		}
	}
	return d
}

// Grid builds an open nx×ny quad sheet in the XY plane with unit cells.
// Vertex (i, j) has index j*(nx+1)+i. Panics if nx or ny is below 1.
func Grid(nx, ny int) Data {
	if nx < 1 || ny < 1 {
		panic("mesh: grid needs at least one cell")
	}
	d := Data{
		Positions: make([]math.Vec3, 0, (nx+1)*(ny+1)),
		Faces:     make([][]int, 0, nx*ny),
	}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			d.Positions = append(d.Positions, math.Vec3{X: float64(i), Y: float64(j)})
		}
	}
	idx := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			d.Faces = append(d.Faces, []int{idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)})
		}
	}
	return d
}

// TriangleStrip builds a strip of n triangles over n+2 zig-zag vertices with
// consistent winding. Panics if n < 1.
func TriangleStrip(n int) Data {
	if n < 1 {
		panic("mesh: strip needs at least one triangle")
	}
	d := Data{
		Positions: make([]math.Vec3, 0, n+2),
		Faces:     make([][]int, 0, n),
	}
	for i := 0; i < n+2; i++ {
		d.Positions = append(d.Positions, math.Vec3{X: float64(i) / 2, Y: float64(i % 2)})
	}
	for k := 0; k < n; k++ {
		if k%2 == 0 {
			d.Faces = append(d.Faces, []int{k, k + 1, k + 2})
		} else {
			d.Faces = append(d.Faces, []int{k + 1, k, k + 2})
		}
	}
	return d
}

// TriangleFan builds a closed fan of n triangles around a center vertex 0
// lifted to height. Rim vertex i (1..n) lies on the unit circle. Panics if
// n < 3.
func TriangleFan(n int, height float64) Data {
	if n < 3 {
		panic("mesh: fan needs at least 3 triangles")
	}
	d := Data{
		Positions: make([]math.Vec3, 0, n+1),
		Faces:     make([][]int, 0, n),
	}
	d.Positions = append(d.Positions, math.Vec3{Z: height})
	for i := 0; i < n; i++ {
		angle := 2 * gomath.Pi * float64(i) / float64(n)
		d.Positions = append(d.Positions, math.Vec3{X: gomath.Cos(angle), Y: gomath.Sin(angle)})
	}
	for i := 1; i <= n; i++ {
		next := i%n + 1
		d.Faces = append(d.Faces, []int{0, i, next})
	}
	return d
}
