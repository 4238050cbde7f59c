package meander

import "fmt"

// BuildSurface lifts every triangle of a triangulation into 3D, using the
// elevation function for the z coordinate of each vertex.
// indices is the flat triangulator output, three point indices per triangle.
func BuildSurface(points []Point2, indices []int, elevation ElevationFunc) ([]Triangle, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no triangles for %d points", ErrTriangulation, len(points))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: triangle index count %d is not a multiple of 3", ErrInvalidArgument, len(indices))
	}
	if elevation == nil {
		return nil, fmt.Errorf("%w: missing elevation function", ErrInvalidArgument)
	}

	// Vertices are shared by up to six triangles, elevate each once.
	heights := make(map[int]float64, len(points))
	vertex := func(i int) (Point3, error) {
		if i < 0 || i >= len(points) {
			return Point3{}, fmt.Errorf("%w: point index %d out of range [0, %d)", ErrInvalidArgument, i, len(points))
		}
		p := points[i]
		z, ok := heights[i]
		if !ok {
			z = elevation(p.X, p.Y)
			heights[i] = z
		}
		return Point3{X: p.X, Y: p.Y, Z: z}, nil
	}

	triangles := make([]Triangle, 0, len(indices)/3)
	for n := 0; n < len(indices); n += 3 {
		var t Triangle
		for k := 0; k < 3; k++ {
			v, err := vertex(indices[n+k])
			if err != nil {
				return nil, err
			}
			t[k] = v
		}
		triangles = append(triangles, t)
	}
	return triangles, nil
}

// Surface triangulates points and elevates the resulting triangles.
func Surface(points []Point2, tri Triangulator, elevation ElevationFunc) ([]Triangle, error) {
	if tri == nil {
		tri = &Delaunay{}
	}
	indices, err := tri.Triangulate(points)
	if err != nil {
		return nil, err
	}
	return BuildSurface(points, indices, elevation)
}
