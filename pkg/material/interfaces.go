package material

import "github.com/df07/scanline-pathtracer/pkg/core"

// Every material variant satisfies core.Material
var (
	_ core.Material = (*Lambertian)(nil)
	_ core.Material = (*Metal)(nil)
	_ core.Material = (*Dielectric)(nil)
)
