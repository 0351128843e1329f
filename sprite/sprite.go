// Package sprite describes the renderable look shared by every sprite of one
// visual: a mesh and an instancing-capable material. Looks are resolved once
// per distinct visual, never per entity.
package sprite

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyName is returned when a look is requested without a name.
var ErrEmptyName = errors.New("sprite: look name is empty")

// Vertex is one mesh vertex in model space.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// Triangles returns the number of triangles in m.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Material describes how a look is drawn. Instancing must be true for looks
// shared by a whole population.
type Material struct {
	Name       string
	Texture    string
	Instancing bool
}

// Look is a mesh plus material, shared by reference.
type Look struct {
	Name     string
	Mesh     *Mesh
	Material Material
}

// Provider resolves a look by name.
type Provider interface {
	Look(name string) (Look, error)
}

// QuadProvider builds flat quads for flip-book sprites. Each distinct name is
// built once and cached.
type QuadProvider struct {
	// Width and Height are the quad size in world units.
	Width, Height float32
	// PivotY shifts the quad vertically so the tilt axis can sit on an edge.
	PivotY float32

	mu    sync.Mutex
	looks map[string]Look
}

// NewQuadProvider returns a provider of width x height quads.
func NewQuadProvider(width, height, pivotY float32) *QuadProvider {
	return &QuadProvider{Width: width, Height: height, PivotY: pivotY}
}

// Look returns the quad look for name, building it on first request.
func (p *QuadProvider) Look(name string) (Look, error) {
	if name == "" {
		return Look{}, ErrEmptyName
	}
	if p.Width <= 0 || p.Height <= 0 {
		return Look{}, fmt.Errorf("sprite: invalid quad size %vx%v", p.Width, p.Height)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.looks[name]; ok {
		return l, nil
	}
	if p.looks == nil {
		p.looks = make(map[string]Look)
	}
	l := Look{
		Name: name,
		Mesh: Quad(p.Width, p.Height, p.PivotY),
		Material: Material{
			Name:       name,
			Texture:    name + ".png",
			Instancing: true,
		},
	}
	p.looks[name] = l
	return l, nil
}

// Quad returns a width x height quad in the XY plane, centred on X
// and shifted by pivotY on Y.
func Quad(width, height, pivotY float32) *Mesh {
	hw, hh := width/2, height/2
	return &Mesh{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-hw, -hh + pivotY, 0}, TexCoord: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{hw, -hh + pivotY, 0}, TexCoord: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{hw, hh + pivotY, 0}, TexCoord: mgl32.Vec2{1, 1}},
			{Position: mgl32.Vec3{-hw, hh + pivotY, 0}, TexCoord: mgl32.Vec2{0, 1}},
		},
		Indices: []uint16{0, 2, 1, 0, 3, 2},
	}
}
