package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/toxichemicals/GO/holy-portfolio/geometry"
	"github.com/toxichemicals/GO/holy-portfolio/logging"
)

// ExportGLB writes s as a binary glTF file. The scene transform becomes a
// root node with one child per mesh; meshes sharing a geometry share one
// glTF mesh, so the cube field is stored once.
func ExportGLB(s *Scene, path string) error {
	doc := gltf.NewDocument()
	root := &gltf.Node{
		Name:        "scene",
		Translation: vec3f64(s.Position),
		Rotation:    quatf64(s.Quat()),
		Scale:       vec3f64(s.Scale),
	}
	doc.Nodes = append(doc.Nodes, root)

	meshes := make(map[*geometry.Geometry]int)
	materials := make(map[*Material]int)
	for _, m := range s.Meshes {
		if m.Geometry == nil || m.Geometry.VertexCount() == 0 {
			continue
		}
		mat := -1
		if m.Material != nil {
			var ok bool
			if mat, ok = materials[m.Material]; !ok {
				mat = len(doc.Materials)
				doc.Materials = append(doc.Materials, &gltf.Material{Name: m.Material.Name})
				materials[m.Material] = mat
			}
		}
		idx, ok := meshes[m.Geometry]
		if !ok {
			idx = writeMesh(doc, m.Name, m.Geometry, mat)
			meshes[m.Geometry] = idx
		}
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        m.Name,
			Mesh:        gltf.Index(idx),
			Translation: vec3f64(m.Position),
			Rotation:    quatf64(m.Quat()),
			Scale:       vec3f64(m.Scale),
		})
		root.Children = append(root.Children, len(doc.Nodes)-1)
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("failed to export %s: %w", path, err)
	}
	logging.Logger().Info("scene exported", "path", path, "nodes", len(doc.Nodes), "meshes", len(doc.Meshes))
	return nil
}

func writeMesh(doc *gltf.Document, name string, g *geometry.Geometry, material int) int {
	positions := make([][3]float32, len(g.Positions))
	for i, p := range g.Positions {
		positions[i] = p
	}
	normals := make([][3]float32, len(g.Normals))
	for i, n := range g.Normals {
		normals[i] = n
	}
	prim := &gltf.Primitive{
		Indices: gltf.Index(modeler.WriteIndices(doc, g.Indices)),
		Attributes: map[string]int{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, normals),
		},
	}
	if material >= 0 {
		prim.Material = gltf.Index(material)
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	return len(doc.Meshes) - 1
}

func vec3f64(v mgl32.Vec3) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}

func quatf64(q mgl32.Quat) [4]float64 {
	return [4]float64{float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)}
}
