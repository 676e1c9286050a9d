package models

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/teapot/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJBytes parses OBJ data held in memory.
func ParseOBJBytes(name string, data []byte) (*Mesh, error) {
	return ParseOBJ(name, bytes.NewReader(data))
}

// ParseOBJ reads vertex positions ("v") and faces ("f") from r. Face
// indices are 1-based; negative indices count back from the most recent
// vertex. Texture and normal references after a slash are ignored, and
// polygons with more than three corners are split into a triangle fan.
// Malformed vertex lines are skipped; a malformed face is an error.
func ParseOBJ(name string, r io.Reader) (*Mesh, error) {
	mesh := NewMesh(name)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	var corners []int
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if v, ok := parseVertex(fields[1:]); ok {
				mesh.AddVertex(v)
			}
		case "f":
			corners = corners[:0]
			for _, tok := range fields[1:] {
				idx, err := parseIndex(tok, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				corners = append(corners, idx)
			}
			if len(corners) < 3 {
				return nil, fmt.Errorf("line %d: face has %d vertices", line, len(corners))
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.AddFace(corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(fields []string) (math3d.Vec3, bool) {
	if len(fields) < 3 {
		return math3d.Vec3{}, false
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, false
		}
		xyz[i] = f
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), true
}

// parseIndex converts a face token to a zero-based vertex index.
func parseIndex(tok string, vertexCount int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q: %w", tok, err)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return vertexCount + n, nil
	}
	return 0, fmt.Errorf("face index 0 is not valid")
}
