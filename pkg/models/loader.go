package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// loaders maps lower-case file extensions to mesh readers.
var loaders = map[string]func(string) (*Mesh, error){
	".obj":  LoadOBJ,
	".glb":  LoadGLB,
	".gltf": LoadGLB,
}

// LoadModel picks a reader from the file extension, ignoring case.
func LoadModel(path string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	load, ok := loaders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported model format %q (use .obj, .glb or .gltf)", ext)
	}
	return load(path)
}

// LoadModelFromPak parses the OBJ entry named asset inside the archive at
// pakPath. Entries of any other type are refused.
func LoadModelFromPak(pakPath, asset string) (*Mesh, error) {
	p, err := OpenPak(pakPath)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	e, ok := p.Find(asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrAssetNotFound, asset, pakPath)
	}
	if e.Type != AssetOBJ {
		return nil, fmt.Errorf("asset %s is %s, not obj", asset, e.Type)
	}

	data, err := p.Read(e)
	if err != nil {
		return nil, err
	}
	return ParseOBJBytes(asset, data)
}
