package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

//go:embed sprites/*.yaml
var embeddedSprites embed.FS

// Provider resolves a sprite name to a decoded sprite.
type Provider interface {
	Load(ctx context.Context, name string) (*Sprite, error)
}

// FSProvider reads "<name>.yaml" from a list of file systems, first hit wins.
type FSProvider struct {
	layers []fs.FS
}

// NewFSProvider creates a provider over the given layers, highest priority first.
func NewFSProvider(layers ...fs.FS) *FSProvider {
	return &FSProvider{layers: layers}
}

// Embedded returns a provider over the sprites compiled into the binary.
func Embedded() *FSProvider {
	sub, err := fs.Sub(embeddedSprites, "sprites")
	if err != nil {
		// embed paths are fixed at compile time
		panic(err)
	}
	return NewFSProvider(sub)
}

// WithOverrideDir returns a provider that checks dir before the embedded set.
// An empty dir returns the embedded provider unchanged.
func WithOverrideDir(dir string) (*FSProvider, error) {
	base := Embedded()
	if dir == "" {
		return base, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("assets: override dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: override dir %s is not a directory", dir)
	}
	return NewFSProvider(append([]fs.FS{os.DirFS(dir)}, base.layers...)...), nil
}

// Load implements Provider.
func (p *FSProvider) Load(ctx context.Context, name string) (*Sprite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || !fs.ValidPath(name) || path.Base(name) != name {
		return nil, fmt.Errorf("%w: bad name %q", ErrNotFound, name)
	}

	file := name + ".yaml"
	for _, layer := range p.layers {
		data, err := fs.ReadFile(layer, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("assets: read %s: %w", file, err)
		}
		s, err := ParseSprite(data)
		if err != nil {
			return nil, fmt.Errorf("assets: %s: %w", file, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
