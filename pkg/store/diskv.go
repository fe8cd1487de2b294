package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/deck/pkg/profile"
)

// ErrNotFound is returned by Load when no document exists for a name.
var ErrNotFound = errors.New("store: profile not found")

// Persistence defines the persistence contract for profile documents.
type Persistence interface {
	Profiles(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (*profile.Profile, error)
	Save(ctx context.Context, p *profile.Profile) error
	Delete(ctx context.Context, name string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const ext = ".json"

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No cache: another deck process may rewrite a profile and reads
		// must observe it.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Profiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if key == "" {
			continue
		}
		names = append(names, key)
	}
	sort.Strings(names)
	return names, nil
}

func (p *persistence) Load(ctx context.Context, name string) (*profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := profile.Key(name)
	if key == "" {
		return nil, ErrNotFound
	}
	val, err := p.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) && strings.TrimSpace(name) != key {
		val, err = p.d.Read(strings.TrimSpace(name))
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	prof, err := profile.Decode(val)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", key, err)
	}
	if prof.Name == "" {
		prof.Name = key
	}
	profile.Normalize(prof)
	return prof, nil
}

func (p *persistence) Save(ctx context.Context, prof *profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := profile.Validate(prof); err != nil {
		return err
	}
	data, err := profile.Encode(prof)
	if err != nil {
		return err
	}
	if err := p.d.Write(profile.Key(prof.Name), data); err != nil {
		return fmt.Errorf("store: write %s: %w", prof.Name, err)
	}
	return nil
}

func (p *persistence) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := profile.Key(name)
	if !p.d.Has(key) {
		return ErrNotFound
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// keyToPathTransform stores every profile as <key>.json directly under the
// base path.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + ext,
	}
}

// pathToKeyTransform maps files back to keys. Anything that is not a top
// level .json document yields "" and is skipped by Profiles.
func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) > 0 || !strings.HasSuffix(pathKey.FileName, ext) {
		return ""
	}
	return strings.TrimSuffix(pathKey.FileName, ext)
}
