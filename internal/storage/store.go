// Package storage keeps baked texture sets on disk. Each bake is a
// directory of PNG files plus a manifest.json describing them.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/texture"
)

const manifestName = "manifest.json"

var ErrUnknownTexture = errors.New("storage: texture not in bake")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Texture is one image going into a bake.
type Texture struct {
	Body    string
	Rings   bool
	Request texture.Request
	Image   image.Image
}

type TextureEntry struct {
	Body    string          `json:"body"`
	File    string          `json:"file"`
	Rings   bool            `json:"rings,omitempty"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Request texture.Request `json:"request"`
}

type BakeMetadata struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Seed       uint64         `json:"seed"`
	Resolution int            `json:"resolution"`
	Textures   []TextureEntry `json:"textures"`
}

// Save writes textures as a new bake and returns its id.
func (s *Store) Save(seed uint64, resolution int, textures []Texture) (string, error) {
	ts := s.now()
	bakeID := fmt.Sprintf("bake_%d_%d", resolution, ts.Unix())
	bakeDir := filepath.Join(s.baseDir, bakeID)
	for i := 2; ; i++ {
		if _, err := os.Stat(bakeDir); os.IsNotExist(err) {
			break
		}
		bakeID = fmt.Sprintf("bake_%d_%d_%d", resolution, ts.Unix(), i)
		bakeDir = filepath.Join(s.baseDir, bakeID)
	}
	if err := os.MkdirAll(bakeDir, 0755); err != nil {
		return "", err
	}

	meta := BakeMetadata{
		ID:         bakeID,
		Timestamp:  ts,
		Seed:       seed,
		Resolution: resolution,
	}
	if err := writeBake(bakeDir, &meta, textures); err != nil {
		os.RemoveAll(bakeDir)
		return "", err
	}
	return bakeID, nil
}

// writeBake fills bakeDir with the PNGs and, last, the manifest.
func writeBake(bakeDir string, meta *BakeMetadata, textures []Texture) error {
	meta.Textures = make([]TextureEntry, 0, len(textures))
	for _, t := range textures {
		name := t.Body + ".png"
		if t.Rings {
			name = t.Body + "_rings.png"
		}
		if err := export.SavePNG(filepath.Join(bakeDir, name), t.Image); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		b := t.Image.Bounds()
		meta.Textures = append(meta.Textures, TextureEntry{
			Body:    t.Body,
			File:    name,
			Rings:   t.Rings,
			Width:   b.Dx(),
			Height:  b.Dy(),
			Request: t.Request,
		})
	}

	metaFile, err := os.Create(filepath.Join(bakeDir, manifestName))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	return metaFile.Close()
}

// List returns every readable bake, oldest first.
func (s *Store) List() ([]BakeMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BakeMetadata{}, nil
		}
		return nil, err
	}

	bakes := make([]BakeMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		bakes = append(bakes, *meta)
	}
	sort.SliceStable(bakes, func(i, j int) bool { return bakes[i].Timestamp.Before(bakes[j].Timestamp) })
	return bakes, nil
}

func (s *Store) Load(bakeID string) (*BakeMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, bakeID, manifestName))
	if err != nil {
		return nil, err
	}

	var meta BakeMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTexture decodes one body's texture from a bake.
func (s *Store) LoadTexture(bakeID, body string, rings bool) (image.Image, error) {
	meta, err := s.Load(bakeID)
	if err != nil {
		return nil, err
	}
	for _, e := range meta.Textures {
		if e.Body != body || e.Rings != rings {
			continue
		}
		f, err := os.Open(filepath.Join(s.baseDir, bakeID, e.File))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return png.Decode(f)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTexture, body)
}
