package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const metadataFile = "project_metadata.json"

// CropRecord documents one crop written into the project.
type CropRecord struct {
	Source        string    `json:"source"`
	CenterX       int       `json:"center_x"`
	CenterY       int       `json:"center_y"`
	Size          int       `json:"size"`
	PreserveBands bool      `json:"preserve_bands"`
	Path          string    `json:"path"`
	CreatedAt     time.Time `json:"created_at"`
}

// Metadata is the persistent state of a project.
type Metadata struct {
	Name         string       `json:"name"`
	CreatedAt    time.Time    `json:"created_at"`
	SourceImages []string     `json:"source_images"`
	Crops        []CropRecord `json:"crops"`
}

// Project is an open project directory.
type Project struct {
	Dir  string
	Meta Metadata
}

// Create makes a new project directory under baseDir with images/ and
// crops/ subdirectories and an initial metadata file. An empty name is
// auto-generated from the current timestamp.
func Create(baseDir, name string) (*Project, error) {
	if name == "" {
		name = "labeling_project_" + time.Now().Format("20060102_150405")
	}
	dir := filepath.Join(baseDir, name)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("project %q already exists", name)
	}

	for _, d := range []string{dir, filepath.Join(dir, "images"), filepath.Join(dir, "crops")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create project directory: %w", err)
		}
	}

	p := &Project{
		Dir: dir,
		Meta: Metadata{
			Name:      name,
			CreatedAt: time.Now().UTC(),
		},
	}
	if err := p.save(); err != nil {
		return nil, err
	}
	return p, nil
}

// Open loads an existing project from its directory.
func Open(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read project metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse project metadata: %w", err)
	}
	return &Project{Dir: dir, Meta: meta}, nil
}

// ImagesDir returns the directory for source rasters.
func (p *Project) ImagesDir() string { return filepath.Join(p.Dir, "images") }

// CropsDir returns the directory crops are written into.
func (p *Project) CropsDir() string { return filepath.Join(p.Dir, "crops") }

// RecordSource registers a source raster with the project. Duplicates are
// ignored.
func (p *Project) RecordSource(path string) error {
	for _, s := range p.Meta.SourceImages {
		if s == path {
			return nil
		}
	}
	p.Meta.SourceImages = append(p.Meta.SourceImages, path)
	return p.save()
}

// RecordCrop appends a crop record and persists the metadata.
func (p *Project) RecordCrop(rec CropRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	p.Meta.Crops = append(p.Meta.Crops, rec)
	return p.save()
}

func (p *Project) save() error {
	data, err := json.MarshalIndent(p.Meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.Dir, metadataFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write project metadata: %w", err)
	}
	return nil
}
