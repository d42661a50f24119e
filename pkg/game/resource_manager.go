package game

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"

	"github.com/Tomortec/particle-emitter/internal/particle"
)

// ErrUnknownTexture is wrapped in an AssetResolutionError when a reference is
// neither a configured ID nor a loadable file path.
var ErrUnknownTexture = errors.New("unknown texture reference")

// ResourceManager loads and caches particle textures.
//
// Textures are addressed by resource ID (declared in resources.yaml) or by
// file path. Each file is decoded once and the same *ebiten.Image is handed
// out on every later request, so particles sharing a texture batch together
// in the renderer.
//
// Not safe for concurrent use; load resources from the game goroutine.
//
// Usage:
//
//	rm := NewResourceManager()
//	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	img, err := rm.ResolveTexture("IMAGE_SPARK1")
type ResourceManager struct {
	imageCache map[string]*ebiten.Image // path (or registered ID) -> Image

	// YAML resource configuration
	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
}

var _ particle.TextureResolver = (*ResourceManager)(nil)

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:  make(map[string]*ebiten.Image),
		resourceMap: make(map[string]string),
	}
}

// LoadImage decodes the image at path, or returns the cached copy.
// Supported formats: PNG, JPEG.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage returns a cached image, or nil when path was never loaded.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// RegisterImage makes img resolvable under id without touching the disk.
// Generated textures (and tests) use it.
func (rm *ResourceManager) RegisterImage(id string, img *ebiten.Image) {
	rm.imageCache[id] = img
	rm.resourceMap[id] = id
}

// LoadResourceConfig parses a resources.yaml file and rebuilds the ID map.
// Call it once before resolving textures by ID.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.config = &config
	rm.buildResourceMap()
	log.Printf("[ResourceManager] Loaded %d image IDs from %s", len(rm.resourceMap), configPath)
	return nil
}

// buildResourceMap maps every image ID to its full path, e.g.
//
//	IMAGE_SPARK1 -> assets/particles/spark1.png
//
// Registered images survive a rebuild.
func (rm *ResourceManager) buildResourceMap() {
	if rm.config == nil {
		return
	}

	resourceMap := make(map[string]string)
	for id, path := range rm.resourceMap {
		if path == id {
			resourceMap[id] = id
		}
	}

	for groupName, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png" // Default to PNG for images
			}
			if previous, dup := resourceMap[img.ID]; dup && previous != fullPath {
				log.Printf("[ResourceManager] Warning: image ID %s redefined in group %s", img.ID, groupName)
			}
			resourceMap[img.ID] = fullPath
		}
	}
	rm.resourceMap = resourceMap
}

// LoadImageByID loads the image declared under resourceID.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		if rm.config == nil {
			return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
		}
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}
	return rm.LoadImage(filePath)
}

// GetImageByID returns the cached image for resourceID, or nil.
func (rm *ResourceManager) GetImageByID(resourceID string) *ebiten.Image {
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil
	}
	return rm.GetImage(filePath)
}

// LoadResourceGroup loads every image of a group, stopping at the first failure.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}
	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("group %s: %w", groupName, err)
		}
	}
	return nil
}

// ImageIDs returns every resolvable ID, sorted.
func (rm *ResourceManager) ImageIDs() []string {
	ids := make([]string, 0, len(rm.resourceMap))
	for id := range rm.resourceMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolveTexture implements particle.TextureResolver. ref is tried as a
// resource ID first and as a file path second. Every failure is an
// *AssetResolutionError.
func (rm *ResourceManager) ResolveTexture(ref string) (*ebiten.Image, error) {
	if _, isID := rm.resourceMap[ref]; isID {
		img, err := rm.LoadImageByID(ref)
		if err != nil {
			return nil, &AssetResolutionError{Ref: ref, Err: err}
		}
		return img, nil
	}

	if filepath.Ext(ref) == "" {
		return nil, &AssetResolutionError{Ref: ref, Err: ErrUnknownTexture}
	}
	img, err := rm.LoadImage(ref)
	if err != nil {
		return nil, &AssetResolutionError{Ref: ref, Err: err}
	}
	return img, nil
}
