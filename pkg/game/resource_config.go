package game

// ResourceConfig represents the top-level resource configuration loaded from YAML.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  sparks:
//	    images:
//	      - id: IMAGE_SPARK1
//	        path: particles/spark1
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup is a set of images loaded together.
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
}

// ImageResource maps a texture reference to a file.
// Path is relative to base_path; a path without extension gets ".png".
type ImageResource struct {
	ID   string `yaml:"id"`   // Texture reference used by particle configs
	Path string `yaml:"path"` // Relative file path from base_path
}

// buildFullPath joins basePath and relativePath with a single slash.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
