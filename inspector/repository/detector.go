package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Detector identifies project root folders and derives module ids of source files
type Detector struct {
	// Common project root marker files/directories, in lookup order
	markers []string
	fs      afs.Service
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"package.json", // JavaScript/Node projects
			"deno.json",    // Deno projects
			"go.mod",       // Go projects embedding a frontend
			".git",         // Generic VCS marker
		},
		fs: afs.New(),
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If the path is a directory, start from there
	// If it's a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath, projectType := d.findProjectRoot(startDir); rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = d.extractProjectName(info)
	return info, nil
}

// ModuleID returns project relative slash path of a source file, falling back to its base name
func (d *Detector) ModuleID(filePath string) string {
	project, err := d.DetectProject(filePath)
	if err != nil || project.RelativePath == "" || project.RelativePath == "." {
		return filepath.Base(filePath)
	}
	return project.RelativePath
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

func determineProjectType(marker string) string {
	switch marker {
	case "package.json", "deno.json":
		return "javascript"
	case "go.mod":
		return "go"
	case ".git":
		return "git"
	}
	return "unknown"
}

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(project *Project) string {
	switch project.Type {
	case "go":
		return d.extractGoModuleName(project)
	case "javascript":
		if name := d.extractJSPackageName(filepath.Join(project.RootPath, "package.json")); name != "" {
			return name
		}
	}
	return filepath.Base(project.RootPath)
}

func (d *Detector) extractGoModuleName(project *Project) string {
	goModPath := filepath.Join(project.RootPath, "go.mod")
	content, _ := d.fs.DownloadWithURL(context.Background(), goModPath)
	if len(content) == 0 {
		return filepath.Base(project.RootPath)
	}
	mod, _ := modfile.ParseLax(goModPath, content, nil)
	if mod == nil || mod.Module == nil {
		return filepath.Base(project.RootPath)
	}
	project.GoModule = mod.Module
	return mod.Module.Mod.Path
}

func (d *Detector) extractJSPackageName(packageJSONPath string) string {
	content, err := d.fs.DownloadWithURL(context.Background(), packageJSONPath)
	if err != nil {
		return ""
	}
	manifest := struct {
		Name string `json:"name"`
	}{}
	if err = json.Unmarshal(content, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}
