package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_DetectProject(t *testing.T) {
	root := t.TempDir()
	web := filepath.Join(root, "web")
	service := filepath.Join(root, "service")
	for _, dir := range []string{filepath.Join(web, "src", "components"), filepath.Join(service, "ui")} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	files := map[string]string{
		filepath.Join(web, "package.json"):                    `{"name": "@acme/web", "private": true}`,
		filepath.Join(web, "src", "components", "Button.jsx"): "export const Button = () => <button/>;\n",
		filepath.Join(service, "go.mod"):                      "module github.com/acme/service\n\ngo 1.23\n",
		filepath.Join(service, "ui", "App.tsx"):               "export const App = () => <main/>;\n",
	}
	for path, content := range files {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	tests := []struct {
		description  string
		path         string
		projectType  string
		name         string
		relativePath string
	}{
		{
			description:  "javascript project",
			path:         filepath.Join(web, "src", "components", "Button.jsx"),
			projectType:  "javascript",
			name:         "@acme/web",
			relativePath: "src/components/Button.jsx",
		},
		{
			description:  "go project embedding a frontend",
			path:         filepath.Join(service, "ui", "App.tsx"),
			projectType:  "go",
			name:         "github.com/acme/service",
			relativePath: "ui/App.tsx",
		},
	}
	detector := New()
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			project, err := detector.DetectProject(test.path)
			require.NoError(t, err)
			assert.Equal(t, test.projectType, project.Type)
			assert.Equal(t, test.name, project.Name)
			assert.Equal(t, test.relativePath, project.RelativePath)
			assert.Equal(t, test.relativePath, detector.ModuleID(test.path))
		})
	}

	_, err := detector.DetectProject(filepath.Join(root, "missing.jsx"))
	assert.Error(t, err)
	assert.Equal(t, "missing.jsx", detector.ModuleID(filepath.Join(root, "missing.jsx")))
}
