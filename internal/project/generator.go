package project

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/phravins/genstudio/internal/templates"
	"github.com/phravins/genstudio/pkg/utils"
)

// File is one rendered file of a generated project.
type File struct {
	Path    string
	Content []byte
}

// templateData is what template sources see as {{.Name}} etc.
type templateData struct {
	Name     string
	Template string
	Stack    string
}

// Render executes every file of tpl for a project called name, plus a README
// when the template does not ship one. Files come back sorted by path.
func Render(tpl templates.Template, name string) ([]File, error) {
	data := templateData{Name: name, Template: tpl.Name, Stack: tpl.Stack}

	files := make([]File, 0, len(tpl.Files)+1)
	for filename, content := range tpl.Files {
		rawPath, err := execute("path:"+filename, filename, data)
		if err != nil {
			return nil, err
		}
		body, err := execute(filename, content, data)
		if err != nil {
			return nil, err
		}
		path := filepath.ToSlash(filepath.Clean(string(rawPath)))
		if strings.HasPrefix(path, "../") || path == ".." || filepath.IsAbs(path) {
			return nil, fmt.Errorf("template %q: file path %q escapes the project", tpl.Name, filename)
		}
		files = append(files, File{Path: path, Content: body})
	}
	if _, ok := tpl.Files["README.md"]; !ok {
		files = append(files, File{Path: "README.md", Content: []byte(readme(name, tpl))})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func execute(name, src string, data templateData) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Write creates dir and writes files into it.
func Write(dir string, files []File) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for _, f := range files {
		fullPath := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, f.Content, 0644); err != nil {
			return err
		}
	}
	return nil
}

// Archive zips files under a top-level folder named root.
func Archive(root string, files []File) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, f := range files {
		w, err := zw.Create(root + "/" + f.Path)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(f.Content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func initGit(dir string) error {
	return utils.RunIn(dir, "git", "init", "--quiet")
}

func readme(name string, tpl templates.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "![Stack](https://img.shields.io/badge/stack-%s-orange)\n\n", tpl.Stack)
	if tpl.Description != "" {
		fmt.Fprintf(&b, "> %s\n\n", tpl.Description)
	}
	b.WriteString("## Getting Started\n\n")
	if tpl.InstallCmd != "" {
		fmt.Fprintf(&b, "Install dependencies:\n\n```bash\n%s\n```\n\n", tpl.InstallCmd)
	}
	if tpl.RunCmd != "" {
		fmt.Fprintf(&b, "Start the project:\n\n```bash\n%s\n```\n", tpl.RunCmd)
	}
	return b.String()
}
