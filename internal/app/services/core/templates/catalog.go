package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/exceptions"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var embeddedCatalog embed.FS

type catalogFile struct {
	Templates []models.AssessmentTemplate `yaml:"templates"`
}

// LoadEmbeddedCatalog parses and validates the templates shipped with the binary.
func LoadEmbeddedCatalog() ([]models.AssessmentTemplate, error) {
	return LoadCatalog(embeddedCatalog, "catalog")
}

// LoadCatalog reads every yaml file of dir. Template ids must be unique across files.
func LoadCatalog(fsys fs.FS, dir string) ([]models.AssessmentTemplate, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var templates []models.AssessmentTemplate
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		parsed, err := ParseCatalog(raw)
		if err != nil {
			return nil, err
		}
		for _, template := range parsed {
			if file, ok := seen[template.ID]; ok {
				reason := fmt.Sprintf("id declared in both %s and %s", file, entry.Name())
				return nil, exceptions.ErrInvalidTemplate(nil, template.ID, reason)
			}
			seen[template.ID] = entry.Name()
			templates = append(templates, template)
		}
	}
	return templates, nil
}

// ParseCatalog decodes one catalog document and validates each template in it.
func ParseCatalog(raw []byte) ([]models.AssessmentTemplate, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, exceptions.ErrCannotParseYAML(err)
	}
	for i := range file.Templates {
		if err := ValidateTemplate(&file.Templates[i]); err != nil {
			return nil, err
		}
	}
	return file.Templates, nil
}
