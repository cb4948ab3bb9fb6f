package skillmd

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*
var templateFS embed.FS

const skillTemplate = "templates/skill.md.tmpl"

// Input carries the fields used to synthesize a skill document. Name must
// be a normalized kebab-case skill name; Spec and Sources are optional and
// their sections are omitted entirely when empty, never emitted blank.
type Input struct {
	Name        string
	Description string
	Spec        string
	Sources     string
}

// BuildSkillMarkdown renders a complete SKILL.md: frontmatter with exactly
// name and description, an H1 titleized from the name, the description as
// body prose, the fixed "When this skill activates" and "What this skill
// does" sections, then the optional "Additional spec" and "Sources"
// sections. Section order is fixed so golden-file comparisons hold.
func BuildSkillMarkdown(input Input) (string, error) {
	if input.Name == "" {
		return "", errors.New("skill name is required")
	}
	if input.Description == "" {
		return "", errors.New("skill description is required")
	}

	tmplContent, err := templateFS.ReadFile(skillTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to read skill template")
	}

	tmpl, err := template.New("skill").Parse(string(tmplContent))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse skill template")
	}

	// The frontmatter goes through the YAML encoder so descriptions with
	// colons or newlines stay well-formed.
	frontmatter, err := yaml.Marshal(Metadata{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode frontmatter")
	}

	data := struct {
		Frontmatter string
		Name        string
		Title       string
		Description string
		Spec        string
		Sources     string
	}{
		Frontmatter: string(frontmatter),
		Name:        input.Name,
		Title:       Titleize(input.Name),
		Description: input.Description,
		Spec:        input.Spec,
		Sources:     input.Sources,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to execute skill template")
	}

	return buf.String(), nil
}
