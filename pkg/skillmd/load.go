package skillmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// LoadSkill reads dir's SKILL.md and returns the parsed skill. The
// frontmatter must declare non-empty name and description fields.
func LoadSkill(dir string) (*Skill, error) {
	path := filepath.Join(dir, SkillFileName)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)

	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	return &Skill{
		Name:        name,
		Description: description,
		Directory:   dir,
		Content:     extractBody(string(content)),
	}, nil
}

// FindSkills enumerates the immediate subdirectories of the skills root
// that do not start with a dot, in sorted order. Each entry is a candidate
// skill package; no per-package validation happens here.
func FindSkills(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skills root")
	}

	var dirs []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		// Stat through symlinks so linked skill directories count.
		info, err := os.Stat(filepath.Join(root, entry.Name()))
		if err != nil || !info.IsDir() {
			continue
		}

		dirs = append(dirs, filepath.Join(root, entry.Name()))
	}

	sort.Strings(dirs)
	return dirs, nil
}

// extractBody removes the YAML frontmatter block and returns the body.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
