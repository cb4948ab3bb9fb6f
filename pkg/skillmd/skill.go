// Package skillmd handles the skill document format: a directory holding a
// SKILL.md file whose YAML frontmatter names and describes one reusable
// agent capability. It converts free-text titles into valid skill names,
// extracts fields from issue-form bodies, synthesizes ready-to-write skill
// documents, and loads existing skills from a skills root.
package skillmd

// SkillFileName is the primary document of every skill package.
const SkillFileName = "SKILL.md"

// Skill is a loaded skill package.
type Skill struct {
	Name        string `json:"name"`        // Unique name from frontmatter
	Description string `json:"description"` // Brief description for model decision-making
	Directory   string `json:"directory"`   // Full path to the skill directory
	Content     string `json:"content"`     // Body of SKILL.md, frontmatter stripped
}

// Metadata is the YAML frontmatter of a SKILL.md file.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
