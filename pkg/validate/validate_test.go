package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillstash/skillstash/pkg/config"
	"github.com/skillstash/skillstash/pkg/skillmd"
)

func writeSkill(t *testing.T, root, dirName, content string) string {
	t.Helper()
	dir := filepath.Join(root, dirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644))
	return dir
}

func validSkill(name string) string {
	return "---\nname: " + name + "\ndescription: A valid skill\n---\n\n# Skill\n\nBody.\n"
}

func messagesOf(diags []Diagnostic) string {
	var parts []string
	for _, d := range diags {
		parts = append(parts, d.Message)
	}
	return strings.Join(parts, "\n")
}

func TestValidateSkillClean(t *testing.T) {
	cfg := config.Default()
	dir := writeSkill(t, t.TempDir(), "good-skill", validSkill("good-skill"))

	report := ValidateSkill(dir, cfg)
	assert.False(t, report.Failed())
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestValidateSkillKebabCase(t *testing.T) {
	cfg := config.Default()

	t.Run("bad directory name", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "My_Skill", validSkill("My_Skill"))
		report := ValidateSkill(dir, cfg)
		assert.Contains(t, messagesOf(report.Errors), "not kebab-case")
	})

	t.Run("enforcement disabled", func(t *testing.T) {
		relaxed := config.Default()
		relaxed.Validation.EnforceKebabCase = false
		dir := writeSkill(t, t.TempDir(), "My_Skill", validSkill("My_Skill"))
		report := ValidateSkill(dir, relaxed)
		assert.NotContains(t, messagesOf(report.Errors), "not kebab-case")
	})
}

func TestValidateSkillRequiredFiles(t *testing.T) {
	cfg := config.Default()
	cfg.Validation.RequiredFiles = []string{"SKILL.md", "README.md", "examples.md"}

	dir := writeSkill(t, t.TempDir(), "sparse-skill", validSkill("sparse-skill"))

	report := ValidateSkill(dir, cfg)
	msgs := messagesOf(report.Errors)
	assert.Contains(t, msgs, `required file "README.md" is missing`)
	assert.Contains(t, msgs, `required file "examples.md" is missing`)
	assert.NotContains(t, msgs, `required file "SKILL.md" is missing`)
	assert.Len(t, report.Errors, 2)
}

func TestValidateSkillLineCount(t *testing.T) {
	cfg := config.Default()
	cfg.Validation.MaxSkillLines = 10

	t.Run("over the ceiling", func(t *testing.T) {
		content := validSkill("long-skill") + strings.Repeat("filler\n", 20)
		dir := writeSkill(t, t.TempDir(), "long-skill", content)

		report := ValidateSkill(dir, cfg)
		msgs := messagesOf(report.Errors)
		assert.Contains(t, msgs, "exceeding the 10 line ceiling")
	})

	t.Run("approaching the ceiling warns only", func(t *testing.T) {
		// validSkill is 9 lines with the trailing split, 90% of 10.
		dir := writeSkill(t, t.TempDir(), "close-skill", validSkill("close-skill"))

		report := ValidateSkill(dir, cfg)
		assert.False(t, report.Failed())
		assert.Contains(t, messagesOf(report.Warnings), "approaching")
	})
}

func TestValidateSkillFrontmatter(t *testing.T) {
	cfg := config.Default()

	t.Run("missing required field", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "no-desc", "---\nname: no-desc\n---\n\nBody.\n")
		report := ValidateSkill(dir, cfg)
		assert.Contains(t, messagesOf(report.Errors), `required frontmatter field "description" is missing`)
	})

	t.Run("blank required field", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "blank-desc", "---\nname: blank-desc\ndescription: \"  \"\n---\n\nBody.\n")
		report := ValidateSkill(dir, cfg)
		assert.Contains(t, messagesOf(report.Errors), `required frontmatter field "description" is blank`)
	})

	t.Run("parse failure short-circuits field checks", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "broken", "---\n- just\n- a list\n---\n\nBody.\n")
		report := ValidateSkill(dir, cfg)

		msgs := messagesOf(report.Errors)
		assert.Contains(t, msgs, "malformed")
		assert.NotContains(t, msgs, "required frontmatter field")
		assert.NotContains(t, msgs, "does not match directory name")
		assert.Len(t, report.Errors, 1)
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "open-ended", "---\nname: open-ended\n\nBody without closing fence.\n")
		report := ValidateSkill(dir, cfg)
		assert.Contains(t, messagesOf(report.Errors), "malformed")
	})

	t.Run("name mismatch", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "dir-name", validSkill("other-name"))
		report := ValidateSkill(dir, cfg)
		msgs := messagesOf(report.Errors)
		assert.Contains(t, msgs, `"other-name"`)
		assert.Contains(t, msgs, `"dir-name"`)
	})

	t.Run("name match is case sensitive", func(t *testing.T) {
		relaxed := config.Default()
		relaxed.Validation.EnforceKebabCase = false
		dir := writeSkill(t, t.TempDir(), "Dir-Name", validSkill("dir-name"))
		report := ValidateSkill(dir, relaxed)
		assert.Contains(t, messagesOf(report.Errors), "does not match")
	})
}

func TestValidateSkillAcceptsSynthesizedDocuments(t *testing.T) {
	// Descriptions with YAML-significant characters must survive the trip
	// from synthesis to validation.
	cfg := config.Default()

	for name, description := range map[string]string{
		"colon-skill":     "Warning: does X",
		"multiline-skill": "Does X.\nAlso does Y when asked.",
	} {
		doc, err := skillmd.BuildSkillMarkdown(skillmd.Input{Name: name, Description: description})
		require.NoError(t, err)

		dir := writeSkill(t, t.TempDir(), name, doc)
		report := ValidateSkill(dir, cfg)
		assert.False(t, report.Failed(), "skill %s: %s", name, messagesOf(report.Errors))
	}
}

func TestValidateSkillIndependentRules(t *testing.T) {
	// A badly named directory with a mismatching frontmatter name reports
	// both findings, not just the first.
	cfg := config.Default()
	dir := writeSkill(t, t.TempDir(), "My_Skill", validSkill("my-skill"))

	report := ValidateSkill(dir, cfg)
	msgs := messagesOf(report.Errors)
	assert.Contains(t, msgs, "not kebab-case")
	assert.Contains(t, msgs, "does not match directory name")
	assert.Len(t, report.Errors, 2)
}

func TestValidateAll(t *testing.T) {
	cfg := config.Default()
	root := t.TempDir()

	writeSkill(t, root, "good-skill", validSkill("good-skill"))
	writeSkill(t, root, "Bad_Skill", validSkill("Bad_Skill"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden"), 0o755))

	reports, err := ValidateAll(root, cfg)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byName := map[string]Report{}
	for _, report := range reports {
		byName[report.Skill] = report
	}
	assert.False(t, byName["good-skill"].Failed())
	assert.True(t, byName["Bad_Skill"].Failed())
}

func TestSummarize(t *testing.T) {
	t.Run("no errors yields nil", func(t *testing.T) {
		reports := []Report{
			{Skill: "a"},
			{Skill: "b", Warnings: []Diagnostic{{Severity: SeverityWarning, Path: "b", Message: "close"}}},
		}
		assert.NoError(t, Summarize(reports))
	})

	t.Run("errors are aggregated", func(t *testing.T) {
		reports := []Report{
			{Skill: "a", Errors: []Diagnostic{{Severity: SeverityError, Path: "a", Message: "first"}}},
			{Skill: "b", Errors: []Diagnostic{{Severity: SeverityError, Path: "b", Message: "second"}}},
		}
		err := Summarize(reports)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "first")
		assert.Contains(t, err.Error(), "second")
	})
}
