package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawSkill(t *testing.T, root, dirName, content string) {
	t.Helper()
	dir := filepath.Join(root, dirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644))
}

func TestCollectSkills(t *testing.T) {
	t.Run("loads packages in sorted order", func(t *testing.T) {
		root := t.TempDir()
		writeSkillPackage(t, root, "beta-skill", "beta-skill")
		writeSkillPackage(t, root, "alpha-skill", "alpha-skill")

		skills, err := collectSkills(root)
		require.NoError(t, err)
		require.Len(t, skills, 2)
		assert.Equal(t, "alpha-skill", skills[0].Name)
		assert.Equal(t, "A skill", skills[0].Description)
		assert.Equal(t, filepath.Join(root, "alpha-skill"), skills[0].Directory)
		assert.Equal(t, "beta-skill", skills[1].Name)
	})

	t.Run("skips unloadable packages", func(t *testing.T) {
		root := t.TempDir()
		writeSkillPackage(t, root, "good-skill", "good-skill")
		writeRawSkill(t, root, "bare-skill", "# No frontmatter here\n")

		skills, err := collectSkills(root)
		require.NoError(t, err)
		require.Len(t, skills, 1)
		assert.Equal(t, "good-skill", skills[0].Name)
	})

	t.Run("missing root errors", func(t *testing.T) {
		_, err := collectSkills(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}
