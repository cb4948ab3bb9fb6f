// Package gha renders the GitHub Actions workflow that drives the skill
// stash pipeline in CI. The template uses [[ ]] delimiters so GitHub's own
// ${{ }} expressions pass through untouched.
package gha

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/pkg/errors"

	"github.com/skillstash/skillstash/pkg/policy"
)

//go:embed templates/*
var TemplateFS embed.FS

const SkillPipelineWorkflowTemplate = "templates/skill_pipeline_workflow.yaml.tmpl"

// WorkflowTemplateData holds the data for pipeline workflow rendering.
type WorkflowTemplateData struct {
	Steps       []policy.Step
	UseAppToken bool
	AutoMerge   bool
	SkillsDir   string
}

// RenderPipelineWorkflow renders the skill pipeline workflow from the
// resolved steps and the selected automation mode.
func RenderPipelineWorkflow(data WorkflowTemplateData) (string, error) {
	tmplContent, err := TemplateFS.ReadFile(SkillPipelineWorkflowTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to read template file")
	}

	tmpl, err := template.New("workflow").Delims("[[", "]]").Parse(string(tmplContent))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to execute template")
	}

	return buf.String(), nil
}
