// Package validate checks skill packages against the configured structural
// rules: naming, required files, document size, and frontmatter
// completeness. Validation is a pure function of the filesystem snapshot
// and configuration; it never mutates the tree. Rules are independent, so
// one package can fail several at once, except that a frontmatter parse
// failure short-circuits the frontmatter field checks to avoid cascading
// noise.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/skillstash/skillstash/pkg/config"
	"github.com/skillstash/skillstash/pkg/skillmd"
)

// Severity classifies a diagnostic. Errors fail the run; warnings are
// informational only and never affect the exit code.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one finding for one skill package.
type Diagnostic struct {
	Severity Severity
	Path     string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Path, d.Message)
}

// Report holds the findings for one skill package.
type Report struct {
	Skill    string
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Failed reports whether the package produced at least one error.
func (r Report) Failed() bool {
	return len(r.Errors) > 0
}

func (r *Report) errorf(path, format string, args ...any) {
	r.Errors = append(r.Errors, Diagnostic{
		Severity: SeverityError,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Report) warnf(path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// ValidateSkill checks one skill package directory against the configured
// rules and returns all findings.
func ValidateSkill(dir string, cfg *config.StashConfig) Report {
	base := filepath.Base(dir)
	report := Report{Skill: base}

	if cfg.Validation.EnforceKebabCase && !skillmd.IsKebabCase(base) {
		report.errorf(dir, "directory name %q is not kebab-case", base)
	}

	for _, required := range cfg.Validation.RequiredFiles {
		path := filepath.Join(dir, required)
		if _, err := os.Stat(path); err != nil {
			report.errorf(path, "required file %q is missing", required)
		}
	}

	docPath := filepath.Join(dir, skillmd.SkillFileName)
	content, err := os.ReadFile(docPath)
	if err != nil {
		// Absence is already reported via required_files; nothing else to
		// check without the document.
		return report
	}

	checkLineCount(&report, docPath, string(content), cfg.Validation.MaxSkillLines)
	checkFrontmatter(&report, docPath, string(content), base, cfg.Validation.RequiredFrontmatter)

	return report
}

func checkLineCount(report *Report, path, content string, maxLines int) {
	// Split counts the trailing empty line produced by a final newline.
	count := len(strings.Split(content, "\n"))
	if count > maxLines {
		report.errorf(path, "document has %d lines, exceeding the %d line ceiling", count, maxLines)
		return
	}
	if count*10 >= maxLines*9 {
		report.warnf(path, "document has %d lines, approaching the %d line ceiling", count, maxLines)
	}
}

func checkFrontmatter(report *Report, path, content, base string, requiredFields []string) {
	fields, err := parseFrontmatter(content)
	if err != nil {
		// One diagnostic for the parse failure; the field checks below
		// would only repeat it.
		report.errorf(path, "frontmatter is malformed: %v", err)
		return
	}

	for _, field := range requiredFields {
		value, ok := fields[field]
		if !ok {
			report.errorf(path, "required frontmatter field %q is missing", field)
			continue
		}
		if strings.TrimSpace(fmt.Sprintf("%v", value)) == "" || value == nil {
			report.errorf(path, "required frontmatter field %q is blank", field)
		}
	}

	if raw, ok := fields["name"]; ok {
		if name := fmt.Sprintf("%v", raw); name != base {
			report.errorf(path, "frontmatter name %q does not match directory name %q", name, base)
		}
	}
}

// parseFrontmatter extracts the leading --- delimited block and parses it
// as a YAML key/value mapping.
func parseFrontmatter(content string) (map[string]any, error) {
	if !strings.HasPrefix(content, "---") {
		return nil, errors.New("missing frontmatter block")
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, errors.New("unterminated frontmatter block")
	}

	block := strings.Join(lines[1:end], "\n")

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return nil, errors.Wrap(err, "not a well-formed key/value mapping")
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// ValidateAll validates every skill package under the skills root
// independently. It fails only when the root itself cannot be enumerated.
func ValidateAll(root string, cfg *config.StashConfig) ([]Report, error) {
	dirs, err := skillmd.FindSkills(root)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(dirs))
	for _, dir := range dirs {
		reports = append(reports, ValidateSkill(dir, cfg))
	}
	return reports, nil
}

// Summarize folds every error diagnostic across reports into one combined
// error, or nil when no package failed. Warnings are never included.
func Summarize(reports []Report) error {
	var result *multierror.Error
	for _, report := range reports {
		for _, diag := range report.Errors {
			result = multierror.Append(result, errors.New(diag.String()))
		}
	}
	return result.ErrorOrNil()
}
