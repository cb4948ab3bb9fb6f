package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ConfigFileName is the basename (without extension) of the stash
// configuration file looked up under the repository root.
const ConfigFileName = "stash"

const agentDefaultSentinel = "default"

// Load reads the stash configuration from root and returns a fully
// populated configuration. Load never fails: an absent or unparseable file
// yields Default() unchanged, and individual missing or malformed fields
// fall back to their defaults without affecting the rest of the document.
func Load(root string) *StashConfig {
	cfg := Default()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(root)

	if err := v.ReadInConfig(); err != nil {
		return cfg
	}

	applyDefaults(v, cfg)
	applyLabels(v, cfg)
	applyValidation(v, cfg)
	applyAgents(v, cfg)
	applyWorkflow(v, cfg)
	applyGitHub(v, cfg)

	return cfg
}

func applyDefaults(v *viper.Viper, cfg *StashConfig) {
	// Parse* functions map unset and unrecognized values to the documented
	// defaults, so the getters can be used unconditionally.
	cfg.Defaults.Research = ParseResearchDepth(v.GetString("defaults.research"))
	cfg.Defaults.Review = ParseReviewMode(v.GetString("defaults.review"))
	if v.IsSet("defaults.auto_proceed") {
		cfg.Defaults.AutoProceed = v.GetBool("defaults.auto_proceed")
	}
}

func applyLabels(v *viper.Viper, cfg *StashConfig) {
	setLabel := func(key string, dst *string) {
		if s := strings.TrimSpace(v.GetString("labels." + key)); s != "" {
			*dst = s
		}
	}
	setLabel("skip_research", &cfg.Labels.SkipResearch)
	setLabel("skip_review", &cfg.Labels.SkipReview)
	setLabel("skip_validation", &cfg.Labels.SkipValidation)
	setLabel("deep_research", &cfg.Labels.DeepResearch)
	setLabel("require_review", &cfg.Labels.RequireReview)
}

func applyValidation(v *viper.Viper, cfg *StashConfig) {
	if v.IsSet("validation.required_files") {
		if files := v.GetStringSlice("validation.required_files"); len(files) > 0 {
			cfg.Validation.RequiredFiles = files
		}
	}
	if n := v.GetInt("validation.max_skill_lines"); n > 0 {
		cfg.Validation.MaxSkillLines = n
	}
	if v.IsSet("validation.enforce_kebab_case") {
		cfg.Validation.EnforceKebabCase = v.GetBool("validation.enforce_kebab_case")
	}
	if v.IsSet("validation.required_frontmatter") {
		if fields := v.GetStringSlice("validation.required_frontmatter"); len(fields) > 0 {
			cfg.Validation.RequiredFrontmatter = fields
		}
	}
}

func applyAgents(v *viper.Viper, cfg *StashConfig) {
	if agent, ok := ParseAgent(v.GetString("agents.default")); ok {
		cfg.Agents.Default = agent
	}

	alternateReview := v.GetBool("agents.alternate_review")

	for _, role := range Roles {
		raw := strings.ToLower(strings.TrimSpace(v.GetString("agents.roles." + string(role))))

		if raw == "" || raw == agentDefaultSentinel {
			// alternate_review only fires for the sentinel, not for an
			// explicit value that happens to equal the default agent.
			if role == RoleReview && alternateReview {
				cfg.Agents.Roles[role] = cfg.Agents.Default.Opposite()
			} else {
				cfg.Agents.Roles[role] = cfg.Agents.Default
			}
			continue
		}

		if agent, ok := ParseAgent(raw); ok {
			cfg.Agents.Roles[role] = agent
		} else {
			cfg.Agents.Roles[role] = cfg.Agents.Default
		}
	}
}

func applyWorkflow(v *viper.Viper, cfg *StashConfig) {
	raw := v.Get("workflow")
	if raw == nil {
		return
	}

	var entries []struct {
		Role  string `mapstructure:"role"`
		Agent string `mapstructure:"agent"`
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &entries,
		WeaklyTypedInput: true,
	})
	if err != nil || decoder.Decode(raw) != nil {
		return
	}

	steps := make([]WorkflowStep, 0, len(entries))
	for _, entry := range entries {
		role, ok := ParseRole(entry.Role)
		if !ok {
			// Entries without a canonical role are dropped, not fatal.
			continue
		}
		steps = append(steps, WorkflowStep{
			Role:  role,
			Agent: strings.ToLower(strings.TrimSpace(entry.Agent)),
		})
	}
	cfg.Workflow = steps
}

func applyGitHub(v *viper.Viper, cfg *StashConfig) {
	cfg.GitHub.AutomationMode = ParseAutomationIntent(v.GetString("github.automation_mode"))
}
