package catalog

import "github.com/capsohq/modelcache/schemas"

func intPtr(v int) *int { return &v }

// wellKnownModels is the editor-curated metadata layered over raw provider
// listings. Providers report little more than an id; these entries add
// display names, limits, and capability flags for models we recognize.
var wellKnownModels = map[string]schemas.Model{
	"gpt-4o": {
		ID:            "gpt-4o",
		DisplayName:   "GPT-4o",
		Family:        "gpt-4o",
		ContextWindow: intPtr(128000),
		Capabilities:  []string{"chat", "vision", "tools"},
	},
	"gpt-4o-mini": {
		ID:            "gpt-4o-mini",
		DisplayName:   "GPT-4o mini",
		Family:        "gpt-4o",
		ContextWindow: intPtr(128000),
		Capabilities:  []string{"chat", "vision", "tools"},
	},
	"claude-3-5-sonnet": {
		ID:            "claude-3-5-sonnet",
		DisplayName:   "Claude 3.5 Sonnet",
		Family:        "claude-3-5",
		ContextWindow: intPtr(200000),
		Capabilities:  []string{"chat", "vision", "tools"},
	},
	"deepseek-chat": {
		ID:            "deepseek-chat",
		DisplayName:   "DeepSeek Chat",
		Family:        "deepseek",
		ContextWindow: intPtr(64000),
		Capabilities:  []string{"chat", "tools"},
	},
	"deepseek-reasoner": {
		ID:            "deepseek-reasoner",
		DisplayName:   "DeepSeek Reasoner",
		Family:        "deepseek",
		ContextWindow: intPtr(64000),
		Capabilities:  []string{"chat", "reasoning"},
	},
	"kimi-latest": {
		ID:            "kimi-latest",
		DisplayName:   "Kimi Latest",
		Family:        "kimi",
		ContextWindow: intPtr(128000),
		Capabilities:  []string{"chat"},
	},
	"kimi-k2-thinking": {
		ID:            "kimi-k2-thinking",
		DisplayName:   "Kimi K2 Thinking",
		Family:        "kimi-k2",
		ContextWindow: intPtr(256000),
		Capabilities:  []string{"chat", "reasoning"},
	},
	"glm-4.5": {
		ID:            "glm-4.5",
		DisplayName:   "GLM-4.5",
		Family:        "glm-4",
		ContextWindow: intPtr(128000),
		Capabilities:  []string{"chat", "tools"},
	},
	"glm-z1-thinking": {
		ID:            "glm-z1-thinking",
		DisplayName:   "GLM-Z1 Thinking",
		Family:        "glm-z1",
		ContextWindow: intPtr(32000),
		Capabilities:  []string{"chat", "reasoning"},
	},
	"qwen-plus": {
		ID:            "qwen-plus",
		DisplayName:   "Qwen Plus",
		Family:        "qwen",
		ContextWindow: intPtr(131072),
		Capabilities:  []string{"chat", "tools"},
	},
	"qwen-turbo": {
		ID:            "qwen-turbo",
		DisplayName:   "Qwen Turbo",
		Family:        "qwen",
		ContextWindow: intPtr(1000000),
		Capabilities:  []string{"chat"},
	},
}

// WellKnownMerger enriches a raw provider listing with curated metadata.
// Must be pure and idempotent.
type WellKnownMerger interface {
	Merge(models []schemas.Model) []schemas.Model
}

// WellKnownMergeFunc adapts a function to the WellKnownMerger interface.
type WellKnownMergeFunc func(models []schemas.Model) []schemas.Model

// Merge calls the underlying function.
func (f WellKnownMergeFunc) Merge(models []schemas.Model) []schemas.Model {
	return f(models)
}

// mergeWellKnown deduplicates the raw list by id (first occurrence wins)
// and fills in curated metadata for models we recognize. Provider-reported
// fields take precedence over curated ones.
func mergeWellKnown(models []schemas.Model) []schemas.Model {
	merged := make([]schemas.Model, 0, len(models))
	seen := make(map[string]struct{}, len(models))
	for _, model := range models {
		if model.ID == "" {
			continue
		}
		if _, exists := seen[model.ID]; exists {
			continue
		}
		seen[model.ID] = struct{}{}

		if known, ok := wellKnownModels[model.ID]; ok {
			if model.DisplayName == "" {
				model.DisplayName = known.DisplayName
			}
			if model.Family == "" {
				model.Family = known.Family
			}
			if model.ContextWindow == nil && known.ContextWindow != nil {
				v := *known.ContextWindow
				model.ContextWindow = &v
			}
			if model.MaxOutputTokens == nil && known.MaxOutputTokens != nil {
				v := *known.MaxOutputTokens
				model.MaxOutputTokens = &v
			}
			if len(model.Capabilities) == 0 {
				model.Capabilities = append([]string(nil), known.Capabilities...)
			}
		}
		merged = append(merged, model)
	}
	return merged
}
