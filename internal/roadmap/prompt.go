package roadmap

import "github.com/jonathan/pathfinder/internal/prompts"

const promptFile = "roadmap.json"

// BuildRoadmapPrompt asks the model for a JSON roadmap for a single role
func BuildRoadmapPrompt(role string) string {
	template := prompts.MustGet(promptFile, "generate-roadmap")
	return prompts.Format(template, map[string]string{
		"Role": role,
	})
}

// BuildComparePrompt asks the model for a JSON comparison of two roles
func BuildComparePrompt(roleA, roleB string) string {
	template := prompts.MustGet(promptFile, "compare-roles")
	return prompts.Format(template, map[string]string{
		"RoleA": roleA,
		"RoleB": roleB,
	})
}
