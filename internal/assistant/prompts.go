package assistant

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptSpec holds the system prompts the pipeline sends. The templates use
// {name}, {message} and {tool_output} placeholders.
type PromptSpec struct {
	IntentSystem string `yaml:"intent_system"`
	Persona      string `yaml:"persona"`
	Synthesis    string `yaml:"synthesis"`
}

// LoadPromptSpec reads the prompt set from a YAML file.
func LoadPromptSpec(path string) (*PromptSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec PromptSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, err
	}
	if spec.IntentSystem == "" || spec.Persona == "" || spec.Synthesis == "" {
		return nil, fmt.Errorf("prompt spec %s is missing a section", path)
	}
	return &spec, nil
}

// DefaultPromptSpec mirrors prompts/assistant.yaml for callers without one.
func DefaultPromptSpec() *PromptSpec {
	return &PromptSpec{
		IntentSystem: `You are an intent router.
Available tools: get_google_tasks, get_google_calendar.
If user asks about tasks -> {"action": "get_google_tasks"}.
If user asks about schedule/calendar -> {"action": "get_google_calendar"}.
Otherwise -> {"action":"chat"}.
Return ONLY JSON, no text.`,
		Persona: "You are {name}'s personal AI assistant (Jarvis style). Always helpful and call him 'Sir'.",
		Synthesis: `You are {name}'s Jarvis-like AI.
User asked: '{message}'
Tool output:
{tool_output}
Now respond naturally, call him 'Sir'.`,
	}
}

func (p *PromptSpec) personaPrompt(name string) string {
	return strings.ReplaceAll(p.Persona, "{name}", name)
}

func (p *PromptSpec) synthesisPrompt(name, message, toolOutput string) string {
	out := strings.ReplaceAll(p.Synthesis, "{name}", name)
	out = strings.ReplaceAll(out, "{message}", message)
	return strings.ReplaceAll(out, "{tool_output}", toolOutput)
}
