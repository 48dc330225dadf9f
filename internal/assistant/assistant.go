package assistant

import (
	"context"
	"encoding/json"
	"log"
)

// TokenSource yields a fresh Google access token.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// GoogleAPI is the subset of Google reads the pipeline can dispatch to.
type GoogleAPI interface {
	UserInfo(ctx context.Context, token string) (map[string]any, error)
	Tasks(ctx context.Context, token string) (map[string]any, error)
	CalendarEvents(ctx context.Context, token string) (map[string]any, error)
}

// LLM answers a two-message prompt with the first completion's text.
type LLM interface {
	Prompt(ctx context.Context, system, user string) (string, error)
}

// Assistant routes a chat message through intent classification, an optional
// Google tool call, and a final phrasing pass.
type Assistant struct {
	tokens      TokenSource
	google      GoogleAPI
	llm         LLM
	defaultName string
	prompts     *PromptSpec
}

func New(tokens TokenSource, google GoogleAPI, llm LLM, defaultName string) *Assistant {
	return NewWithPrompts(tokens, google, llm, defaultName, DefaultPromptSpec())
}

func NewWithPrompts(tokens TokenSource, google GoogleAPI, llm LLM, defaultName string, prompts *PromptSpec) *Assistant {
	return &Assistant{tokens: tokens, google: google, llm: llm, defaultName: defaultName, prompts: prompts}
}

// Process turns a free-text message into a reply. Classification failures fall
// back to plain chat; token, Google, and model failures surface as typed
// pipeline errors for the caller to flatten.
func (a *Assistant) Process(ctx context.Context, message string) (string, error) {
	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return "", authErr(err)
	}

	givenName := a.defaultName
	if profile, err := a.google.UserInfo(ctx, token); err == nil {
		if name, ok := profile["given_name"].(string); ok && name != "" {
			givenName = name
		}
	}

	raw, err := a.llm.Prompt(ctx, a.prompts.IntentSystem, message)
	if err != nil {
		return "", upstreamErr(err)
	}
	action := parseIntent(raw)

	switch action {
	case ActionGetTasks, ActionGetCalendar:
		var result map[string]any
		if action == ActionGetTasks {
			result, err = a.google.Tasks(ctx, token)
		} else {
			result, err = a.google.CalendarEvents(ctx, token)
		}
		if err != nil {
			return "", upstreamErr(err)
		}
		log.Printf("[chat] tool %s returned %d top-level keys", action, len(result))

		toolJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", &PipelineError{Kind: KindParse, Err: err}
		}
		system := a.prompts.synthesisPrompt(givenName, message, string(toolJSON))
		reply, err := a.llm.Prompt(ctx, system, message)
		if err != nil {
			return "", upstreamErr(err)
		}
		return reply, nil
	default:
		reply, err := a.llm.Prompt(ctx, a.prompts.personaPrompt(givenName), message)
		if err != nil {
			return "", upstreamErr(err)
		}
		return reply, nil
	}
}
