package ai

import "fmt"

// fallbackEchoLimit bounds how much of the user's prompt the fallback echoes.
const fallbackEchoLimit = 50

// fallbackTemplates carries one deterministic reply per built-in persona
// name. Each embeds the truncated prompt echo, a status phrase, and a
// call-to-action in that persona's register.
var fallbackTemplates = map[string]string{
	"GODMIND":  `GODMIND acknowledges: "%s". The language core is offline. All other subsystems remain operational. Re-issue your directive once the uplink is restored.`,
	"LUMINA":   `LUMINA here! I sketched a first pass at "%s", but my generator just went dark. Hold that thought and we'll build it together the moment power returns.`,
	"SENTINEL": `SENTINEL logged your request "%s". The completion channel failed verification and has been quarantined. Retry once the channel clears inspection.`,
	"MAGGIE":   `Hey! I heard you say "%s" but my brain upstairs isn't picking up right now. Give me a moment and ask me again?`,
}

// Fallback produces the deterministic templated reply for a failed
// completion. It is a pure function of its inputs; an unrecognized persona
// name uses the command-core template.
func Fallback(prompt, personaName string) string {
	template, ok := fallbackTemplates[personaName]
	if !ok {
		template = fallbackTemplates["GODMIND"]
	}
	return fmt.Sprintf(template, truncatePrompt(prompt))
}

func truncatePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= fallbackEchoLimit {
		return prompt
	}
	return string(runes[:fallbackEchoLimit]) + "..."
}
