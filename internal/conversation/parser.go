// Package conversation turns raw user input into session intents.
package conversation

import (
	"regexp"
	"strings"

	"brewflow/internal/domain"
	"brewflow/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents with keywords and simple
// patterns. Unrecognized input maps to IntentUnknown, which the session
// ignores and logs; nothing the user types is ever an error.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log.Named("parser")}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(pour|poured|confirm|go|done pouring|p)$`), domain.IntentConfirmPour},
		{regexp.MustCompile(`(?i)^(next|done|continue|advance|n)$`), domain.IntentNext},
		{regexp.MustCompile(`(?i)^(pause|hold|brb)$`), domain.IntentPause},
		{regexp.MustCompile(`(?i)^(resume|back|unpause)$`), domain.IntentResume},
		{regexp.MustCompile(`(?i)^(restart|start over|again)$`), domain.IntentRestart},
		{regexp.MustCompile(`(?i)^(exit|quit|stop|abandon|q)$`), domain.IntentExit},
		{regexp.MustCompile(`(?i)^(status|where|progress|info)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(start|begin)$`), domain.IntentStart},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(input string) domain.Intent {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		// Bare enter means "move on" -- the most common interaction.
		return domain.Intent{Type: domain.IntentNext}
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent %s for %q", rule.intent, trimmed)
			return domain.Intent{Type: rule.intent, Payload: trimmed}
		}
	}

	p.log.Debug("no match for %q, returning unknown intent", trimmed)
	return domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}
}
