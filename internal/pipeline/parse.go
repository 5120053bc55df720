// Package pipeline orchestrates a full resume parse: document
// extraction, strategy selection, section parsing, and postprocessing.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/extract"
	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/logging"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/skills"
	"github.com/jonathan/resume-parser/internal/social"
	"github.com/jonathan/resume-parser/internal/types"
)

// Mode selects the parsing strategy.
type Mode string

// Parsing strategy modes. Auto prefers the LLM when configured and falls
// back to the heuristic parser on any LLM failure.
const (
	ModeAuto      Mode = "auto"
	ModeHeuristic Mode = "heuristic"
	ModeLLM       Mode = "llm"
)

// ParseMode validates a mode string from a flag or query parameter.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeHeuristic:
		return ModeHeuristic, nil
	case ModeLLM:
		return ModeLLM, nil
	}
	return "", fmt.Errorf("unknown parser mode %q", s)
}

// Parser runs parses. It is safe for concurrent use.
type Parser struct {
	cfg    *config.Config
	log    *logging.Logger
	client llm.Client
}

// New builds a Parser without an LLM client; only the heuristic strategy
// is available until Connect succeeds.
func New(cfg *config.Config, log *logging.Logger) *Parser {
	return &Parser{cfg: cfg, log: log}
}

// NewWithClient builds a Parser around an existing LLM client. Used by
// tests and by callers that manage the client themselves.
func NewWithClient(cfg *config.Config, log *logging.Logger, client llm.Client) *Parser {
	return &Parser{cfg: cfg, log: log, client: client}
}

// Connect creates the Gemini client when an API key is configured. A
// missing key is not an error; the heuristic parser runs alone.
func (p *Parser) Connect(ctx context.Context) error {
	if !p.cfg.LLMEnabled() {
		p.log.Info("llm parsing disabled, heuristic parser only")
		return nil
	}

	llmCfg := llm.DefaultConfig().WithModel(llm.TierStandard, p.cfg.GeminiModel)
	client, err := llm.NewClient(ctx, llmCfg, p.cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}
	p.client = client
	p.log.Info("llm parsing enabled", "model", p.cfg.GeminiModel)
	return nil
}

// Close releases the LLM client, if any.
func (p *Parser) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// ParseBytes decodes a document and parses the extracted text. The
// result's meta carries the extraction stats.
func (p *Parser) ParseBytes(ctx context.Context, data []byte, fileType string, mode Mode) (*types.ResumeParseResult, error) {
	doc, err := extract.FromBytes(data, fileType)
	if err != nil {
		return nil, err
	}

	result, err := p.ParseText(ctx, doc.Text, mode)
	if err != nil {
		return nil, err
	}

	result.Meta.FileType = doc.FileType
	result.Meta.Pages = doc.Pages
	result.Meta.SHA256 = doc.SHA256
	return result, nil
}

// ParseText parses already-extracted resume text.
func (p *Parser) ParseText(ctx context.Context, text string, mode Mode) (*types.ResumeParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return types.Empty(), nil
	}

	switch mode {
	case ModeLLM:
		if p.client == nil {
			return nil, fmt.Errorf("llm parser requested but no API key configured")
		}
		return p.parseLLM(ctx, text)
	case ModeHeuristic:
		return p.parseHeuristic(ctx, text, nil), nil
	default:
		if p.client == nil {
			return p.parseHeuristic(ctx, text, nil), nil
		}
		result, err := p.parseLLM(ctx, text)
		if err == nil {
			return result, nil
		}
		p.log.Warn("llm parse failed, falling back to heuristic parser", "error", err)
		return p.parseHeuristic(ctx, text, err), nil
	}
}

func (p *Parser) parseLLM(ctx context.Context, text string) (*types.ResumeParseResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.LLMTimeout)
	defer cancel()

	result, err := llm.ParseResume(ctx, p.client, text)
	if err != nil {
		return nil, err
	}

	sections := parsing.SplitSections(text)
	result.Meta.SectionsFound = sections.Names()
	result.Meta.Parsed = true
	result.Meta.Parser = "llm"
	result.Meta.Partial = len(result.Experience) == 0 || len(result.Education) == 0

	return parsing.Postprocess(result), nil
}

// parseHeuristic runs the rule-based parser. llmErr, when non-nil, is
// the LLM failure that triggered the fallback and is surfaced in meta.
func (p *Parser) parseHeuristic(ctx context.Context, text string, llmErr error) *types.ResumeParseResult {
	sections := parsing.SplitSections(text)

	result := types.Empty()
	result.Personal = parsing.ExtractPersonal(text)
	result.ProfessionalSummary = types.StringPtr(parsing.ExtractSummary(sections))
	result.Experience = parsing.ParseExperienceSections(sections)
	result.Education = parsing.ParseEducation(sections["education"])
	result.Skills = skills.Consolidate(sections, result.Experience)
	result.SocialLinks = social.ExtractLinks(text)

	result.Meta.SectionsFound = sections.Names()
	result.Meta.Parsed = true
	result.Meta.Parser = "heuristic"
	result.Meta.Partial = len(result.Experience) == 0 || len(result.Education) == 0
	if llmErr != nil {
		result.Meta.LLMFailed = true
		result.Meta.LLMError = llmErr.Error()
	}

	result = parsing.Postprocess(result)

	// When a client is available and the heuristic strategy was chosen
	// outright, skill levels can still come from the model.
	if p.client != nil && llmErr == nil {
		p.enrichSkillLevels(ctx, result, text)
	}
	return result
}

func (p *Parser) enrichSkillLevels(ctx context.Context, result *types.ResumeParseResult, text string) {
	names := make([]string, 0, len(result.Skills))
	for _, s := range result.Skills {
		names = append(names, s.SkillName)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.LLMTimeout)
	defer cancel()

	levels, err := skills.InferExperienceLevels(ctx, p.client, names, text)
	if err != nil {
		p.log.Warn("skill level inference failed", "error", err)
		return
	}

	for i := range result.Skills {
		if level, ok := levels[strings.ToLower(result.Skills[i].SkillName)]; ok {
			result.Skills[i].ExperienceLevel = &level
			result.Skills[i].HideExperienceLevel = false
		}
	}
}
