package hints

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claritycoach/coach/internal/llm"
)

const (
	defaultHint          = "Denke über die Grundlagen nach."
	defaultEncouragement = "Du schaffst das!"
	defaultAssessment    = "Überprüfung abgeschlossen."
	defaultNextStep      = "Arbeite weiter an deinem Ansatz."
)

// Service generates Socratic hints and reviews learner work.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a tutoring service backed by provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type hintOutput struct {
	Hint          string `json:"hint"`
	Encouragement string `json:"encouragement"`
}

// Hint produces a hint for the requested level. Levels outside 1..3 are
// treated as level 1.
func (s *Service) Hint(ctx context.Context, req HintRequest) (*Hint, error) {
	if strings.TrimSpace(req.SubtaskText) == "" {
		return nil, ErrEmptySubtask
	}
	req.Level = req.Level.Normalize()

	msg, err := buildHintMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build hint prompt: %w", err)
	}

	var out hintOutput
	if err := s.generate(llm.WithPurpose(ctx, "progressive-hint"), hintSystemPrompt, msg, HintSchema, &out, s.cfg.MaxTokens); err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	return &Hint{
		Level:         req.Level,
		Text:          orDefault(out.Hint, defaultHint),
		Encouragement: orDefault(out.Encouragement, defaultEncouragement),
	}, nil
}

type approachOutput struct {
	IsOnRightTrack    bool     `json:"isOnRightTrack"`
	OverallAssessment string   `json:"overallAssessment"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	SpecificIssue     string   `json:"specificIssue"`
	NextStep          string   `json:"nextStep"`
	Encouragement     string   `json:"encouragement"`
	ConfidenceScore   int      `json:"confidenceScore"`
}

// CheckApproach reviews the learner's work on a subtask without giving
// away the solution.
func (s *Service) CheckApproach(ctx context.Context, req ApproachRequest) (*ApproachFeedback, error) {
	if strings.TrimSpace(req.SubtaskText) == "" {
		return nil, ErrEmptySubtask
	}
	if strings.TrimSpace(req.StudentWork) == "" {
		return nil, ErrEmptyWork
	}

	msg, err := buildApproachMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build approach prompt: %w", err)
	}

	var out approachOutput
	if err := s.generate(llm.WithPurpose(ctx, "approach-check"), approachSystemPrompt, msg, ApproachSchema, &out, s.cfg.MaxTokens); err != nil {
		return nil, fmt.Errorf("approach check: %w", err)
	}

	return &ApproachFeedback{
		OnRightTrack:      out.IsOnRightTrack,
		OverallAssessment: orDefault(out.OverallAssessment, defaultAssessment),
		Strengths:         out.Strengths,
		Improvements:      out.Improvements,
		SpecificIssue:     out.SpecificIssue,
		NextStep:          orDefault(out.NextStep, defaultNextStep),
		Encouragement:     orDefault(out.Encouragement, defaultEncouragement),
		Confidence:        out.ConfidenceScore,
	}, nil
}

// Decompose splits a worksheet into numbered tasks and lettered subtasks,
// each with a few Socratic questions.
func (s *Service) Decompose(ctx context.Context, text string) (*Decomposition, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTask
	}

	msg, err := buildDecomposeMessage(text)
	if err != nil {
		return nil, fmt.Errorf("build decomposition prompt: %w", err)
	}

	maxTokens := max(s.cfg.DecomposeMaxTokens, s.cfg.MaxTokens)
	var out Decomposition
	if err := s.generate(llm.WithPurpose(ctx, "task-decomposition"), decomposeSystemPrompt, msg, DecompositionSchema, &out, maxTokens); err != nil {
		return nil, fmt.Errorf("task decomposition: %w", err)
	}
	if len(out.Tasks) == 0 {
		return nil, ErrNoTasks
	}
	return &out, nil
}

func (s *Service) generate(ctx context.Context, system, user string, schema *llm.Schema, out any, maxTokens int) error {
	req := llm.Prompt(system, user)
	req.Schema = schema
	req.MaxTokens = maxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
