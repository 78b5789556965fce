package hints

import "github.com/claritycoach/coach/internal/llm"

// HintSchema constrains a progressive hint reply.
var HintSchema = &llm.Schema{
	Name:        "progressive-hint",
	Description: "A short Socratic hint plus one encouraging sentence",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "The hint, at most 2-3 sentences, never the solution",
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "One encouraging sentence",
			},
		},
		"required":             []any{"hint", "encouragement"},
		"additionalProperties": false,
	},
}

// ApproachSchema constrains an approach check reply.
var ApproachSchema = &llm.Schema{
	Name:        "approach-check",
	Description: "Constructive review of a student's work without revealing the solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isOnRightTrack": map[string]any{
				"type": "boolean",
			},
			"overallAssessment": map[string]any{
				"type":        "string",
				"description": "Short assessment (1-2 sentences)",
			},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"improvements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "What could be improved, without the solution",
			},
			"specificIssue": map[string]any{
				"type":        "string",
				"description": "A specific problem, empty if none",
			},
			"nextStep": map[string]any{
				"type":        "string",
				"description": "Hint towards the next step, without the solution",
			},
			"encouragement": map[string]any{
				"type": "string",
			},
			"confidenceScore": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 5,
			},
		},
		"required": []any{
			"isOnRightTrack", "overallAssessment", "strengths", "improvements",
			"specificIssue", "nextStep", "encouragement", "confidenceScore",
		},
		"additionalProperties": false,
	},
}

// DecompositionSchema constrains a task decomposition reply.
var DecompositionSchema = &llm.Schema{
	Name:        "task-decomposition",
	Description: "Numbered tasks with lettered subtasks and Socratic questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tasks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"number": map[string]any{"type": "string"},
						"topic":  map[string]any{"type": "string"},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"leicht", "mittel", "anspruchsvoll"},
						},
						"task": map[string]any{
							"type":        "string",
							"description": "Task text without its subtasks",
						},
						"subtasks": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"label": map[string]any{"type": "string"},
									"task":  map[string]any{"type": "string"},
									"questions": map[string]any{
										"type":        "array",
										"items":       map[string]any{"type": "string"},
										"description": "3-5 Socratic questions specific to this subtask",
									},
								},
								"required":             []any{"label", "task", "questions"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"number", "topic", "difficulty", "task", "subtasks"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tasks"},
		"additionalProperties": false,
	},
}
