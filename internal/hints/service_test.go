package hints

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritycoach/coach/internal/llm"
)

func hintJSON(hint, enc string) json.RawMessage {
	b, _ := json.Marshal(map[string]string{"hint": hint, "encouragement": enc})
	return b
}

func testHintRequest(level Level) HintRequest {
	return HintRequest{
		TaskNumber:  "1",
		TaskText:    "Gegeben ist f(x) = x³ - 3x.",
		Topic:       "Kurvendiskussion",
		SubLabel:    "a",
		SubtaskText: "Bestimme die Extrempunkte von f.",
		Level:       level,
	}
}

func TestService_Hint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: hintJSON("Was gilt für f'(x) an einem Extrempunkt?", "Du bist auf dem richtigen Weg!"),
	})
	svc := NewService(mock, DefaultConfig())

	h, err := svc.Hint(t.Context(), testHintRequest(LevelSocratic))
	require.NoError(t, err)

	assert.Equal(t, LevelSocratic, h.Level)
	assert.Equal(t, "Was gilt für f'(x) an einem Extrempunkt?", h.Text)
	assert.Equal(t, "Du bist auf dem richtigen Weg!", h.Encouragement)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, HintSchema, call.Schema)
	assert.Equal(t, 0.7, call.Temperature)
	assert.Equal(t, hintSystemPrompt, call.System)
	assert.Contains(t, call.Messages[0].Content, "STUFE 1 - SOKRATISCHE FRAGE")
	assert.Contains(t, call.Messages[0].Content, "Bestimme die Extrempunkte von f.")
}

func TestService_HintLevels(t *testing.T) {
	tests := []struct {
		level Level
		want  Level
		stage string
	}{
		{LevelSocratic, LevelSocratic, "STUFE 1"},
		{LevelDirective, LevelDirective, "STUFE 2"},
		{LevelSpecific, LevelSpecific, "STUFE 3"},
		{0, LevelSocratic, "STUFE 1"},
		{7, LevelSocratic, "STUFE 1"},
	}

	for _, tt := range tests {
		mock := llm.NewMockProvider(llm.MockResponse{Content: hintJSON("h", "e")})
		svc := NewService(mock, DefaultConfig())

		h, err := svc.Hint(t.Context(), testHintRequest(tt.level))
		require.NoError(t, err)
		assert.Equal(t, tt.want, h.Level)
		assert.Contains(t, mock.Calls[0].Messages[0].Content, tt.stage)
	}
}

func TestService_HintDefaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: hintJSON("", " ")})
	svc := NewService(mock, DefaultConfig())

	h, err := svc.Hint(t.Context(), testHintRequest(LevelDirective))
	require.NoError(t, err)
	assert.Equal(t, "Denke über die Grundlagen nach.", h.Text)
	assert.Equal(t, "Du schaffst das!", h.Encouragement)
}

func TestService_HintPreviousHints(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: hintJSON("h", "e")})
	svc := NewService(mock, DefaultConfig())

	req := testHintRequest(LevelDirective)
	req.PreviousHints = []string{"Was gilt für f'(x)?"}
	_, err := svc.Hint(t.Context(), req)
	require.NoError(t, err)

	last, ok := mock.LastRequest()
	require.True(t, ok)
	content := last.Messages[0].Content
	assert.Contains(t, content, "Bisherige Hinweise:")
	assert.Contains(t, content, "- Was gilt für f'(x)?")
}

func TestService_HintEmptySubtask(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	req := testHintRequest(LevelSocratic)
	req.SubtaskText = "   "
	_, err := svc.Hint(t.Context(), req)
	assert.ErrorIs(t, err, ErrEmptySubtask)
	assert.Zero(t, mock.CallCount())
}

func TestService_HintProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Hint(t.Context(), testHintRequest(LevelSocratic))
	require.Error(t, err)
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl))
}

func TestService_HintSchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(`{"hint": "h"}`))
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Hint(t.Context(), testHintRequest(LevelSocratic))
	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func approachJSON(score int) json.RawMessage {
	return json.RawMessage(`{
		"isOnRightTrack": true,
		"overallAssessment": "Der Ansatz ist richtig.",
		"strengths": ["Ableitung korrekt gebildet"],
		"improvements": ["Prüfe die hinreichende Bedingung"],
		"specificIssue": "",
		"nextStep": "Setze die Nullstellen in f''(x) ein.",
		"encouragement": "Weiter so!",
		"confidenceScore": ` + strconv.Itoa(score) + `
	}`)
}

func testApproachRequest() ApproachRequest {
	return ApproachRequest{
		TaskText:    "Gegeben ist f(x) = x³ - 3x.",
		Topic:       "Kurvendiskussion",
		SubLabel:    "a",
		SubtaskText: "Bestimme die Extrempunkte von f.",
		StudentWork: "f'(x) = 3x² - 3 = 0, also x = ±1",
	}
}

func TestService_CheckApproach(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: approachJSON(4)})
	svc := NewService(mock, DefaultConfig())

	fb, err := svc.CheckApproach(t.Context(), testApproachRequest())
	require.NoError(t, err)

	assert.True(t, fb.OnRightTrack)
	assert.Equal(t, 4, fb.Confidence)
	assert.Equal(t, []string{"Ableitung korrekt gebildet"}, fb.Strengths)
	assert.Equal(t, "Setze die Nullstellen in f''(x) ein.", fb.NextStep)
	assert.Empty(t, fb.SpecificIssue)

	call := mock.Calls[0]
	assert.Equal(t, ApproachSchema, call.Schema)
	assert.Equal(t, approachSystemPrompt, call.System)
	assert.Contains(t, call.Messages[0].Content, "f'(x) = 3x² - 3 = 0")
}

func TestService_CheckApproachScoreOutOfRange(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: approachJSON(9)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.CheckApproach(t.Context(), testApproachRequest())
	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func TestService_CheckApproachEmptyInput(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig())

	req := testApproachRequest()
	req.StudentWork = ""
	_, err := svc.CheckApproach(t.Context(), req)
	assert.ErrorIs(t, err, ErrEmptyWork)

	req = testApproachRequest()
	req.SubtaskText = "\n"
	_, err = svc.CheckApproach(t.Context(), req)
	assert.ErrorIs(t, err, ErrEmptySubtask)
}

const decompositionJSON = `{
	"tasks": [
		{
			"number": "1",
			"topic": "Kubische Gleichungen",
			"difficulty": "mittel",
			"task": "Zeige, dass die Gleichung nur eine reelle Lösung besitzt.",
			"subtasks": [
				{
					"label": "a",
					"task": "x^3 - 27 = 0",
					"questions": [
						"Welche Zahl wird in x^3 - 27 = 0 als Kubikzahl verwendet?",
						"Wie bringst du die -27 auf die andere Seite?",
						"Welche Umkehrfunktion macht aus x^3 wieder x?"
					]
				},
				{
					"label": "b",
					"task": "Begründe mit f'(x) = 3x^2, warum es keine weitere Lösung gibt.",
					"questions": ["Was sagt f'(x) = 3x^2 ≥ 0 über die Monotonie von f?"]
				}
			]
		}
	]
}`

func TestService_Decompose(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(decompositionJSON))
	svc := NewService(mock, DefaultConfig())

	d, err := svc.Decompose(t.Context(), "1. Zeige, dass die Gleichung nur eine reelle Lösung besitzt. a) x^3 - 27 = 0 b) ...")
	require.NoError(t, err)

	require.Len(t, d.Tasks, 1)
	task := d.Tasks[0]
	assert.Equal(t, "1", task.Number)
	assert.Equal(t, DifficultyMedium, task.Difficulty)
	require.Len(t, task.Subtasks, 2)
	assert.Equal(t, "x^3 - 27 = 0", task.Subtasks[0].Text)
	assert.Len(t, task.Subtasks[0].Questions, 3)
	assert.Equal(t, 2, d.SubtaskCount())

	call := mock.Calls[0]
	assert.Equal(t, DecompositionSchema, call.Schema)
	assert.Equal(t, decomposeSystemPrompt, call.System)
	assert.Equal(t, 4096, call.MaxTokens)
	assert.Contains(t, call.Messages[0].Content, "STRUKTUR-FRAGE")
	assert.Contains(t, call.Messages[0].Content, "a) x^3 - 27 = 0")
}

func TestService_DecomposeFeedsHintRequest(t *testing.T) {
	svc := NewService(llm.NewMockProvider(llm.MockJSON(decompositionJSON)), DefaultConfig())

	d, err := svc.Decompose(t.Context(), "Aufgabe 1")
	require.NoError(t, err)

	task := d.Tasks[0]
	req := task.HintRequest(task.Subtasks[1], LevelDirective)
	assert.Equal(t, "1", req.TaskNumber)
	assert.Equal(t, "Kubische Gleichungen", req.Topic)
	assert.Equal(t, "b", req.SubLabel)
	assert.Equal(t, LevelDirective, req.Level)
}

func TestService_DecomposeRejects(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		reply llm.MockResponse
		check func(t *testing.T, err error)
	}{
		{
			name:  "blank text",
			text:  " \n\t",
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmptyTask) },
		},
		{
			name:  "no tasks",
			text:  "Aufgabe 1",
			reply: llm.MockJSON(`{"tasks": []}`),
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNoTasks) },
		},
		{
			name:  "unknown difficulty",
			text:  "Aufgabe 1",
			reply: llm.MockJSON(`{"tasks": [{"number": "1", "topic": "t", "difficulty": "schwer", "task": "x", "subtasks": []}]}`),
			check: func(t *testing.T, err error) {
				var invalid *llm.ErrInvalidResponse
				assert.True(t, errors.As(err, &invalid))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.reply)
			_, err := NewService(mock, DefaultConfig()).Decompose(t.Context(), tt.text)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
