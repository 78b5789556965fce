package hints

// Level is the escalation step of a progressive hint.
type Level int

const (
	LevelSocratic  Level = 1 // guiding question, no method named
	LevelDirective Level = 2 // names the next step or rule
	LevelSpecific  Level = 3 // concrete help short of the answer
)

// Normalize maps out-of-range levels to LevelSocratic.
func (l Level) Normalize() Level {
	if l < LevelSocratic || l > LevelSpecific {
		return LevelSocratic
	}
	return l
}

// HintRequest describes the subtask a learner is stuck on.
type HintRequest struct {
	TaskNumber    string
	TaskText      string
	Topic         string
	SubLabel      string
	SubtaskText   string
	Level         Level
	PreviousHints []string
}

// Hint is one generated hint.
type Hint struct {
	Level         Level
	Text          string
	Encouragement string
}

// ApproachRequest carries the learner's own work for review.
type ApproachRequest struct {
	TaskText    string
	Topic       string
	SubLabel    string
	SubtaskText string
	StudentWork string
}

// ApproachFeedback is the structured review of a learner's approach.
type ApproachFeedback struct {
	OnRightTrack      bool
	OverallAssessment string
	Strengths         []string
	Improvements      []string
	SpecificIssue     string
	NextStep          string
	Encouragement     string
	Confidence        int // 1 completely wrong .. 5 correct
}

// Difficulty is the rough difficulty of a decomposed task.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "leicht"
	DifficultyMedium Difficulty = "mittel"
	DifficultyHard   Difficulty = "anspruchsvoll"
)

// Subtask is one lettered part of a task with its Socratic questions.
type Subtask struct {
	Label     string   `json:"label"`
	Text      string   `json:"task"`
	Questions []string `json:"questions"`
}

// Task is one numbered task split out of a worksheet.
type Task struct {
	Number     string     `json:"number"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Text       string     `json:"task"`
	Subtasks   []Subtask  `json:"subtasks"`
}

// HintRequest builds the hint request for one of the task's subtasks.
func (t Task) HintRequest(sub Subtask, level Level) HintRequest {
	return HintRequest{
		TaskNumber:  t.Number,
		TaskText:    t.Text,
		Topic:       t.Topic,
		SubLabel:    sub.Label,
		SubtaskText: sub.Text,
		Level:       level,
	}
}

// Decomposition is a worksheet split into tasks and subtasks.
type Decomposition struct {
	Tasks []Task `json:"tasks"`
}

// SubtaskCount returns the number of subtasks across all tasks.
func (d Decomposition) SubtaskCount() int {
	n := 0
	for _, t := range d.Tasks {
		n += len(t.Subtasks)
	}
	return n
}
