package visual

import (
	"strings"

	"github.com/google/uuid"
)

// RenderRequest is the body a front end posts to a visual's endpoint.
type RenderRequest struct {
	Type        VisualType `json:"type"`
	Endpoint    string     `json:"endpoint"`
	TaskText    string     `json:"task"`
	SubtaskText string     `json:"subtask,omitempty"`
	Topic       string     `json:"topic,omitempty"`
	Categories  []Category `json:"categories"`
	Reason      string     `json:"reason"`
	StuckLevel  int        `json:"stuckLevel"`
}

// NewRenderRequest describes how to render decision d for task.
func NewRenderRequest(task TaskContext, d Decision) RenderRequest {
	return RenderRequest{
		Type:        d.Type,
		Endpoint:    d.Endpoint,
		TaskText:    task.TaskText,
		SubtaskText: task.SubtaskText,
		Topic:       task.Topic,
		Categories:  d.Categories,
		Reason:      d.Reason,
		StuckLevel:  d.StuckLevel,
	}
}

var renderNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("coach:rendered-visual"))

// RenderKey identifies the rendered visual of one subtask in one session.
// Surrounding whitespace and letter case do not change the key.
func RenderKey(task TaskContext) string {
	name := strings.Join([]string{
		task.SessionID,
		strings.ToLower(strings.TrimSpace(task.TaskText)),
		strings.ToLower(strings.TrimSpace(task.SubtaskText)),
	}, "\x00")
	return uuid.NewSHA1(renderNamespace, []byte(name)).String()
}
