package visual

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderKey(t *testing.T) {
	base := TaskContext{SessionID: "s1", TaskText: "Berechne das Integral", SubtaskText: "a) von 0 bis 2"}

	same := base
	same.TaskText = "  berechne das INTEGRAL "
	same.Progress = Progress{TimeSpent: 400}
	assert.Equal(t, RenderKey(base), RenderKey(same), "progress and case must not change the key")

	otherSession := base
	otherSession.SessionID = "s2"
	assert.NotEqual(t, RenderKey(base), RenderKey(otherSession))

	otherSubtask := base
	otherSubtask.SubtaskText = "b) von 2 bis 4"
	assert.NotEqual(t, RenderKey(base), RenderKey(otherSubtask))
}

func TestNewRenderRequest(t *testing.T) {
	task := TaskContext{TaskText: "Berechne das Integral von f(x)=x^2", Topic: "Integralrechnung"}
	d := NewSelector().Select(context.Background(), task)

	req := NewRenderRequest(task, d)
	assert.Equal(t, TypeAnimation, req.Type)
	assert.Equal(t, "/animate", req.Endpoint)
	assert.Equal(t, task.TaskText, req.TaskText)
	assert.Equal(t, "Integralrechnung", req.Topic)
	assert.Contains(t, req.Categories, CategoryIntegral)
}
