package hints

import "errors"

var (
	// ErrEmptySubtask is returned when no subtask text was supplied.
	ErrEmptySubtask = errors.New("keine Teilaufgabe übergeben")

	// ErrEmptyWork is returned by CheckApproach when the learner's work is blank.
	ErrEmptyWork = errors.New("keine Schülerarbeit übergeben")

	// ErrEmptyTask is returned by Decompose when the task text is blank.
	ErrEmptyTask = errors.New("kein Aufgabentext übergeben")

	// ErrNoTasks is returned by Decompose when the reply names no task.
	ErrNoTasks = errors.New("keine Aufgaben in der Antwort")
)
