package practice

import (
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/quiz"
	"github.com/saisha/letterly/internal/rewards"
)

// machineEventMsg delivers a scheduled machine transition after its
// delay. The machine discards it if the question changed meanwhile.
type machineEventMsg struct {
	Event quiz.Event
}

// answerRecordedMsg is sent once the progress pipeline has absorbed a
// resolved answer.
type answerRecordedMsg struct {
	Correct bool
	Result  progress.Result
	Err     error
}

// runFinishedMsg is sent when the last question has been dismissed and
// lesson completion has been recorded.
type runFinishedMsg struct {
	CompletionBadges []rewards.Award
	Err              error
}

// saveFailedMsg surfaces a background persistence failure as a
// transient notification.
type saveFailedMsg struct {
	Err error
}
