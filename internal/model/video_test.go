package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ProcessingStatus
		to      ProcessingStatus
		allowed bool
	}{
		{ProcessingNotProcessed, ProcessingQueued, true},
		{ProcessingNotProcessed, ProcessingComplete, false},
		{ProcessingQueued, ProcessingInProgress, true},
		{ProcessingQueued, ProcessingComplete, true},
		{ProcessingQueued, ProcessingFailed, true},
		{ProcessingInProgress, ProcessingComplete, true},
		{ProcessingInProgress, ProcessingFailed, true},
		{ProcessingInProgress, ProcessingQueued, false},
		// 终态不可再迁移
		{ProcessingComplete, ProcessingQueued, false},
		{ProcessingComplete, ProcessingFailed, false},
		{ProcessingFailed, ProcessingQueued, false},
		// 自迁移不允许
		{ProcessingQueued, ProcessingQueued, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
