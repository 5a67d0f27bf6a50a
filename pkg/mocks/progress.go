package mocks

import (
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Progress is a mock implementation of ports.Progress.
type Progress struct {
	// Recorded calls for verification
	StartTotal  int
	StartLabel  string
	StartCalls  int
	Increments  int
	FinishCalls int
}

func (m *Progress) Start(total int, label string) {
	m.StartCalls++
	m.StartTotal = total
	m.StartLabel = label
}

func (m *Progress) Increment() {
	m.Increments++
}

func (m *Progress) Finish() {
	m.FinishCalls++
}

var _ ports.Progress = (*Progress)(nil)
