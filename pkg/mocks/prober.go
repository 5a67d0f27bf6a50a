package mocks

import (
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// VideoProber is a mock implementation of ports.VideoProber.
type VideoProber struct {
	ProbeFunc func(path string) (*ports.VideoInfo, error)
}

func (m *VideoProber) Probe(path string) (*ports.VideoInfo, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return &ports.VideoInfo{Path: path}, nil
}

var _ ports.VideoProber = (*VideoProber)(nil)
