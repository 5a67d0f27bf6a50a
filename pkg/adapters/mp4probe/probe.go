// Package mp4probe inspects MP4 containers without decoding any frames.
package mp4probe

import (
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Prober implements ports.VideoProber for MP4 files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe parses the container at path and reports its video track.
func (p *Prober) Probe(path string) (*ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return nil, fmt.Errorf("decode mp4 %s: %w", path, err)
	}

	info, err := probeFile(mp4File)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	info.Path = path
	return info, nil
}

// probeFile extracts video track information from a parsed container.
// Works for both progressive and fragmented layouts.
func probeFile(file *mp4.File) (*ports.VideoInfo, error) {
	moov := file.Moov
	if moov == nil && file.Init != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return nil, fmt.Errorf("no moov box found")
	}

	trak := findVideoTrack(moov)
	if trak == nil {
		return nil, fmt.Errorf("no video track found")
	}

	info := &ports.VideoInfo{}

	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
		info.DurationSec = float64(mdhd.Duration) / float64(mdhd.Timescale)
	}

	info.Codec, info.Width, info.Height = sampleDescription(trak)
	if info.Width == 0 && trak.Tkhd != nil {
		// Track header dimensions are 16.16 fixed point.
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	if len(file.Segments) > 0 {
		info.FrameCount = fragmentedSampleCount(file, trak)
	} else if stbl := sampleTable(trak); stbl != nil && stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}

	if info.DurationSec > 0 {
		info.FPS = float64(info.FrameCount) / info.DurationSec
	}

	return info, nil
}

// findVideoTrack returns the first track with a "vide" handler.
func findVideoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

// sampleDescription reads codec and dimensions from the sample entry.
func sampleDescription(trak *mp4.TrakBox) (codec string, width, height int) {
	stbl := sampleTable(trak)
	if stbl == nil || stbl.Stsd == nil || len(stbl.Stsd.Children) == 0 {
		return "", 0, 0
	}

	entry := stbl.Stsd.Children[0]
	codec = entry.Type()
	if vse, ok := entry.(*mp4.VisualSampleEntryBox); ok {
		width = int(vse.Width)
		height = int(vse.Height)
	}
	return codec, width, height
}

func sampleTable(trak *mp4.TrakBox) *mp4.StblBox {
	if trak.Mdia == nil || trak.Mdia.Minf == nil {
		return nil
	}
	return trak.Mdia.Minf.Stbl
}

// fragmentedSampleCount sums the track's samples across all fragments.
func fragmentedSampleCount(file *mp4.File, trak *mp4.TrakBox) int {
	if trak.Tkhd == nil {
		return 0
	}
	trackID := trak.Tkhd.TrackID

	count := 0
	for _, seg := range file.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					count += len(trun.Samples)
				}
			}
		}
	}
	return count
}

// Ensure Prober implements ports.VideoProber
var _ ports.VideoProber = (*Prober)(nil)
