// ABOUTME: PCM audio plumbing for the live advisor
// ABOUTME: Resampling, frame codecs, and a monotonic playback queue
package advisor

import (
	"encoding/binary"
	"time"
)

const (
	// InputSampleRate is what the microphone capture is resampled to
	// before upload.
	InputSampleRate = 16000
	// OutputSampleRate is the rate of audio frames received from the model.
	OutputSampleRate = 24000
)

// Sink receives scheduled audio frames. offset is relative to the start
// of the session.
type Sink interface {
	ScheduleAt(frame []int16, offset time.Duration)
}

// PlaybackQueue schedules received frames back-to-back. The playback
// cursor only moves forward: frame N+1 always starts at or after the end
// of frame N, so frames never overlap even when they arrive in bursts.
type PlaybackQueue struct {
	sink       Sink
	sampleRate int
	now        func() time.Time
	started    time.Time
	cursor     time.Duration
}

// NewPlaybackQueue creates a queue that schedules into sink at sampleRate.
func NewPlaybackQueue(sink Sink, sampleRate int) *PlaybackQueue {
	return newPlaybackQueue(sink, sampleRate, time.Now)
}

func newPlaybackQueue(sink Sink, sampleRate int, now func() time.Time) *PlaybackQueue {
	return &PlaybackQueue{
		sink:       sink,
		sampleRate: sampleRate,
		now:        now,
		started:    now(),
	}
}

// Enqueue schedules a frame for playback. Returns the offset at which the
// frame will start.
func (q *PlaybackQueue) Enqueue(frame []int16) time.Duration {
	if len(frame) == 0 {
		return q.cursor
	}

	elapsed := q.now().Sub(q.started)
	start := q.cursor
	if elapsed > start {
		// Playback fell behind real time (gap in the stream); resume now
		// rather than in the past.
		start = elapsed
	}

	length := time.Duration(len(frame)) * time.Second / time.Duration(q.sampleRate)
	q.sink.ScheduleAt(frame, start)
	q.cursor = start + length
	return start
}

// Cursor returns the end offset of the last scheduled frame.
func (q *PlaybackQueue) Cursor() time.Duration {
	return q.cursor
}

// Resample converts PCM16 between sample rates with linear interpolation.
// Good enough for voice; the model output is speech, not music.
func Resample(src []int16, srcRate, dstRate int) []int16 {
	if srcRate == dstRate || len(src) == 0 {
		out := make([]int16, len(src))
		copy(out, src)
		return out
	}

	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(float64(len(src)) / ratio)
	if outLen == 0 {
		return nil
	}

	out := make([]int16, outLen)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		frac := pos - float64(idx)

		if idx+1 < len(src) {
			a := float64(src[idx])
			b := float64(src[idx+1])
			out[i] = int16(a + (b-a)*frac)
		} else {
			out[i] = src[len(src)-1]
		}
	}
	return out
}

// DecodePCM16 converts little-endian bytes to samples.
func DecodePCM16(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}

// EncodePCM16 converts samples to little-endian bytes.
func EncodePCM16(samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return data
}
