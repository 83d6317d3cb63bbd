package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pion/opus"
	"github.com/pion/opus/pkg/oggreader"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
	"github.com/zeozeozeo/gomplerate"
)

const (
	targetSampleRate = 16000
	maxFrameSize     = 5760 // 120ms at 48kHz
)

// decodeToWAV decodes OGG/Opus or WAV sources in process and writes them
// as 16kHz mono 16-bit WAV. Other formats are Unsupported.
func decodeToWAV(srcPath, dstPath string, limit time.Duration) error {
	mt, err := mimetype.DetectFile(srcPath)
	if err != nil {
		return fmt.Errorf("detect format: %w", err)
	}

	var samples []int16
	var rate int
	switch {
	case mt.Is("audio/wav"):
		samples, rate, err = decodeWAV(srcPath)
	case isOgg(mt):
		samples, rate, err = decodeOggOpusSafe(srcPath)
	default:
		return transcript.NewFailure(transcript.Unsupported,
			"cannot decode %s without ffmpeg", mt.String())
	}
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return transcript.NewFailure(transcript.Empty, "no audio samples decoded")
	}

	samples = resample(samples, rate, targetSampleRate)
	if limit > 0 {
		if n := int(limit.Seconds()) * targetSampleRate; n < len(samples) {
			samples = samples[:n]
		}
	}
	return writeWAV(dstPath, samples, targetSampleRate)
}

// decodeWAV returns mono 16-bit samples and the source rate.
func decodeWAV(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, transcript.NewFailure(transcript.Unsupported, "invalid wav file format")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav: %w", err)
	}

	shift := int(dec.BitDepth) - 16
	interleaved := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch {
		case shift > 0:
			v >>= shift
		case dec.BitDepth == 8:
			v = (v - 128) << 8
		}
		interleaved[i] = int16(v)
	}
	return toMono(interleaved, int(dec.NumChans)), int(dec.SampleRate), nil
}

// decodeOggOpusSafe recovers from decoder panics on malformed streams.
func decodeOggOpusSafe(path string) (samples []int16, rate int, err error) {
	defer func() {
		if r := recover(); r != nil {
			samples, rate = nil, 0
			err = fmt.Errorf("opus decoder panic: %v", r)
		}
	}()
	return decodeOggOpus(path)
}

func decodeOggOpus(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open ogg: %w", err)
	}
	defer f.Close()

	ogg, header, err := oggreader.NewWith(f)
	if err != nil {
		return nil, 0, transcript.NewFailure(transcript.Unsupported, "unsupported ogg format: %v", err)
	}
	channels := int(header.Channels)
	if channels < 1 {
		channels = 1
	}

	decoder := opus.NewDecoder()
	out := make([]byte, maxFrameSize*channels*2)

	var all []int16
	for {
		segments, _, err := ogg.ParseNextPage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("parse ogg page: %w", err)
		}
		for _, seg := range segments {
			if len(seg) == 0 {
				continue
			}
			if _, _, err := decoder.Decode(seg, out); err != nil {
				continue
			}
			all = append(all, pcmSamples(out)...)
		}
	}
	return toMono(all, channels), int(header.SampleRate), nil
}

// pcmSamples reads little-endian int16 samples, dropping trailing silence
// left in the reused buffer.
func pcmSamples(buf []byte) []int16 {
	n := len(buf) / 2
	for n > 0 && buf[2*n-2] == 0 && buf[2*n-1] == 0 {
		n--
	}
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(uint16(buf[2*i]) | uint16(buf[2*i+1])<<8)
	}
	return samples
}

func toMono(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}
	mono := make([]int16, len(samples)/channels)
	for i := range mono {
		var sum int32
		for ch := 0; ch < channels; ch++ {
			sum += int32(samples[i*channels+ch])
		}
		mono[i] = int16(sum / int32(channels))
	}
	return mono
}

func resample(samples []int16, from, to int) []int16 {
	if from == to || from <= 0 {
		return samples
	}
	r, err := gomplerate.NewResampler(1, from, to)
	if err != nil {
		return samples
	}
	return r.ResampleInt16(samples)
}

func writeWAV(path string, samples []int16, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	if err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}
