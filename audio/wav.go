package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/skillsenselab/scribe/errors"
)

const pcmFormatCode = 1

// Info describes the format of a PCM WAV file.
type Info struct {
	// SampleRate is the number of frames per second.
	SampleRate int `json:"sample_rate"`
	// Channels is the number of interleaved channels.
	Channels int `json:"channels"`
	// BitsPerSample is the sample width in bits.
	BitsPerSample int `json:"bits_per_sample"`
	// Frames is the total number of frames in the data chunk.
	Frames int64 `json:"frames"`

	dataOffset int64
	dataSize   int64
}

// Duration returns the recording length in seconds.
func (i Info) Duration() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

// frameSize returns the byte width of one frame across all channels.
func (i Info) frameSize() int64 {
	return int64(i.Channels) * int64(i.BitsPerSample) / 8
}

// Reader reads slices out of a PCM WAV file.
type Reader struct {
	path string
	info Info
}

// Open probes path and returns a Reader for it. The file must be a PCM WAV;
// anything else yields an UNSUPPORTED_AUDIO error.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := probe(f)
	if err != nil {
		return nil, err
	}
	return &Reader{path: path, info: info}, nil
}

// Info returns the probed format description.
func (r *Reader) Info() Info { return r.info }

// Duration returns the recording length in seconds.
func (r *Reader) Duration() float64 { return r.info.Duration() }

// SliceWAV extracts the PCM between start and end seconds and returns it as
// a standalone WAV payload. Bounds are floored to whole frames; the end is
// clamped to the recording length.
func (r *Reader) SliceWAV(start, end float64) ([]byte, error) {
	if start < 0 || end <= start {
		return nil, errors.InvalidInput("slice", fmt.Sprintf("bad slice bounds [%v, %v)", start, end))
	}

	startFrame := int64(start * float64(r.info.SampleRate))
	endFrame := int64(end * float64(r.info.SampleRate))
	if endFrame > r.info.Frames {
		endFrame = r.info.Frames
	}
	if startFrame >= endFrame {
		return nil, errors.InvalidInput("slice", "slice lies past the end of the recording")
	}

	frameSize := r.info.frameSize()
	offset := r.info.dataOffset + startFrame*frameSize
	length := (endFrame - startFrame) * frameSize

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", r.path, err)
	}
	defer f.Close()

	pcm := make([]byte, length)
	if _, err := f.ReadAt(pcm, offset); err != nil {
		return nil, fmt.Errorf("audio: read slice: %w", err)
	}

	var buf bytes.Buffer
	writeHeader(&buf, r.info.SampleRate, r.info.Channels, r.info.BitsPerSample, len(pcm))
	buf.Write(pcm)
	return buf.Bytes(), nil
}

// probe walks the RIFF chunk list to find the fmt and data chunks.
func probe(f *os.File) (Info, error) {
	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return Info{}, errors.UnsupportedAudio("file too short for a WAV header")
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Info{}, errors.UnsupportedAudio("not a RIFF/WAVE file")
	}

	var info Info
	var haveFmt, haveData bool
	offset := int64(12)

	for !haveFmt || !haveData {
		var chunk [8]byte
		if _, err := f.ReadAt(chunk[:], offset); err != nil {
			return Info{}, errors.UnsupportedAudio("missing fmt or data chunk")
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			var fmtChunk [16]byte
			if _, err := f.ReadAt(fmtChunk[:], offset+8); err != nil {
				return Info{}, errors.UnsupportedAudio("truncated fmt chunk")
			}
			format := int(binary.LittleEndian.Uint16(fmtChunk[0:2]))
			if format != pcmFormatCode {
				return Info{}, errors.UnsupportedAudio(fmt.Sprintf("unsupported WAV format code %d (PCM only)", format))
			}
			info.Channels = int(binary.LittleEndian.Uint16(fmtChunk[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(fmtChunk[14:16]))
			haveFmt = true
		case "data":
			info.dataOffset = offset + 8
			info.dataSize = size
			haveData = true
		}

		// Chunks are word-aligned.
		offset += 8 + size
		if size%2 == 1 {
			offset++
		}
	}

	if info.SampleRate <= 0 || info.Channels <= 0 || info.BitsPerSample <= 0 {
		return Info{}, errors.UnsupportedAudio("invalid fmt chunk values")
	}
	info.Frames = info.dataSize / info.frameSize()
	return info, nil
}

// writeHeader writes a 44-byte PCM WAV header for the given data size.
func writeHeader(w io.Writer, sampleRate, channels, bitsPerSample, dataSize int) {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	w.Write([]byte("RIFF"))
	binary.Write(w, binary.LittleEndian, uint32(36+dataSize))
	w.Write([]byte("WAVE"))
	w.Write([]byte("fmt "))
	binary.Write(w, binary.LittleEndian, uint32(16))
	binary.Write(w, binary.LittleEndian, uint16(pcmFormatCode))
	binary.Write(w, binary.LittleEndian, uint16(channels))
	binary.Write(w, binary.LittleEndian, uint32(sampleRate))
	binary.Write(w, binary.LittleEndian, uint32(byteRate))
	binary.Write(w, binary.LittleEndian, uint16(blockAlign))
	binary.Write(w, binary.LittleEndian, uint16(bitsPerSample))
	w.Write([]byte("data"))
	binary.Write(w, binary.LittleEndian, uint32(dataSize))
}

// WriteWAV writes raw PCM as a complete WAV file body. It exists so tests and
// tools can synthesize fixtures with the same header layout Reader expects.
func WriteWAV(w io.Writer, sampleRate, channels, bitsPerSample int, pcm []byte) error {
	writeHeader(w, sampleRate, channels, bitsPerSample, len(pcm))
	_, err := w.Write(pcm)
	return err
}
