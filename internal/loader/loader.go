// ABOUTME: Decodes the sprite audio file into the shared playback asset
// ABOUTME: Supports WAV, MP3, FLAC, and Ogg Vorbis containers
package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
	"github.com/notesprite/notesprite-go/internal/render"
)

// LoadSprite opens and decodes the sprite audio file at path. The container
// is chosen by file extension, with a header sniff as fallback.
func LoadSprite(path string) (*render.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sprite: %w", err)
	}
	defer f.Close()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeSprite(f, format)
}

// DecodeSprite decodes sprite audio from r. An empty or unrecognized format
// string falls back to sniffing the container header.
func DecodeSprite(r io.ReadSeeker, format string) (*render.Asset, error) {
	switch format {
	case "wav", "wave":
		return decodeWAV(r)
	case "mp3":
		return decodeMP3(r)
	case "flac":
		return decodeFLAC(r)
	case "ogg", "oga":
		return decodeOgg(r)
	}

	sniffed, err := sniffFormat(r)
	if err != nil {
		return nil, err
	}
	log.Printf("DecodeSprite: format %q unrecognized, sniffed %q", format, sniffed)
	return DecodeSprite(r, sniffed)
}

// sniffFormat identifies the container from its magic bytes and rewinds r.
func sniffFormat(r io.ReadSeeker) (string, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return "", fmt.Errorf("failed to sniff sprite header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind sprite: %w", err)
	}

	switch {
	case string(magic[:]) == "RIFF":
		return "wav", nil
	case string(magic[:]) == "fLaC":
		return "flac", nil
	case string(magic[:]) == "OggS":
		return "ogg", nil
	case string(magic[:3]) == "ID3", magic[0] == 0xFF && magic[1]&0xE0 == 0xE0:
		return "mp3", nil
	}
	return "", ErrUnsupportedFormat
}

func decodeWAV(r io.ReadSeeker) (*render.Asset, error) {
	d := wav.NewDecoder(r)

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode failed: %w", err)
	}
	if len(buf.Data) == 0 {
		return nil, ErrEmptySprite
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(d.BitDepth)
	}
	scale := float32(int64(1) << (bitDepth - 1))

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}

	return render.NewAsset(samples, buf.Format.SampleRate, buf.Format.NumChannels), nil
}

func decodeMP3(r io.Reader) (*render.Asset, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode failed: %w", err)
	}

	// go-mp3 always yields 16-bit little-endian stereo.
	data, err := io.ReadAll(d)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode failed: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptySprite
	}

	samples := make([]float32, len(data)/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(data[2*i:]))) / 32768
	}

	return render.NewAsset(samples, d.SampleRate(), 2), nil
}

func decodeFLAC(r io.Reader) (*render.Asset, error) {
	stream, err := flac.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("flac decode failed: %w", err)
	}

	info := stream.Info
	scale := float32(int64(1) << (info.BitsPerSample - 1))

	var samples []float32
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac decode failed: %w", err)
		}

		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for _, sf := range frame.Subframes {
				samples = append(samples, float32(sf.Samples[i])/scale)
			}
		}
	}
	if len(samples) == 0 {
		return nil, ErrEmptySprite
	}

	return render.NewAsset(samples, int(info.SampleRate), int(info.NChannels)), nil
}

func decodeOgg(r io.Reader) (*render.Asset, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ogg decode failed: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptySprite
	}

	return render.NewAsset(data, format.SampleRate, format.Channels), nil
}
