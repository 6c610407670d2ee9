// Package probe reads audio file metadata.
package probe

import (
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	zlog "github.com/rs/zerolog/log"
	"github.com/tcolgate/mp3"
)

// ErrUnsupportedFormat is returned for containers that are not MP3.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Info is what the probe knows about a file.
type Info struct {
	Path     string
	FileType string
	Format   string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// Prober reads durations by walking MP3 frames.
type Prober struct{}

// New creates a prober.
func New() *Prober {
	return &Prober{}
}

// Duration returns the playable length of the file.
// A file without a single decodable frame has a duration of zero.
func (p *Prober) Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	if err := checkContainer(f); err != nil {
		return 0, errors.Wrapf(err, "%s", path)
	}
	return frameDuration(f, path)
}

// Describe returns tag metadata plus the duration.
func (p *Prober) Describe(path string) (Info, error) {
	info := Info{Path: path}

	f, err := os.Open(path)
	if err != nil {
		return info, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	format, fileType, err := tag.Identify(f)
	if err == nil {
		info.Format = string(format)
		info.FileType = string(fileType)
	}
	if isForeign(fileType) {
		return info, errors.Wrapf(ErrUnsupportedFormat, "%s: %s", path, fileType)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, errors.Wrap(err, "failed to rewind")
	}
	if m, err := tag.ReadFrom(f); err == nil {
		info.Title = m.Title()
		info.Artist = m.Artist()
		info.Album = m.Album()
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, errors.Wrap(err, "failed to rewind")
	}
	info.Duration, err = frameDuration(f, path)
	return info, err
}

// checkContainer rejects files that tag recognizes as another container.
// Untagged MP3s are not identified and pass.
func checkContainer(f *os.File) error {
	_, fileType, err := tag.Identify(f)
	if err != nil {
		zlog.Debug().Err(err).Msgf("probe: could not identify %s", f.Name())
	}
	if isForeign(fileType) {
		return errors.Wrapf(ErrUnsupportedFormat, "%s", fileType)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to rewind")
	}
	return nil
}

func isForeign(fileType tag.FileType) bool {
	switch fileType {
	case tag.FLAC, tag.OGG, tag.M4A, tag.M4B, tag.M4P, tag.ALAC, tag.DSF:
		return true
	default:
		return false
	}
}

// frameDuration sums the durations of all MP3 frames.
func frameDuration(r io.Reader, path string) (time.Duration, error) {
	decoder := mp3.NewDecoder(r)

	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
		frames  int
	)
	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				zlog.Debug().Err(err).Msgf("probe: stopped after %d frames: %s", frames, path)
			}
			break
		}
		total += frame.Duration()
		frames++
	}

	zlog.Debug().Msgf("probe: %s: frames=%d duration=%s", path, frames, total)
	return total, nil
}
