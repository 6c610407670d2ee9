package playback

import "time"

// AudioSink plays at most one decoded stream at a time.
//
// onFinish passed to Load fires once when the stream reaches its end. It must not be
// called while the sink holds internal locks that Stop or Unload need, and it must not
// fire for a stream that has been unloaded.
type AudioSink interface {
	Load(path string, onFinish func()) error
	Play() error
	Stop() error
	Seek(offset time.Duration) error
	Position() time.Duration
	Playing() bool
	Unload() error
}

// MetadataProbe reads the duration of an audio file.
type MetadataProbe interface {
	Duration(path string) (time.Duration, error)
}

// DirectoryScanner lists the audio files next to a path, in directory order.
type DirectoryScanner interface {
	Siblings(path string) ([]string, error)
}

// MessageSurface shows a titled message with a dismiss action. It is never fatal.
type MessageSurface interface {
	Show(title, body string)
}
