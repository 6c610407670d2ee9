package filter

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/osa030/dirplayer/internal/domain/track"
)

// ExtensionConfig represents the configuration for ExtensionFilter.
type ExtensionConfig struct {
	Extensions []string `yaml:"extensions" mapstructure:"extensions" default:"[\".mp3\"]" validate:"min=1,dive,startswith=."`
}

// ExtensionFilter only lets audio files through, as the file chooser does.
type ExtensionFilter struct {
	extensions []string
}

// NewExtensionFilter creates an extension filter for the given extensions.
func NewExtensionFilter(extensions ...string) *ExtensionFilter {
	return &ExtensionFilter{extensions: extensions}
}

func (f *ExtensionFilter) Name() string {
	return "extension_filter"
}

func (f *ExtensionFilter) Description() string {
	return "Accepts only files with a configured audio extension"
}

func (f *ExtensionFilter) ReturnCodes() []string {
	return []string{CodeUnsupportedFile}
}

// ValidateConfig replaces the extension list with the configured one.
func (f *ExtensionFilter) ValidateConfig(settings map[string]any) error {
	var config ExtensionConfig

	if err := mapstructure.Decode(settings, &config); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return errors.Wrap(err, "validation failed")
	}

	f.extensions = config.Extensions
	return nil
}

func (f *ExtensionFilter) AppliesTo(source track.Source) bool {
	return source == track.SourceSelection || source == track.SourceDirectory
}

func (f *ExtensionFilter) Check(ctx context.Context, c Candidate) Result {
	if !c.Track.HasExtension(f.extensions) {
		return Reject(CodeUnsupportedFile)
	}
	return Accept()
}

// Extensions returns the accepted extensions.
func (f *ExtensionFilter) Extensions() []string {
	return f.extensions
}

func init() {
	Register("extension_filter", func() Filter {
		return NewExtensionFilter(".mp3")
	})
}
