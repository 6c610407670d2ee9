package filter

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirplayer/internal/domain/track"
)

// DurationLimitConfig represents the configuration for DurationFilter.
// Zero means no limit.
type DurationLimitConfig struct {
	MinSeconds float64 `yaml:"min_seconds" mapstructure:"min_seconds" default:"0" validate:"gte=0"`
	MaxSeconds float64 `yaml:"max_seconds" mapstructure:"max_seconds" default:"0" validate:"gte=0"`
}

// DurationFilter rejects selections that have no playable length
// and, when configured, selections outside the allowed length range.
type DurationFilter struct {
	config *DurationLimitConfig
}

// NewDurationFilter creates a new duration filter with no length limits.
func NewDurationFilter() *DurationFilter {
	return &DurationFilter{}
}

func (f *DurationFilter) Name() string {
	return "duration_filter"
}

func (f *DurationFilter) Description() string {
	return "Rejects selected files with a zero duration or a duration outside the configured range"
}

func (f *DurationFilter) ReturnCodes() []string {
	return []string{CodeZeroDuration, CodeDurationLimitExceeded}
}

func (f *DurationFilter) ValidateConfig(settings map[string]any) error {
	var config DurationLimitConfig

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(&config); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.Wrap(err, "validation failed")
	}

	if config.MaxSeconds > 0 && config.MinSeconds > config.MaxSeconds {
		return errors.New("min_seconds cannot be greater than max_seconds")
	}
	f.config = &config
	zlog.Debug().Msgf("filter: duration filter config: %+v", config)
	return nil
}

// AppliesTo only matches user selections; directory siblings are never probed.
func (f *DurationFilter) AppliesTo(source track.Source) bool {
	return source == track.SourceSelection
}

func (f *DurationFilter) Check(ctx context.Context, c Candidate) Result {
	if c.Track.Duration <= 0 {
		return Reject(CodeZeroDuration)
	}

	if f.config == nil {
		return Accept()
	}

	seconds := c.Track.Duration.Seconds()
	if f.config.MinSeconds > 0 && seconds < f.config.MinSeconds {
		return Reject(CodeDurationLimitExceeded)
	}
	if f.config.MaxSeconds > 0 && seconds > f.config.MaxSeconds {
		return Reject(CodeDurationLimitExceeded)
	}

	return Accept()
}

func init() {
	Register("duration_filter", func() Filter {
		return NewDurationFilter()
	})
}
