package config

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// DatabaseConfig contains the store location.
// URL accepts sqlite://path, a bare file path, or postgres://... .
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// StudyConfig holds defaults applied when recording learning activity.
type StudyConfig struct {
	// DefaultCourseWeeks is the planned length of a new subscription when
	// no conclusion date is given.
	DefaultCourseWeeks int `mapstructure:"default_course_weeks" validate:"required,gte=1,lte=520"`
}
