package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var (
	defaultWellnessActivities = []string{"Meditation", "Journaling", "Art Therapy", "Talking to Loved Ones", "Social Activities"}
	defaultMeTimeActivities   = []string{"Sports", "Music", "Gardening", "Dance", "Research"}
)

type Config struct {
	Env      string
	Build    string
	AppName  string
	Debug    bool
	TestMode bool
	LogLevel string

	// HealthyThreshold is the minimum number of screen-free minutes for a Healthy entry.
	HealthyThreshold float64
	RecentLimit      int

	ExportPath   string
	ExportFormat string

	WellnessActivities []string
	MeTimeActivities   []string

	RollbarToken string
}

// NewConfig loads the configuration for the environment named by $ENV (DEV by default).
// Values are looked up in the environment first, prefixed with the environment name (eg. DEV_HEALTHYTHRESHOLD),
// then in config/.env.<env> if it exists.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "MindBloom")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("healthyThreshold", 60.0)
	v.SetDefault("recentLimit", 5)
	v.SetDefault("exportPath", "Mental_Wellness_Logger.csv")
	v.SetDefault("exportFormat", "")
	v.SetDefault("rollbarToken", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:                env,
		Build:              v.GetString("build"),
		AppName:            v.GetString("appName"),
		Debug:              v.GetBool("debug"),
		TestMode:           v.GetBool("testMode"),
		LogLevel:           v.GetString("logLevel"),
		HealthyThreshold:   v.GetFloat64("healthyThreshold"),
		RecentLimit:        v.GetInt("recentLimit"),
		ExportPath:         v.GetString("exportPath"),
		ExportFormat:       v.GetString("exportFormat"),
		WellnessActivities: stringList(v, "wellnessActivities", defaultWellnessActivities),
		MeTimeActivities:   stringList(v, "meTimeActivities", defaultMeTimeActivities),
		RollbarToken:       v.GetString("rollbarToken"),
	}
	if conf.HealthyThreshold <= 0 {
		return nil, NewValidationError(
			errors.New("invalid configuration"),
			FieldError{Field: "healthyThreshold", Error: "must be greater than 0"},
		)
	}
	if conf.RecentLimit <= 0 {
		conf.RecentLimit = 5
	}
	return conf, nil
}

// stringList reads a list value that may come from the environment as a comma separated string.
// It has no viper default: typed defaults would make viper split env strings on whitespace,
// which breaks multi-word activities like "Art Therapy".
func stringList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return append([]string(nil), def...)
	}
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}
	var list []string
	for _, item := range strings.Split(raw, ",") {
		if item = CleanString(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
