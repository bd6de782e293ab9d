package main

import (
	"io/ioutil"
	"os"
	"strconv"

	"github.com/foxcpp/timetable_ics/matcher"
	"github.com/foxcpp/timetable_ics/ttparser"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type SuffixCfg struct {
	Types     yaml.MapSlice `yaml:"types"`
	Presence  yaml.MapSlice `yaml:"presence"`
	Subgroups yaml.MapSlice `yaml:"subgroups"`
}

type Config struct {
	Input  string `yaml:"input"`
	Sheet  string `yaml:"sheet"`
	DBfile string `yaml:"dbfile"`
	Output string `yaml:"output"`
	CSV    string `yaml:"csv"`

	UTCOffset int `yaml:"utc_offset"`

	HeaderMarker   string          `yaml:"header_marker"`
	TeacherColumns int             `yaml:"teacher_columns"`
	Layout         ttparser.Layout `yaml:"layout"`

	Strategy   matcher.Strategy  `yaml:"strategy"`
	Threshold  int               `yaml:"threshold"`
	Exceptions map[string]string `yaml:"exceptions"`
	Suffixes   SuffixCfg         `yaml:"suffixes"`
}

func defaultConfig() Config {
	return Config{
		Input:          "out.xlsx",
		DBfile:         "schedule.db",
		Output:         "schedule.ics",
		UTCOffset:      4,
		HeaderMarker:   ttparser.DefaultMarker,
		TeacherColumns: 2,
		Layout:         ttparser.DefaultLayout(),
		Strategy:       matcher.Fuzzy,
		Threshold:      matcher.DefaultThreshold,
		Exceptions:     matcher.DefaultExceptions(),
	}
}

// LoadConfig reads yaml config on top of defaults. Missing file is not an
// error. Variables from .env and the environment override file values.
func LoadConfig(path string) (Config, error) {
	config := defaultConfig()

	confFile, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return config, errors.Wrap(err, "read config")
	default:
		if err := yaml.Unmarshal(confFile, &config); err != nil {
			return config, errors.Wrap(err, "decode config")
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return config, errors.Wrap(err, "load .env")
	}
	if err := config.applyEnv(); err != nil {
		return config, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TIMETABLE_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("TIMETABLE_DB"); v != "" {
		c.DBfile = v
	}
	if v := os.Getenv("TIMETABLE_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("TIMETABLE_UTC_OFFSET"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "TIMETABLE_UTC_OFFSET")
		}
		c.UTCOffset = offset
	}
	return nil
}

func (c *Config) suffixes() (ttparser.Suffixes, error) {
	return ttparser.SuffixesFromYAML(c.Suffixes.Types, c.Suffixes.Presence, c.Suffixes.Subgroups)
}
