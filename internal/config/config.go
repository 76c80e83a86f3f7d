package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	Log      Log      `koanf:"log"`
	Calendar Calendar `koanf:"calendar"`
	Reports  Reports  `koanf:"reports"`
	Activity Activity `koanf:"activity"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// File enables a rotating log file next to stdout when set.
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"maxsizemb"`
	MaxBackups int    `koanf:"maxbackups"`
	MaxAgeDays int    `koanf:"maxagedays"`
}

type Calendar struct {
	// Region selects the public holiday rule set, e.g. "PL" or "DE".
	Region    string `koanf:"region"`
	CacheSize int    `koanf:"cachesize"`
}

type Reports struct {
	Workers int `koanf:"workers"`
}

type Activity struct {
	Enabled        bool    `koanf:"enabled"`
	BaseUrl        string  `koanf:"baseurl"`
	ClientId       string  `koanf:"clientid"`
	ClientSecret   string  `koanf:"clientsecret"`
	TokenUrl       string  `koanf:"tokenurl"`
	ToleranceHours float64 `koanf:"tolerancehours"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "timeplan",
			Pass:   "",
			Name:   "timeplan",
			Schema: "timeplan",
		},
		Log: Log{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Calendar: Calendar{
			Region:    "PL",
			CacheSize: 16,
		},
		Reports: Reports{
			Workers: 4,
		},
		Activity: Activity{
			Enabled:        false,
			ToleranceHours: 0.5,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "TIMEPLAN_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "TIMEPLAN_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
