package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "GRAFYTIMES_"

type Application struct {
	Host     string   `koanf:"host"`
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	Stats    Stats    `koanf:"stats"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Stats struct {
	// HistoryMonths is the number of months returned by the historical view when the caller does not ask for more.
	HistoryMonths int `koanf:"historymonths"`
	// MaxHistoryMonths is the longest historical window a caller may ask for.
	MaxHistoryMonths int `koanf:"maxhistorymonths"`
	// LoadConcurrency bounds how many months are read from the database at the same time.
	LoadConcurrency int `koanf:"loadconcurrency"`
}

func Defaults() Application {
	return Application{
		Host: "http://localhost:3000",
		Server: Server{
			Port: 8181,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "grafytimes",
			Pass:   "",
			Name:   "grafytimes",
			Schema: "grafytimes",
		},
		Stats: Stats{
			HistoryMonths:    4,
			MaxHistoryMonths: 24,
			LoadConcurrency:  4,
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
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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

	if app.Stats.HistoryMonths <= 0 {
		log.Warnf("stats.historymonths must be positive, got %d; using 4", app.Stats.HistoryMonths)
		app.Stats.HistoryMonths = 4
	}
	if app.Stats.MaxHistoryMonths <= 0 {
		log.Warnf("stats.maxhistorymonths must be positive, got %d; using 24", app.Stats.MaxHistoryMonths)
		app.Stats.MaxHistoryMonths = 24
	}
	if app.Stats.HistoryMonths > app.Stats.MaxHistoryMonths {
		log.Warnf("stats.historymonths %d exceeds stats.maxhistorymonths; using %d", app.Stats.HistoryMonths, app.Stats.MaxHistoryMonths)
		app.Stats.HistoryMonths = app.Stats.MaxHistoryMonths
	}
	if app.Stats.LoadConcurrency <= 0 {
		app.Stats.LoadConcurrency = 1
	}

	return app, nil
}
