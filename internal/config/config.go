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

const envPrefix = "MEETCAL_"

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Google   Google   `koanf:"google"`
	Database Database `koanf:"db"`
	Baseline Baseline `koanf:"baseline"`
	Sync     Sync     `koanf:"sync"`
	Ics      Ics      `koanf:"ics"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	Name     string `koanf:"name"`
	Schema   string `koanf:"schema"`
	MaxConns int32  `koanf:"maxconns"`
	MinConns int32  `koanf:"minconns"`
}

type Baseline struct {
	// Path of the YAML file holding the cohort schedules.
	Path string `koanf:"path"`
	// CohortAliases maps alternative cohort names (e.g. "Y3") to canonical keys; matched case-insensitively.
	CohortAliases map[string]string `koanf:"cohortaliases"`
}

type Sync struct {
	Enabled bool `koanf:"enabled"`
	// Schedule is a standard five-field cron expression.
	Schedule    string `koanf:"schedule"`
	HorizonDays int    `koanf:"horizondays"`
}

type Ics struct {
	TimeoutSeconds int `koanf:"timeoutseconds"`
}

func defaults() Application {
	return Application{
		Host: "http://localhost:8181",
		Port: 8181,
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "meetcal",
			Pass:     "",
			Name:     "meetcal",
			Schema:   "meetcal",
			MaxConns: 25,
			MinConns: 5,
		},
		Baseline: Baseline{
			Path: "./config/baseline.yaml",
			CohortAliases: map[string]string{
				"y1": "2027",
				"y2": "2026",
				"y3": "2025",
			},
		},
		Sync: Sync{
			Enabled:     true,
			Schedule:    "*/30 * * * *",
			HorizonDays: 90,
		},
		Ics: Ics{
			TimeoutSeconds: 15,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
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

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// MEETCAL_DB_HOST -> db.host
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

	return app, nil
}
