package main

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v3"
)

type config struct {
	Addr  string `yaml:"addr"`
	Board struct {
		Owner    string `yaml:"owner"`
		Password string `yaml:"password"`
	} `yaml:"board"`
}

func loadConfig(path string) (*config, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %v", err)
	}
	cfg := &config{Addr: ":8090"}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %v", err)
	}
	return cfg, nil
}
