package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"github.com/rtreach/evaltools/logging"
)

// Read reads a generator config from the given file. Environment variables in the file are
// expanded before decoding.
func Read(filePath string, logger logging.Logger) (*GeneratorConfig, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a generator config from the given reader and specifies
// where, if applicable, the file the reader originated from.
// Fields absent from the document keep the value of the named vehicle preset.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*GeneratorConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var header struct {
		Vehicle string `json:"vehicle"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, errors.Wrap(err, "failed to decode generator config from json")
	}
	if header.Vehicle == "" {
		header.Vehicle = DefaultVehicle
	}

	cfg, err := Preset(header.Vehicle)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode generator config from json")
	}
	cfg.Vehicle = header.Vehicle
	cfg.ConfigFilePath = originalPath

	if err := cfg.Validate("generator"); err != nil {
		return nil, err
	}
	logger.Debugw("loaded generator config", "path", originalPath, "vehicle", cfg.Vehicle, "n", cfg.N)
	return &cfg, nil
}
