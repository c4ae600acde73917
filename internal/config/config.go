// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the CLI's optional alexdb.toml: process-level
// settings that sit above a single Database, mirroring the teacher's
// plain-struct Config idiom (engine.go's Config) but file-backed via
// github.com/BurntSushi/toml.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds process-wide CLI settings. Zero value is a usable default:
// no history file, info-level logging.
type Config struct {
	// LogLevel names a logrus level ("debug", "info", "warn", "error").
	// Empty means "info".
	LogLevel string

	// HistoryFile, if set, is where the CLI appends every statement it
	// executes, one per line, in the order run.
	HistoryFile string
}

// Load decodes path as TOML into a Config. A missing file is not an
// error: it returns the zero Config, matching the teacher's pattern of
// optional configuration never being mandatory.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
