// config
//
// Settings shared by animalProd and starter. Values come from the
// environment, optionally seeded from a .env file, and are used as flag defaults.
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/blgolden/animalProd/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Catalog    string // catalog file, .hjson or a sqlite database
	LogFile    string // log file used outside verbose mode
	OutputMode string // verbose, model or quiet
	Workers    int    // concurrent runs in a batch, 0 is one per CPU
}

// Load reads the environment, first loading envFile when given. A missing
// envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Catalog:    getenvWithDefault("ANIMALPROD_CATALOG", "economy.hjson"),
		LogFile:    getenvWithDefault("ANIMALPROD_LOG", "log.animalProd"),
		OutputMode: getenvWithDefault("ANIMALPROD_OUTPUT_MODE", logger.Verbose),
	}

	workers := getenvWithDefault("ANIMALPROD_WORKERS", "0")
	n, err := strconv.Atoi(workers)
	if err != nil {
		return nil, fmt.Errorf("ANIMALPROD_WORKERS %q: %w", workers, err)
	}
	cfg.Workers = n

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Catalog == "" {
		return errors.New("ANIMALPROD_CATALOG must be provided")
	}
	if !logger.ValidMode(c.OutputMode) {
		return fmt.Errorf("unknown output mode %q", c.OutputMode)
	}
	if c.OutputMode != logger.Verbose && c.LogFile == "" {
		return errors.New("ANIMALPROD_LOG must be provided outside verbose mode")
	}
	if c.Workers < 0 {
		return errors.New("ANIMALPROD_WORKERS must not be negative")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
