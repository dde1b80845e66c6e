// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the optional stylecheck YAML configuration file.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/stylecheck/services/stylecheck/lint"
)

// Output formats accepted by the CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalid indicates a configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// configValidate is the validator instance for FileConfig.
// Initialized in init() with the classification validator.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("classification", validateClassification)
}

// validateClassification accepts the names lint.ParseClassification accepts.
func validateClassification(fl validator.FieldLevel) bool {
	_, err := lint.ParseClassification(fl.Field().String())
	return err == nil
}

// FileConfig is the on-disk configuration.
//
// An absent key keeps its default. An explicit empty checks list disables
// every rule group except syntax checking.
type FileConfig struct {
	// MaxLineLength is the long-line limit in characters.
	MaxLineLength int `yaml:"max_line_length" validate:"gt=0"`

	// Checks are the enabled classification names.
	Checks []string `yaml:"checks" validate:"dive,classification"`

	// Files are analyzed when no paths are given on the command line.
	Files []string `yaml:"files" validate:"dive,required"`

	// Workers is the number of files analyzed concurrently.
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`

	// MaxFileSize is the largest file, in bytes, that is analyzed.
	MaxFileSize int64 `yaml:"max_file_size" validate:"gt=0"`

	// Format is the report format, text or json.
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file is given.
func Default() FileConfig {
	return FileConfig{
		MaxLineLength: lint.DefaultMaxLineLength,
		Checks:        lint.AllClassifications().Names(),
		Files:         []string{},
		Workers:       lint.DefaultWorkers,
		MaxFileSize:   lint.DefaultMaxFileSize,
		Format:        FormatText,
	}
}

// Validate checks every field against its constraints.
//
// Outputs:
//
//	error - ErrInvalid wrapping the first failing field, or nil
func (c *FileConfig) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s fails %q (value %v)", ErrInvalid, fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// ToLintConfig converts the configuration to a lint.Config for files.
func (c *FileConfig) ToLintConfig(files []string) (lint.Config, error) {
	classes, err := lint.ParseClassificationSet(c.Checks)
	if err != nil {
		return lint.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return lint.Config{
		Files:           files,
		MaxLineLength:   c.MaxLineLength,
		Classifications: classes,
		MaxFileSize:     c.MaxFileSize,
		Workers:         c.Workers,
	}, nil
}
