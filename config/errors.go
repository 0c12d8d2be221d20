package config

import "github.com/pkg/errors"

// NewValidationError wraps err with the path of the config field that failed validation.
func NewValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewFieldRequiredError is returned when a required field is missing.
func NewFieldRequiredError(path, field string) error {
	return NewValidationError(path, errors.Errorf("%q is required", field))
}

// NewUnknownPresetError is returned for a vehicle name with no preset.
func NewUnknownPresetError(name string) error {
	return errors.Errorf("unknown vehicle preset %q, expected one of %v", name, PresetNames())
}
