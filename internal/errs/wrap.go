package errs

import "fmt"

// Wrap chains ext behind base so both stay matchable with errors.Is.
func Wrap(base, ext error) error {
	if ext == nil {
		return base
	}

	return fmt.Errorf("%w: %w", base, ext)
}

func Wrapf(base error, str string) error {
	return fmt.Errorf("%w: %s", base, str)
}

// WrapTarget is Wrap with the catalog path or identity the failure relates to.
func WrapTarget(base error, target string, ext error) error {
	if ext == nil {
		return fmt.Errorf("%w '%s'", base, target)
	}

	return fmt.Errorf("%w '%s': %w", base, target, ext)
}
