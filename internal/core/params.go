package core

import (
	"fmt"
	"strconv"
)

// Params are the thresholds requested on the command line
type Params struct {
	MaxTries     uint32
	RecoveryTime uint32
}

// ParseParams validates the two positional arguments <max-tries> and
// <recovery-time>. Both must be decimal integers in 1..2^32-1.
func ParseParams(args []string) (Params, error) {
	if len(args) != 2 {
		return Params{}, &Error{
			Kind: ErrArgument,
			Err:  fmt.Errorf("expected 2 arguments, got %d", len(args)),
		}
	}

	maxTries, err := parsePositive("max-tries", args[0])
	if err != nil {
		return Params{}, err
	}
	recoveryTime, err := parsePositive("recovery-time", args[1])
	if err != nil {
		return Params{}, err
	}

	return Params{MaxTries: maxTries, RecoveryTime: recoveryTime}, nil
}

func parsePositive(name, s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, &Error{
			Kind: ErrArgument,
			Err:  fmt.Errorf("incorrect value for %s '%s'", name, s),
		}
	}
	return uint32(n), nil
}
