// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	errNoArguments  = errors.New("no message provided")
	errEmptyMessage = errors.New("the message cannot be empty")
	errInvalidField = errors.New("invalid field, expected KEY=VALUE")
	errInvalidLevel = errors.New("invalid level")
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errInvalidField), errors.Is(err, errEmptyMessage):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// parseFields converts KEY=VALUE arguments into key/value pairs ready to be logged.
func parseFields(args []string) ([]any, error) {
	fields := make([]any, 0, len(args)*2)
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidField, arg)
		}

		fields = append(fields, key, parseValue(value))
	}

	return fields, nil
}

// parseValue returns value as an int64, float64 or bool when it has that
// shape, and as the original string otherwise.
func parseValue(value string) any {
	if number, err := strconv.ParseInt(value, 10, 64); err == nil {
		return number
	}

	if number, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(number) && !math.IsInf(number, 0) {
		return number
	}

	switch value {
	case "true":
		return true
	case "false":
		return false
	}

	return value
}
