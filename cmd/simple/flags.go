package main

import (
	"fmt"
	"strconv"
	"strings"
)

type runOptions struct {
	maxSteps    int
	maxStepsSet bool
	quiet       bool
}

// parseRunFlags pulls --max-steps and --quiet out of args. Everything after
// "--" is positional.
func parseRunFlags(args []string) (runOptions, []string, error) {
	var opts runOptions
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "--quiet" || arg == "-q":
			opts.quiet = true
		case arg == "--max-steps":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--max-steps expects a value")
			}
			limit, err := parseMaxSteps(args[i+1])
			if err != nil {
				return opts, nil, err
			}
			opts.maxSteps, opts.maxStepsSet = limit, true
			i++
		case strings.HasPrefix(arg, "--max-steps="):
			limit, err := parseMaxSteps(strings.TrimPrefix(arg, "--max-steps="))
			if err != nil {
				return opts, nil, err
			}
			opts.maxSteps, opts.maxStepsSet = limit, true
		case strings.HasPrefix(arg, "-") && arg != "-":
			return opts, nil, fmt.Errorf("unknown flag '%s'", arg)
		default:
			remaining = append(remaining, arg)
		}
	}
	return opts, remaining, nil
}

func parseMaxSteps(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("--max-steps expects a value")
	}
	limit, err := strconv.Atoi(trimmed)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("invalid --max-steps value '%s' (expected a non-negative integer)", value)
	}
	return limit, nil
}
