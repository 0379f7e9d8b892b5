package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var ErrUsage = errors.New("invalid arguments")

// Args holds what was given on the command line. Nil fields were not given
// and leave the configuration untouched.
type Args struct {
	ConfigPath     string
	ConfigExplicit bool

	LeftColor  *string
	BallColor  *string
	RightColor *string
	FPS        *int
	Borders    *bool
	Keymap     *string
	Display    *string
	Verbose    bool

	// Warnings describes options that were ignored.
	Warnings []string
}

func Usage(w io.Writer, command string) {
	fmt.Fprintf(w, "usage: %s\n"+
		"\t[-lc {color}]\n"+
		"\t[-bc {color}]\n"+
		"\t[-rc {color}]\n"+
		"\t[-fps {number}]\n"+
		"\t[-borders]\n"+
		"\t[+borders]\n"+
		"\t[-config {file.toml}]\n"+
		"\t[-keymap {file.yaml}]\n"+
		"\t[-display {name}]\n"+
		"\t[-v]\n", command)
}

// ParseArgs parses the arguments after the command name. The options follow
// xeyes conventions, so +borders turns borders off and cannot be handled by
// the flag package.
func ParseArgs(args []string) (*Args, error) {
	a := &Args{ConfigPath: DefaultPath}
	if p := os.Getenv("XWINPONG_CONFIG"); p != "" {
		a.ConfigPath = p
		a.ConfigExplicit = true
	}

	var errs []error
	for i := 0; i < len(args); i++ {
		opt := args[i]

		value := func() (string, bool) {
			if i == len(args)-1 {
				errs = append(errs, fmt.Errorf("missing argument for %s", opt))
				return "", false
			}
			i++
			return args[i], true
		}

		switch opt {
		case "-lc", "-bc", "-rc":
			v, ok := value()
			if !ok {
				continue
			}
			switch opt {
			case "-lc":
				a.LeftColor = &v
			case "-bc":
				a.BallColor = &v
			case "-rc":
				a.RightColor = &v
			}
		case "-fps":
			v, ok := value()
			if !ok {
				continue
			}
			fps, err := strconv.Atoi(v)
			if err != nil {
				a.Warnings = append(a.Warnings, fmt.Sprintf("failed to parse fps number %q; ignoring it", v))
				continue
			}
			if fps <= 1 {
				a.Warnings = append(a.Warnings, fmt.Sprintf("invalid fps value %d; ignoring it", fps))
				continue
			}
			a.FPS = &fps
		case "-borders":
			on := true
			a.Borders = &on
		case "+borders":
			off := false
			a.Borders = &off
		case "-config":
			v, ok := value()
			if !ok {
				continue
			}
			a.ConfigPath = v
			a.ConfigExplicit = true
		case "-keymap":
			v, ok := value()
			if !ok {
				continue
			}
			a.Keymap = &v
		case "-display":
			v, ok := value()
			if !ok {
				continue
			}
			a.Display = &v
		case "-v":
			a.Verbose = true
		default:
			errs = append(errs, fmt.Errorf("unknown option: %s", opt))
		}
	}

	if len(errs) > 0 {
		return a, fmt.Errorf("%w: %w", ErrUsage, errors.Join(errs...))
	}
	return a, nil
}

// Apply overrides cfg with the options given on the command line.
func (a *Args) Apply(cfg *Config) {
	if a.LeftColor != nil {
		cfg.Colors.Left = *a.LeftColor
	}
	if a.BallColor != nil {
		cfg.Colors.Ball = *a.BallColor
	}
	if a.RightColor != nil {
		cfg.Colors.Right = *a.RightColor
	}
	if a.FPS != nil {
		cfg.FPS = *a.FPS
	}
	if a.Borders != nil {
		cfg.Borders = *a.Borders
	}
	if a.Keymap != nil {
		cfg.Keymap = *a.Keymap
	}
	if a.Display != nil {
		cfg.Display = *a.Display
	}
	if a.Verbose {
		cfg.Logging.Level = "debug"
	}
}
