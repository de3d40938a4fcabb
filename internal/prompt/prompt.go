// Package prompt asks the user for values that were not given as flags.
package prompt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/project"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks single questions.
type Prompter interface {
	Confirm(title string, def bool) (bool, error)
	Select(title string, options []string, def string) (string, error)
	Input(title, def string, validate func(string) error) (string, error)
}

// Huh prompts on the terminal.
type Huh struct {
	// Accessible switches huh to its screen-reader friendly mode.
	Accessible bool
}

func (h Huh) run(f huh.Field) error {
	err := huh.NewForm(huh.NewGroup(f)).WithAccessible(h.Accessible).WithShowHelp(false).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Confirm implements Prompter.
func (h Huh) Confirm(title string, def bool) (bool, error) {
	v := def
	err := h.run(huh.NewConfirm().Title(title).Value(&v))
	return v, err
}

// Select implements Prompter.
func (h Huh) Select(title string, options []string, def string) (string, error) {
	v := def
	err := h.run(huh.NewSelect[string]().Title(title).Options(huh.NewOptions(options...)...).Value(&v))
	return v, err
}

// Input implements Prompter.
func (h Huh) Input(title, def string, validate func(string) error) (string, error) {
	v := def
	field := huh.NewInput().Title(title).Value(&v)
	if validate != nil {
		field = field.Validate(validate)
	}
	err := h.run(field)
	return v, err
}

// Collect prompts for every missing input of opts until none remain.
// defaults overrides the declared default of an input by name.
func Collect(p Prompter, opts *project.Options, defaults map[string]string) error {
	for {
		missing, err := opts.Missing()
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			return nil
		}

		in := missing[0]
		def := in.Default
		if d, ok := defaults[in.Name]; ok {
			def = d
		}

		value, err := ask(p, in, def)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		if err := opts.Set(in.Name, value); err != nil {
			return err
		}
		if !opts.IsSet(in.Name) {
			return &oerrors.UnresolvedInputError{Field: in.Name}
		}
	}
}

func ask(p Prompter, in project.InputDef, def string) (string, error) {
	switch in.Kind {
	case project.KindFlag:
		b, err := p.Confirm(in.Prompt, def != "false")
		return strconv.FormatBool(b), err
	case project.KindEnum:
		if def == "" && len(in.Choices) > 0 {
			def = in.Choices[0]
		}
		return p.Select(in.Prompt, in.Choices, def)
	case project.KindInt:
		return p.Input(in.Prompt, def, validatePort)
	default:
		return p.Input(in.Prompt, def, nonEmpty)
	}
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("enter a port between 1 and 65535")
	}
	return nil
}

func nonEmpty(s string) error {
	if s == "" {
		return errors.New("a value is required")
	}
	return nil
}
