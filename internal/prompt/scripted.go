package prompt

import "fmt"

// Scripted answers prompts from a map keyed by title. Unanswered prompts
// fail, so it doubles as the non-interactive prompter.
type Scripted struct {
	Answers map[string]string
	Asked   []string
}

func (s *Scripted) answer(title string) (string, bool) {
	s.Asked = append(s.Asked, title)
	v, ok := s.Answers[title]
	return v, ok
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(title string, _ bool) (bool, error) {
	v, ok := s.answer(title)
	if !ok {
		return false, fmt.Errorf("no answer for %q", title)
	}
	return v == "true", nil
}

// Select implements Prompter.
func (s *Scripted) Select(title string, options []string, _ string) (string, error) {
	v, ok := s.answer(title)
	if !ok {
		return "", fmt.Errorf("no answer for %q", title)
	}
	for _, o := range options {
		if o == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("%q is not one of %v", v, options)
}

// Input implements Prompter.
func (s *Scripted) Input(title, _ string, validate func(string) error) (string, error) {
	v, ok := s.answer(title)
	if !ok {
		return "", fmt.Errorf("no answer for %q", title)
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}
