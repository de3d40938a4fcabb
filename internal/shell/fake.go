package shell

import (
	"context"
	"strings"
	"sync"
)

// Call is one invocation recorded by Recorder.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Recorder is a Runner that records calls and answers from Responses keyed
// by command line. It is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	Calls     []Call
	Responses map[string][]byte
	Errors    map[string]error
}

// Run implements Runner.
func (r *Recorder) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, call)
	if err, ok := r.Errors[call.String()]; ok {
		return nil, err
	}
	return r.Responses[call.String()], nil
}

// Commands returns the recorded command lines.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}
