package assistant

import "fmt"

// Kind classifies pipeline failures. The HTTP layer flattens all of them into
// a uniform error response; the kinds exist so callers and tests can tell a
// bad credential from a flaky upstream.
type Kind string

const (
	KindAuth     Kind = "auth"
	KindUpstream Kind = "upstream"
	KindParse    Kind = "parse"
)

type PipelineError struct {
	Kind Kind
	Err  error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

func authErr(err error) error     { return &PipelineError{Kind: KindAuth, Err: err} }
func upstreamErr(err error) error { return &PipelineError{Kind: KindUpstream, Err: err} }
