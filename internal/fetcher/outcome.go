package fetcher

import "fmt"

type Kind int

const (
	KindFailure Kind = iota
	KindNotModified
	KindFresh
)

func (k Kind) String() string {
	switch k {
	case KindNotModified:
		return "not-modified"
	case KindFresh:
		return "fresh"
	default:
		return "failure"
	}
}

// Outcome is the result of one conditional fetch. Content and Validator are
// set only for KindFresh; Status and Err only for KindFailure.
type Outcome struct {
	Kind      Kind
	Content   string
	Validator string
	Status    int
	Err       error
}

func NotModified() Outcome { return Outcome{Kind: KindNotModified} }

func Fresh(content, validator string) Outcome {
	return Outcome{Kind: KindFresh, Content: content, Validator: validator}
}

func Failure(status int, err error) Outcome {
	return Outcome{Kind: KindFailure, Status: status, Err: err}
}

func (o Outcome) String() string {
	switch o.Kind {
	case KindFresh:
		return fmt.Sprintf("fresh (%d bytes, validator=%q)", len(o.Content), o.Validator)
	case KindNotModified:
		return "not-modified"
	default:
		if o.Status != 0 {
			return fmt.Sprintf("failure (status %d): %v", o.Status, o.Err)
		}
		return fmt.Sprintf("failure: %v", o.Err)
	}
}
