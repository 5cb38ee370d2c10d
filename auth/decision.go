package auth

import "fmt"

// Outcome is the result class of an authorization check
type Outcome int

const (
	Allow Outcome = iota
	Deny
	Error
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// User-facing deny reasons
const (
	ReasonGuildOnly    = "this command must be used in a server"
	ReasonNotPermitted = "you are not permitted to use this bot here"
	ReasonMissingRole  = "you lack the required role"
)

// Decision is the verdict of the authorization engine.
// Reason is set for Deny, Err for Error. Silent denies must not produce a reply.
type Decision struct {
	Outcome Outcome
	Reason  string
	Silent  bool
	Err     error
}

func allowed() Decision {
	return Decision{Outcome: Allow}
}

func denied(reason string) Decision {
	return Decision{Outcome: Deny, Reason: reason}
}

func deniedSilently() Decision {
	return Decision{Outcome: Deny, Silent: true}
}

func failed(err error) Decision {
	return Decision{Outcome: Error, Err: err}
}
