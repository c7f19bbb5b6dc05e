package tandem

import "fmt"

// Flag marks how a failed requirement should be handled upstream
type Flag int

const (
	// FlagNoisy the failure is routine and should be logged at info level
	FlagNoisy Flag = iota + 1
	// FlagRefund the failure should abort the flow and refund the caller
	FlagRefund
)

// Error a failed protocol requirement
type Error struct {
	Msg  string
	Flag Flag
}

func (e Error) Error() string {
	return fmt.Sprintf("tandem: require %s", e.Msg)
}

// Require returns an Error unless the condition holds
func Require(condition bool, msg string, flags ...Flag) error {
	if condition {
		return nil
	}

	err := Error{Msg: msg}
	for _, f := range flags {
		err.Flag = f
	}

	return err
}
