package entities

import "fmt"

// LaunchError is the single fatal error class: the browser engine could not
// be started. Everything downstream of a successful launch degrades instead
// of failing.
type LaunchError struct {
	Channel string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch browser (%s): %v. If Playwright browsers could not be installed (e.g. disk full), try a system browser channel: --browser msedge or --browser chrome", e.Channel, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }
