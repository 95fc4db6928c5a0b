package game

import "fmt"

// ConfigurationError is a setup fault: the game cannot be played as configured.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// ContractViolationError is returned when a player answers with a pile that was
// not among the successors it was offered.
type ContractViolationError struct {
	Player   string
	Returned int
	Offered  []int
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("player %s returned pile %d which is not one of the offered successors %v", e.Player, e.Returned, e.Offered)
}
