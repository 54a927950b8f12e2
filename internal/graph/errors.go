package graph

import "fmt"

// UnknownTopicError is returned when an operation references a topic ID
// that is absent from the graph.
type UnknownTopicError struct {
	ID string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic: %s", e.ID)
}

// CycleError is returned when an edge insertion would violate the DAG
// invariant. The offending edge is not inserted.
type CycleError struct {
	Prerequisite string
	Dependent    string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("edge %s -> %s would create a cycle", e.Prerequisite, e.Dependent)
}
