//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package client

import (
	"fmt"

	"github.com/markkurossi/nada/program"
)

// ComputeEvent is delivered to a client when a computation
// terminates. It is either *ComputeFinishedEvent or
// *ComputeFailedEvent.
type ComputeEvent interface {
	ComputeID() string
	fmt.Stringer
}

// ComputeFinishedEvent reports a successful computation. Results
// contains the outputs bound to the receiving party.
type ComputeFinishedEvent struct {
	ID      string
	Results program.Results
}

// ComputeID implements ComputeEvent.ComputeID.
func (ev *ComputeFinishedEvent) ComputeID() string {
	return ev.ID
}

func (ev *ComputeFinishedEvent) String() string {
	return fmt.Sprintf("compute %s finished: %v", ev.ID, ev.Results)
}

// ComputeFailedEvent reports a failed computation.
type ComputeFailedEvent struct {
	ID  string
	Err error
}

// ComputeID implements ComputeEvent.ComputeID.
func (ev *ComputeFailedEvent) ComputeID() string {
	return ev.ID
}

func (ev *ComputeFailedEvent) String() string {
	return fmt.Sprintf("compute %s failed: %v", ev.ID, ev.Err)
}
