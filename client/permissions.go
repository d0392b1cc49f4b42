//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package client

// Permissions define which users may access stored values.
type Permissions struct {
	Owner    string
	Retrieve map[string]bool
	Update   map[string]bool
	Delete   map[string]bool
	// Compute maps user IDs to the program IDs the user may compute
	// with the values.
	Compute map[string]map[string]bool
}

// DefaultForUser returns the default permissions for the user: the
// user may retrieve, update, and delete the values but has no compute
// permissions.
func DefaultForUser(userID string) *Permissions {
	return &Permissions{
		Owner:    userID,
		Retrieve: map[string]bool{userID: true},
		Update:   map[string]bool{userID: true},
		Delete:   map[string]bool{userID: true},
		Compute:  make(map[string]map[string]bool),
	}
}

// AddComputePermissions grants users the permission to compute the
// programs with the values. The argument maps user IDs to program
// IDs.
func (p *Permissions) AddComputePermissions(perms map[string][]string) {
	if p.Compute == nil {
		p.Compute = make(map[string]map[string]bool)
	}
	for user, programs := range perms {
		m, ok := p.Compute[user]
		if !ok {
			m = make(map[string]bool)
			p.Compute[user] = m
		}
		for _, id := range programs {
			m[id] = true
		}
	}
}

// CanCompute tests if the user may compute the program with the
// values.
func (p *Permissions) CanCompute(userID, programID string) bool {
	return p.Compute[userID][programID]
}

// CanRetrieve tests if the user may retrieve the values.
func (p *Permissions) CanRetrieve(userID string) bool {
	return p.Retrieve[userID]
}

// CanDelete tests if the user may delete the values.
func (p *Permissions) CanDelete(userID string) bool {
	return p.Delete[userID]
}

func (p *Permissions) clone() *Permissions {
	result := &Permissions{
		Owner:    p.Owner,
		Retrieve: make(map[string]bool),
		Update:   make(map[string]bool),
		Delete:   make(map[string]bool),
		Compute:  make(map[string]map[string]bool),
	}
	for k, v := range p.Retrieve {
		result.Retrieve[k] = v
	}
	for k, v := range p.Update {
		result.Update[k] = v
	}
	for k, v := range p.Delete {
		result.Delete[k] = v
	}
	for user, programs := range p.Compute {
		m := make(map[string]bool)
		for k, v := range programs {
			m[k] = v
		}
		result.Compute[user] = m
	}
	return result
}
