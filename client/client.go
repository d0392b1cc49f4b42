//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package client implements the client side of the program
// lifecycle: it stores programs and secret values in a cluster,
// grants permissions for computations, runs programs with party
// bindings, and receives the computation results.
package client

import (
	"context"
	"encoding/hex"
	"math/big"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/nada/program"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

const (
	numEvents = 32
)

// Client implements a cluster client. Each client is one party in
// the cluster.
type Client struct {
	UserID  string
	PartyID string
	cluster *Cluster
	events  chan ComputeEvent
	done    chan struct{}
	once    sync.Once
}

// New creates a new client for the cluster. The user and party IDs
// are derived from the seed so the same seed always identifies the
// same user.
func New(cluster *Cluster, seed string) (*Client, error) {
	user := blake2b.Sum256([]byte("user:" + seed))
	party := blake2b.Sum256([]byte("party:" + seed))

	client := &Client{
		UserID:  hex.EncodeToString(user[:20]),
		PartyID: hex.EncodeToString(party[:16]),
		cluster: cluster,
		events:  make(chan ComputeEvent, numEvents),
		done:    make(chan struct{}),
	}
	if err := cluster.register(client); err != nil {
		return nil, err
	}
	cluster.log.WithFields(logrus.Fields{
		"user":  client.UserID,
		"party": client.PartyID,
	}).Debug("client connected")

	return client, nil
}

// Close disconnects the client from the cluster. Pending computation
// events for the client are dropped.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		c.cluster.unregister(c)
	})
}

// ProgramID returns the ID under which the named program of this
// client's user is stored.
func (c *Client) ProgramID(name string) string {
	return c.UserID + "/" + name
}

// StoreProgram stores the program in the cluster and returns its
// program ID. Storing a program with an existing name replaces the
// earlier program.
func (c *Client) StoreProgram(ctx context.Context, name string,
	prog *program.Program) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if prog == nil {
		return "", errors.New("nil program")
	}
	if len(name) == 0 {
		return "", errors.New("empty program name")
	}
	id := c.ProgramID(name)

	c.cluster.m.Lock()
	defer c.cluster.m.Unlock()
	if c.cluster.closed {
		return "", ErrClosed
	}
	c.cluster.programs[id] = &storedProgram{
		ID:      id,
		Owner:   c.UserID,
		Program: prog,
	}
	c.cluster.log.WithField("program", id).Info("program stored")

	return id, nil
}

// StoreValues stores the values in the cluster and returns the store
// ID. The values expire after ttl; 0 means the values never expire.
func (c *Client) StoreValues(ctx context.Context, values Values,
	perms *Permissions, ttl time.Duration) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", errors.Wrap(ErrInput, "no values to store")
	}
	for name, v := range values {
		if v.Value == nil {
			return "", errors.Wrapf(ErrInput, "value %s not set", name)
		}
	}
	if perms == nil {
		perms = DefaultForUser(c.UserID)
	}
	id, err := c.cluster.newID()
	if err != nil {
		return "", err
	}
	stored := &storedValues{
		ID:          id,
		Owner:       c.UserID,
		Values:      values.clone(),
		Permissions: perms.clone(),
	}
	if ttl > 0 {
		stored.Expires = c.cluster.now().Add(ttl)
	}

	c.cluster.m.Lock()
	defer c.cluster.m.Unlock()
	if c.cluster.closed {
		return "", ErrClosed
	}
	c.cluster.values[id] = stored
	c.cluster.log.WithFields(logrus.Fields{
		"store_id": id,
		"values":   values.Names(),
	}).Info("values stored")

	return id, nil
}

// RetrieveValue retrieves the named value from the stored values.
func (c *Client) RetrieveValue(ctx context.Context, storeID, name string) (
	Value, error) {

	if err := ctx.Err(); err != nil {
		return Value{}, err
	}
	stored, err := c.cluster.storedValues(storeID)
	if err != nil {
		return Value{}, err
	}
	if !stored.Permissions.CanRetrieve(c.UserID) {
		return Value{}, errors.Wrapf(ErrPermission, "retrieve %s", storeID)
	}
	v, ok := stored.Values[name]
	if !ok {
		return Value{}, errors.Wrapf(ErrNotFound, "value %s in %s",
			name, storeID)
	}
	return Value{
		Type:  v.Type,
		Value: new(big.Int).Set(v.Value),
	}, nil
}

// DeleteValues deletes the stored values.
func (c *Client) DeleteValues(ctx context.Context, storeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored, err := c.cluster.storedValues(storeID)
	if err != nil {
		return err
	}
	if !stored.Permissions.CanDelete(c.UserID) {
		return errors.Wrapf(ErrPermission, "delete %s", storeID)
	}
	c.cluster.m.Lock()
	delete(c.cluster.values, storeID)
	c.cluster.m.Unlock()

	c.cluster.log.WithField("store_id", storeID).Info("values deleted")
	return nil
}

// Compute starts a computation of the bound program with the stored
// values and the compute time secrets. It returns the compute ID. The
// computation runs asynchronously and its result is delivered as a
// ComputeEvent to the caller and to all connected output parties.
func (c *Client) Compute(ctx context.Context, bindings *ProgramBindings,
	storeIDs []string, secrets Values) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.cluster.m.Lock()
	closed := c.cluster.closed
	c.cluster.m.Unlock()
	if closed {
		return "", ErrClosed
	}
	if bindings == nil {
		return "", errors.Wrap(ErrBinding, "no bindings")
	}
	stored, err := c.cluster.program(bindings.ProgramID)
	if err != nil {
		return "", err
	}
	prog := stored.Program
	if err := bindings.Check(prog); err != nil {
		return "", err
	}

	// Collect values.
	values := make(Values)
	for _, id := range storeIDs {
		sv, err := c.cluster.storedValues(id)
		if err != nil {
			return "", err
		}
		if !sv.Permissions.CanCompute(c.UserID, stored.ID) {
			return "", errors.Wrapf(ErrPermission, "compute %s with %s",
				stored.ID, id)
		}
		for name, v := range sv.Values {
			if _, ok := values[name]; ok {
				return "", errors.Wrapf(ErrInput, "value %s given twice",
					name)
			}
			values[name] = v
		}
	}
	for name, v := range secrets {
		if _, ok := values[name]; ok {
			return "", errors.Wrapf(ErrInput, "value %s given twice", name)
		}
		if v.Value == nil {
			return "", errors.Wrapf(ErrInput, "value %s not set", name)
		}
		values[name] = v
	}

	inputs, err := checkInputs(prog, values)
	if err != nil {
		return "", err
	}

	// Resolve event receivers.
	receivers := map[string]*Client{
		c.PartyID: c,
	}
	c.cluster.m.Lock()
	for _, partyID := range bindings.OutputParties {
		client, ok := c.cluster.clients[partyID]
		if ok {
			receivers[partyID] = client
		}
	}
	c.cluster.m.Unlock()

	computeID, err := c.cluster.newID()
	if err != nil {
		return "", err
	}
	log := c.cluster.log.WithFields(logrus.Fields{
		"program":    stored.ID,
		"compute_id": computeID,
	})

	ok := c.cluster.group.TryGo(func() error {
		results, err := prog.Eval(inputs)
		if err != nil {
			log.WithError(err).Warn("compute failed")
		} else {
			log.Info("compute finished")
		}
		for partyID, client := range receivers {
			var ev ComputeEvent
			if err != nil {
				ev = &ComputeFailedEvent{
					ID:  computeID,
					Err: err,
				}
			} else {
				ev = &ComputeFinishedEvent{
					ID:      computeID,
					Results: bindings.resultsFor(partyID, results),
				}
			}
			if !c.cluster.deliver(client, ev) {
				log.WithField("party", partyID).Debug("event dropped")
			}
		}
		return nil
	})
	if !ok {
		return "", errors.Wrapf(ErrBusy, "compute %s", stored.ID)
	}
	log.Info("compute started")

	return computeID, nil
}

// NextComputeEvent waits for the next computation event.
func (c *Client) NextComputeEvent(ctx context.Context) (ComputeEvent, error) {
	select {
	case ev := <-c.events:
		return ev, nil
	case <-c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// checkInputs verifies the values against the program input names
// and types, and returns the evaluator inputs. Value ranges are
// checked by the computation.
func checkInputs(prog *program.Program, values Values) (
	map[string]*big.Int, error) {

	inputs := make(map[string]*big.Int)
	for name, v := range values {
		in := prog.Input(name)
		if in == nil {
			return nil, errors.Wrapf(ErrInput, "unknown input %s", name)
		}
		if v.Type.Type != in.Type.Type || v.Type.Secret != in.Type.Secret {
			return nil, errors.Wrapf(ErrInput, "input %s: expected %s, got %s",
				name, in.Type, v.Type)
		}
		inputs[name] = v.Value
	}
	for _, in := range prog.Inputs {
		if _, ok := inputs[in.Name]; !ok {
			return nil, errors.Wrapf(ErrInput, "missing input %s", in.Name)
		}
	}
	return inputs, nil
}

// resultsFor returns the results of the outputs bound to the party.
func (b *ProgramBindings) resultsFor(partyID string,
	results program.Results) program.Results {

	var ret program.Results
	for _, r := range results {
		if r.Party != nil && b.OutputParties[r.Party.Name] == partyID {
			ret = append(ret, r)
		}
	}
	return ret
}
