//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package client

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/nada/env"
	"github.com/markkurossi/nada/program"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Cluster implements an in-process cluster that stores programs and
// values and runs computations for its clients. The cluster is safe
// for concurrent use.
type Cluster struct {
	ID     string
	config *env.Config
	log    *logrus.Logger
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	now    func() time.Time

	m        sync.Mutex
	closed   bool
	programs map[string]*storedProgram
	values   map[string]*storedValues
	clients  map[string]*Client
}

type storedProgram struct {
	ID      string
	Owner   string
	Program *program.Program
}

type storedValues struct {
	ID          string
	Owner       string
	Values      Values
	Permissions *Permissions
	Expires     time.Time
}

func (v *storedValues) expired(now time.Time) bool {
	return !v.Expires.IsZero() && !now.Before(v.Expires)
}

// NewCluster creates a new cluster. The maxConcurrent argument limits
// the number of concurrent computations; 0 means no limit.
func NewCluster(config *env.Config, maxConcurrent int) (*Cluster, error) {
	if config == nil {
		config = new(env.Config)
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cluster{
		config:   config,
		log:      config.GetLogger(),
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
		programs: make(map[string]*storedProgram),
		values:   make(map[string]*storedValues),
		clients:  make(map[string]*Client),
	}
	if maxConcurrent > 0 {
		c.group.SetLimit(maxConcurrent)
	}
	id, err := c.newID()
	if err != nil {
		cancel()
		return nil, err
	}
	c.ID = id
	c.log.WithField("cluster", c.ID).Debug("cluster created")

	return c, nil
}

// Close closes the cluster. It refuses new computations and waits for
// the in-flight computations to deliver their events. Clients must
// consume their events or close themselves for Close to return.
func (c *Cluster) Close() error {
	c.m.Lock()
	if c.closed {
		c.m.Unlock()
		return nil
	}
	c.closed = true
	c.m.Unlock()

	err := c.group.Wait()
	c.cancel()
	c.log.WithField("cluster", c.ID).Debug("cluster closed")
	return err
}

// newID creates a random version 4 UUID.
func (c *Cluster) newID() (string, error) {
	var buf [16]byte
	_, err := io.ReadFull(c.config.GetRandom(), buf[:])
	if err != nil {
		return "", errors.Wrap(err, "failed to create identifier")
	}
	buf[6] = (buf[6] & 0x0f) | 0x40
	buf[8] = (buf[8] & 0x3f) | 0x80

	return fmt.Sprintf("%x-%x-%x-%x-%x",
		buf[0:4], buf[4:6], buf[6:8], buf[8:10], buf[10:]), nil
}

func (c *Cluster) register(client *Client) error {
	c.m.Lock()
	defer c.m.Unlock()

	if c.closed {
		return ErrClosed
	}
	if _, ok := c.clients[client.PartyID]; ok {
		return errors.Newf("party %s already connected", client.PartyID)
	}
	c.clients[client.PartyID] = client
	return nil
}

func (c *Cluster) unregister(client *Client) {
	c.m.Lock()
	if c.clients[client.PartyID] == client {
		delete(c.clients, client.PartyID)
	}
	c.m.Unlock()
}

// program returns the stored program by its ID.
func (c *Cluster) program(id string) (*storedProgram, error) {
	c.m.Lock()
	defer c.m.Unlock()

	p, ok := c.programs[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "program %s", id)
	}
	return p, nil
}

// storedValues returns the stored values by the store ID. Expired
// values are removed from the cluster.
func (c *Cluster) storedValues(id string) (*storedValues, error) {
	c.m.Lock()
	defer c.m.Unlock()

	v, ok := c.values[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "values %s", id)
	}
	if v.expired(c.now()) {
		delete(c.values, id)
		c.log.WithField("store_id", id).Debug("values expired")
		return nil, errors.Wrapf(ErrExpired, "values %s", id)
	}
	return v, nil
}

// deliver delivers the computation event to the client. It returns
// false if the client or the cluster was closed before the event was
// delivered.
func (c *Cluster) deliver(client *Client, ev ComputeEvent) bool {
	select {
	case client.events <- ev:
		return true
	case <-client.done:
		return false
	case <-c.ctx.Done():
		return false
	}
}
