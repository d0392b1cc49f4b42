//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package client

import (
	"context"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/nada"
	"github.com/markkurossi/nada/env"
	"github.com/markkurossi/nada/program"
	"github.com/markkurossi/nada/programs/maxadd"
	"github.com/markkurossi/nada/utils"
	"github.com/sirupsen/logrus"
)

func testCluster(t *testing.T, maxConcurrent int) *Cluster {
	prg, err := env.NewPRG([]byte(t.Name()))
	if err != nil {
		t.Fatalf("NewPRG failed: %s", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	cluster, err := NewCluster(&env.Config{
		Rand: prg,
		Log:  log,
	}, maxConcurrent)
	if err != nil {
		t.Fatalf("NewCluster failed: %s", err)
	}
	t.Cleanup(func() {
		cluster.Close()
	})
	return cluster
}

func testClient(t *testing.T, cluster *Cluster, seed string) *Client {
	client, err := New(cluster, seed)
	if err != nil {
		t.Fatalf("New failed: %s", err)
	}
	t.Cleanup(client.Close)
	return client
}

func testProgram(t *testing.T, main program.MainFunc) *program.Program {
	params := utils.NewParams()
	params.DiagOut = io.Discard
	prog, err := program.New("test", main(), params)
	if err != nil {
		t.Fatalf("program.New failed: %s", err)
	}
	return prog
}

// setup stores the maxadd program and returns its bindings for the
// client's party.
func setup(t *testing.T, client *Client) *ProgramBindings {
	ctx := context.Background()
	id, err := client.StoreProgram(ctx, maxadd.Name,
		testProgram(t, maxadd.Main))
	if err != nil {
		t.Fatalf("StoreProgram failed: %s", err)
	}
	bindings := NewProgramBindings(id)
	bindings.AddInputParty("Party1", client.PartyID)
	bindings.AddOutputParty("Party1", client.PartyID)
	return bindings
}

func nextEvent(t *testing.T, client *Client) ComputeEvent {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ev, err := client.NextComputeEvent(ctx)
	if err != nil {
		t.Fatalf("NextComputeEvent failed: %s", err)
	}
	return ev
}

func TestIDs(t *testing.T) {
	cluster := testCluster(t, 0)
	c1 := testClient(t, cluster, "seed-1")
	c2 := testClient(t, cluster, "seed-2")

	if c1.UserID == c2.UserID || c1.PartyID == c2.PartyID {
		t.Errorf("different seeds gave same IDs")
	}
	if len(c1.UserID) != 40 || len(c1.PartyID) != 32 {
		t.Errorf("unexpected ID lengths: %s, %s", c1.UserID, c1.PartyID)
	}
	_, err := New(cluster, "seed-1")
	if err == nil {
		t.Errorf("duplicate party connected")
	}
	c1.Close()
	c3 := testClient(t, cluster, "seed-1")
	if c3.UserID != c1.UserID || c3.PartyID != c1.PartyID {
		t.Errorf("same seed gave different IDs")
	}
	if c3.ProgramID("main") != c3.UserID+"/main" {
		t.Errorf("unexpected program ID %s", c3.ProgramID("main"))
	}
}

func TestCompute(t *testing.T) {
	ctx := context.Background()
	cluster := testCluster(t, 0)
	client := testClient(t, cluster, "compute")
	bindings := setup(t, client)

	perms := DefaultForUser(client.UserID)
	perms.AddComputePermissions(map[string][]string{
		client.UserID: {bindings.ProgramID},
	})
	storeID, err := client.StoreValues(ctx, Values{
		"my_int1": NewSecretInteger(500),
		"my_int2": NewSecretInteger(300),
	}, perms, 0)
	if err != nil {
		t.Fatalf("StoreValues failed: %s", err)
	}

	computeID, err := client.Compute(ctx, bindings, []string{storeID}, Values{
		"my_int3": NewSecretInteger(10),
	})
	if err != nil {
		t.Fatalf("Compute failed: %s", err)
	}

	ev := nextEvent(t, client)
	if ev.ComputeID() != computeID {
		t.Errorf("event for %s, expected %s", ev.ComputeID(), computeID)
	}
	finished, ok := ev.(*ComputeFinishedEvent)
	if !ok {
		t.Fatalf("unexpected event: %v", ev)
	}
	r, ok := finished.Results.Get("my_output")
	if !ok {
		t.Fatalf("my_output not in results: %v", finished.Results)
	}
	if r.Value.Int64() != 800 {
		t.Errorf("my_output=%v, expected 800", r.Value)
	}
}

func TestComputeTimeSecrets(t *testing.T) {
	tests := []struct {
		a, b, c int64
		out     int64
	}{
		{5, 7, 7, 12},
		{-3, -10, 2, -1},
		{0, 0, 0, 0},
		{1, 9, 4, 10},
	}
	ctx := context.Background()
	cluster := testCluster(t, 2)
	client := testClient(t, cluster, "secrets")
	bindings := setup(t, client)

	for idx, test := range tests {
		_, err := client.Compute(ctx, bindings, nil, Values{
			"my_int1": NewSecretInteger(test.a),
			"my_int2": NewSecretInteger(test.b),
			"my_int3": NewSecretInteger(test.c),
		})
		if err != nil {
			t.Fatalf("test %d: Compute failed: %s", idx, err)
		}
		ev := nextEvent(t, client)
		finished, ok := ev.(*ComputeFinishedEvent)
		if !ok {
			t.Fatalf("test %d: unexpected event: %v", idx, ev)
		}
		r, _ := finished.Results.Get("my_output")
		if r.Value == nil || r.Value.Int64() != test.out {
			t.Errorf("test %d: got %v, expected %d", idx, r.Value, test.out)
		}
	}
}

func TestPermissions(t *testing.T) {
	ctx := context.Background()
	cluster := testCluster(t, 0)
	owner := testClient(t, cluster, "owner")
	other := testClient(t, cluster, "other")
	bindings := setup(t, owner)

	storeID, err := owner.StoreValues(ctx, Values{
		"my_int1": NewSecretInteger(1),
		"my_int2": NewSecretInteger(2),
		"my_int3": NewSecretInteger(3),
	}, DefaultForUser(owner.UserID), 0)
	if err != nil {
		t.Fatalf("StoreValues failed: %s", err)
	}

	// No compute permission by default.
	_, err = owner.Compute(ctx, bindings, []string{storeID}, nil)
	if !errors.Is(err, ErrPermission) {
		t.Errorf("Compute without permission: %v", err)
	}
	_, err = other.RetrieveValue(ctx, storeID, "my_int1")
	if !errors.Is(err, ErrPermission) {
		t.Errorf("RetrieveValue by other: %v", err)
	}
	err = other.DeleteValues(ctx, storeID)
	if !errors.Is(err, ErrPermission) {
		t.Errorf("DeleteValues by other: %v", err)
	}

	v, err := owner.RetrieveValue(ctx, storeID, "my_int2")
	if err != nil {
		t.Fatalf("RetrieveValue failed: %s", err)
	}
	if v.Value.Int64() != 2 {
		t.Errorf("RetrieveValue: got %v", v)
	}
	_, err = owner.RetrieveValue(ctx, storeID, "my_int4")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RetrieveValue unknown: %v", err)
	}

	err = owner.DeleteValues(ctx, storeID)
	if err != nil {
		t.Fatalf("DeleteValues failed: %s", err)
	}
	_, err = owner.RetrieveValue(ctx, storeID, "my_int1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RetrieveValue after delete: %v", err)
	}
}

func TestPermissionsClone(t *testing.T) {
	perms := DefaultForUser("u1")
	perms.AddComputePermissions(map[string][]string{
		"u2": {"u1/main"},
	})
	if !perms.CanCompute("u2", "u1/main") {
		t.Errorf("compute permission not granted")
	}
	if perms.CanCompute("u1", "u1/main") || perms.CanCompute("u2", "u1/x") {
		t.Errorf("unexpected compute permission")
	}
	c := perms.clone()
	perms.Compute["u2"]["u1/x"] = true
	if c.CanCompute("u2", "u1/x") {
		t.Errorf("clone shares compute permissions")
	}
}

func TestExpired(t *testing.T) {
	ctx := context.Background()
	cluster := testCluster(t, 0)
	client := testClient(t, cluster, "expired")
	bindings := setup(t, client)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cluster.now = func() time.Time {
		return now
	}

	perms := DefaultForUser(client.UserID)
	perms.AddComputePermissions(map[string][]string{
		client.UserID: {bindings.ProgramID},
	})
	storeID, err := client.StoreValues(ctx, Values{
		"my_int1": NewSecretInteger(1),
	}, perms, time.Minute)
	if err != nil {
		t.Fatalf("StoreValues failed: %s", err)
	}
	_, err = client.RetrieveValue(ctx, storeID, "my_int1")
	if err != nil {
		t.Fatalf("RetrieveValue failed: %s", err)
	}

	now = now.Add(time.Minute)

	_, err = client.Compute(ctx, bindings, []string{storeID}, Values{
		"my_int2": NewSecretInteger(2),
		"my_int3": NewSecretInteger(3),
	})
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Compute with expired values: %v", err)
	}
	_, err = client.RetrieveValue(ctx, storeID, "my_int1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expired values not removed: %v", err)
	}
}

func TestBindings(t *testing.T) {
	ctx := context.Background()
	cluster := testCluster(t, 0)
	client := testClient(t, cluster, "bindings")
	bindings := setup(t, client)

	secrets := Values{
		"my_int1": NewSecretInteger(1),
		"my_int2": NewSecretInteger(2),
		"my_int3": NewSecretInteger(3),
	}

	b := NewProgramBindings(bindings.ProgramID)
	b.AddOutputParty("Party1", client.PartyID)
	_, err := client.Compute(ctx, b, nil, secrets)
	if !errors.Is(err, ErrBinding) {
		t.Errorf("missing input party: %v", err)
	}

	b = NewProgramBindings(bindings.ProgramID)
	b.AddInputParty("Party1", client.PartyID)
	_, err = client.Compute(ctx, b, nil, secrets)
	if !errors.Is(err, ErrBinding) {
		t.Errorf("missing output party: %v", err)
	}

	bindings.AddInputParty("Party2", client.PartyID)
	_, err = client.Compute(ctx, bindings, nil, secrets)
	if !errors.Is(err, ErrBinding) {
		t.Errorf("unknown party: %v", err)
	}

	b = NewProgramBindings(client.ProgramID("unknown"))
	_, err = client.Compute(ctx, b, nil, secrets)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown program: %v", err)
	}
}

func TestInputs(t *testing.T) {
	ctx := context.Background()
	cluster := testCluster(t, 0)
	client := testClient(t, cluster, "inputs")
	bindings := setup(t, client)

	tests := []Values{
		{
			"my_int1": NewSecretInteger(1),
			"my_int2": NewSecretInteger(2),
		},
		{
			"my_int1": NewSecretInteger(1),
			"my_int2": NewSecretInteger(2),
			"my_int3": NewSecretInteger(3),
			"my_int4": NewSecretInteger(4),
		},
		{
			"my_int1": NewSecretInteger(1),
			"my_int2": NewSecretInteger(2),
			"my_int3": NewPublicInteger(3),
		},
		{
			"my_int1": NewSecretInteger(1),
			"my_int2": NewSecretInteger(2),
			"my_int3": Value{},
		},
	}
	for idx, test := range tests {
		_, err := client.Compute(ctx, bindings, nil, test)
		if !errors.Is(err, ErrInput) {
			t.Errorf("test %d: unexpected error: %v", idx, err)
		}
	}
}

func TestComputeFailed(t *testing.T) {
	ctx := context.Background()
	cluster := testCluster(t, 0)
	client := testClient(t, cluster, "failed")
	bindings := setup(t, client)

	computeID, err := client.Compute(ctx, bindings, nil, Values{
		"my_int1": NewSecretInteger(1),
		"my_int2": NewSecretInteger(2),
		"my_int3": {
			Type:  NewSecretInteger(0).Type,
			Value: new(big.Int).Lsh(big.NewInt(1), 70),
		},
	})
	if err != nil {
		t.Fatalf("Compute failed: %s", err)
	}
	ev := nextEvent(t, client)
	failed, ok := ev.(*ComputeFailedEvent)
	if !ok {
		t.Fatalf("unexpected event: %v", ev)
	}
	if failed.ID != computeID || failed.Err == nil {
		t.Errorf("unexpected failure event: %v", failed)
	}
}

// twoParties returns outputs for two parties.
func twoParties() []*nada.Output {
	dealer := nada.NewParty("Dealer")
	p1 := nada.NewParty("Party1")
	p2 := nada.NewParty("Party2")

	a := nada.NewSecretInteger(nada.NewInput("a", dealer))
	b := nada.NewSecretInteger(nada.NewInput("b", dealer))

	return []*nada.Output{
		nada.NewOutput(a.Add(b), "sum", p1),
		nada.NewOutput(a.Gt(b).IfElse(a, b), "max", p2),
	}
}

func TestOutputParties(t *testing.T) {
	ctx := context.Background()
	cluster := testCluster(t, 0)
	dealer := testClient(t, cluster, "dealer")
	p1 := testClient(t, cluster, "party1")
	p2 := testClient(t, cluster, "party2")

	id, err := dealer.StoreProgram(ctx, "two", testProgram(t, twoParties))
	if err != nil {
		t.Fatalf("StoreProgram failed: %s", err)
	}
	bindings := NewProgramBindings(id)
	bindings.AddInputParty("Dealer", dealer.PartyID)
	bindings.AddOutputParty("Party1", p1.PartyID)
	bindings.AddOutputParty("Party2", p2.PartyID)

	computeID, err := dealer.Compute(ctx, bindings, nil, Values{
		"a": NewSecretInteger(4),
		"b": NewSecretInteger(9),
	})
	if err != nil {
		t.Fatalf("Compute failed: %s", err)
	}

	tests := []struct {
		client *Client
		name   string
		value  int64
	}{
		{p1, "sum", 13},
		{p2, "max", 9},
	}
	for _, test := range tests {
		ev := nextEvent(t, test.client)
		finished, ok := ev.(*ComputeFinishedEvent)
		if !ok || finished.ID != computeID {
			t.Fatalf("unexpected event: %v", ev)
		}
		if len(finished.Results) != 1 {
			t.Fatalf("unexpected results: %v", finished.Results)
		}
		r := finished.Results[0]
		if r.Name != test.name || r.Value.Int64() != test.value {
			t.Errorf("got %v, expected %s=%d", r, test.name, test.value)
		}
	}

	// The dealer is not an output party.
	ev := nextEvent(t, dealer)
	finished, ok := ev.(*ComputeFinishedEvent)
	if !ok {
		t.Fatalf("unexpected event: %v", ev)
	}
	if len(finished.Results) != 0 {
		t.Errorf("dealer received results: %v", finished.Results)
	}
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	cluster := testCluster(t, 0)
	client := testClient(t, cluster, "close")
	bindings := setup(t, client)

	_, err := client.Compute(ctx, bindings, nil, Values{
		"my_int1": NewSecretInteger(1),
		"my_int2": NewSecretInteger(2),
		"my_int3": NewSecretInteger(3),
	})
	if err != nil {
		t.Fatalf("Compute failed: %s", err)
	}
	if err := cluster.Close(); err != nil {
		t.Fatalf("Close failed: %s", err)
	}

	// The in-flight computation was delivered before Close returned.
	select {
	case ev := <-client.events:
		if _, ok := ev.(*ComputeFinishedEvent); !ok {
			t.Errorf("unexpected event: %v", ev)
		}
	default:
		t.Errorf("in-flight computation not delivered")
	}

	_, err = client.Compute(ctx, bindings, nil, nil)
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Compute after Close: %v", err)
	}
	_, err = New(cluster, "another")
	if !errors.Is(err, ErrClosed) {
		t.Errorf("New after Close: %v", err)
	}

	client.Close()
	_, err = client.NextComputeEvent(ctx)
	if !errors.Is(err, ErrClosed) {
		t.Errorf("NextComputeEvent after Close: %v", err)
	}
}

func TestCanceled(t *testing.T) {
	cluster := testCluster(t, 0)
	client := testClient(t, cluster, "canceled")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.StoreProgram(ctx, "main", testProgram(t, maxadd.Main))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("StoreProgram: %v", err)
	}
	_, err = client.NextComputeEvent(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("NextComputeEvent: %v", err)
	}
}
