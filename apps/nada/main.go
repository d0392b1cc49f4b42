//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// The nada command lists, renders, and runs the registered nada
// programs. Programs are run against an in-process cluster with one
// client per program party.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/markkurossi/nada/client"
	"github.com/markkurossi/nada/env"
	"github.com/markkurossi/nada/program"
	_ "github.com/markkurossi/nada/programs/maxadd"
	"github.com/markkurossi/nada/utils"
	"github.com/markkurossi/tabulate"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	info = color.New(color.FgGreen, color.Bold)
	fail = color.New(color.FgRed, color.Bold)
)

type options struct {
	list    bool
	dump    bool
	dot     string
	stats   bool
	timing  bool
	random  bool
	verbose bool
	bits    int
	base    int
	timeout time.Duration
	profile string
	inputs  InputArguments
	store   NameList
	config  string
}

func main() {
	opts := new(options)
	fProgram := flag.String("p", "main", "program name")
	fParty := flag.String("party", "", "computing party name")
	fSeed := flag.String("seed", "nada", "client identity seed")
	flag.BoolVar(&opts.list, "l", false, "list programs")
	flag.Var(&opts.inputs, "i", "comma-separated list of name=value inputs")
	flag.Var(&opts.store, "s",
		"comma-separated list of inputs to store before computation")
	flag.StringVar(&opts.config, "config", "", "configuration file")
	flag.BoolVar(&opts.dump, "dump", false, "dump program nodes")
	flag.StringVar(&opts.dot, "dot", "", "create graphviz dot output file")
	flag.BoolVar(&opts.stats, "stats", false, "print program statistics")
	flag.BoolVar(&opts.timing, "timing", false, "print timing report")
	flag.BoolVar(&opts.random, "random", false,
		"use random values for missing inputs")
	flag.BoolVar(&opts.verbose, "v", false, "verbose output")
	flag.IntVar(&opts.bits, "bits", utils.DefaultIntegerBits, "integer width")
	flag.IntVar(&opts.base, "base", 10, "result output base")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second,
		"computation timeout")
	flag.StringVar(&opts.profile, "profile", "", "profile output directory")
	flag.Parse()

	viper.SetDefault("program", "main")
	viper.SetDefault("seed", "nada")
	viper.SetEnvPrefix("NADA")
	viper.AutomaticEnv()

	if len(opts.config) > 0 {
		viper.SetConfigFile(opts.config)
		if err := viper.ReadInConfig(); err != nil {
			fail.Fprintf(os.Stderr, "nada: %s\n", err)
			os.Exit(1)
		}
	}
	// Explicit flags override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			viper.Set("program", *fProgram)
		case "party":
			viper.Set("party", *fParty)
		case "seed":
			viper.Set("seed", *fSeed)
		}
	})

	if err := run(opts); err != nil {
		fail.Fprintf(os.Stderr, "nada: %s\n", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	if len(opts.profile) > 0 {
		defer profile.Start(profile.ProfilePath(opts.profile)).Stop()
	}
	if opts.list {
		return list(os.Stdout)
	}

	params := utils.NewParams()
	defer params.Close()
	params.Verbose = opts.verbose
	params.IntegerBits = opts.bits

	name := viper.GetString("program")
	prog, err := program.Load(name, params)
	if err != nil {
		return err
	}
	if opts.verbose {
		info.Printf("Program %s: %s\n", name, prog.Stats())
	}
	if opts.dump {
		prog.Dump(os.Stdout)
	}
	if opts.stats {
		prog.Stats().Print(os.Stdout)
	}
	if len(opts.dot) > 0 {
		f, err := os.Create(opts.dot)
		if err != nil {
			return err
		}
		prog.Dot(f)
		if err := f.Close(); err != nil {
			return err
		}
	}

	args := configInputs(viper.GetStringMapString("inputs"))
	args = append(args, opts.inputs...)
	if len(args) == 0 && !opts.random {
		return nil
	}
	values, err := parseInputs(dedup(args))
	if err != nil {
		return err
	}
	if opts.random {
		randomInputs(prog, values)
	}
	store := viper.GetStringSlice("store")
	store = append(store, opts.store...)

	timing := client.NewTiming()
	results, err := compute(opts, prog, values, store, timing)
	if err != nil {
		return err
	}
	if opts.verbose {
		for _, in := range prog.Inputs {
			info.Printf("Input %s: %s\n", in.Name, values[in.Name].Value)
		}
	}
	results.Print(os.Stdout, opts.base)
	if opts.timing {
		timing.Print(os.Stdout)
	}
	return nil
}

// dedup removes earlier name=value arguments that are overridden by
// later arguments of the same name.
func dedup(args []string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := len(args) - 1; i >= 0; i-- {
		name := args[i]
		for idx, ch := range args[i] {
			if ch == '=' {
				name = args[i][:idx]
				break
			}
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append([]string{args[i]}, result...)
	}
	return result
}

func compute(opts *options, prog *program.Program, values client.Values,
	store []string, timing *client.Timing) (program.Results, error) {

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	cluster, err := client.NewCluster(&env.Config{
		Log: logger,
	}, 0)
	if err != nil {
		return nil, err
	}
	defer cluster.Close()

	// One client per program party.
	seed := viper.GetString("seed")
	clients := make(map[string]*client.Client)
	for _, party := range prog.Parties {
		c, err := client.New(cluster, seed+":"+party.Name)
		if err != nil {
			return nil, err
		}
		defer c.Close()
		clients[party.Name] = c
	}

	computer, err := computingParty(prog, clients, viper.GetString("party"))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	programID, err := computer.StoreProgram(ctx, prog.Name, prog)
	if err != nil {
		return nil, err
	}
	timing.Sample("Store program", []string{programID})

	stored, secrets, err := split(values, store)
	if err != nil {
		return nil, err
	}
	var storeIDs []string
	if len(stored) > 0 {
		perms := client.DefaultForUser(computer.UserID)
		perms.AddComputePermissions(map[string][]string{
			computer.UserID: {programID},
		})
		storeID, err := computer.StoreValues(ctx, stored, perms, time.Hour)
		if err != nil {
			return nil, err
		}
		storeIDs = append(storeIDs, storeID)
		timing.Sample("Store values", []string{storeID})
	}

	bindings := client.NewProgramBindings(programID)
	for _, party := range prog.InputParties() {
		bindings.AddInputParty(party.Name, clients[party.Name].PartyID)
	}
	receivers := map[string]*client.Client{
		computer.PartyID: computer,
	}
	for _, party := range prog.OutputParties() {
		c := clients[party.Name]
		bindings.AddOutputParty(party.Name, c.PartyID)
		receivers[c.PartyID] = c
	}

	computeID, err := computer.Compute(ctx, bindings, storeIDs, secrets)
	if err != nil {
		return nil, err
	}
	sample := timing.Sample("Compute", []string{computeID})

	var results program.Results
	for _, c := range receivers {
		ev, err := c.NextComputeEvent(ctx)
		if err != nil {
			return nil, err
		}
		switch ev := ev.(type) {
		case *client.ComputeFinishedEvent:
			results = append(results, ev.Results...)
		case *client.ComputeFailedEvent:
			return nil, errors.Wrapf(ev.Err, "compute %s", ev.ID)
		}
		sample.SubSample(fmt.Sprintf("party %s", c.PartyID[:8]), time.Now())
	}
	timing.Sample("Results", nil)

	return sortResults(prog, results), nil
}

func computingParty(prog *program.Program, clients map[string]*client.Client,
	name string) (*client.Client, error) {

	if len(name) > 0 {
		c, ok := clients[name]
		if !ok {
			return nil, errors.Newf("unknown party %s", name)
		}
		return c, nil
	}
	parties := prog.InputParties()
	if len(parties) == 0 {
		parties = prog.Parties
	}
	if len(parties) == 0 {
		return nil, errors.New("program has no parties")
	}
	return clients[parties[0].Name], nil
}

// sortResults orders the results in the program output order.
func sortResults(prog *program.Program, results program.Results) program.Results {
	var sorted program.Results
	for _, out := range prog.Outputs {
		r, ok := results.Get(out.Name)
		if ok {
			sorted = append(sorted, r)
		}
	}
	return sorted
}

func list(out *os.File) error {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Program").SetAlign(tabulate.ML)
	tab.Header("Parties").SetAlign(tabulate.MR)
	tab.Header("Inputs").SetAlign(tabulate.MR)
	tab.Header("Outputs").SetAlign(tabulate.MR)
	tab.Header("Nodes").SetAlign(tabulate.MR)

	for _, name := range program.Names() {
		params := utils.NewParams()
		prog, err := program.Load(name, params)
		if err != nil {
			return err
		}
		row := tab.Row()
		row.Column(name)
		row.Column(fmt.Sprintf("%d", len(prog.Parties)))
		row.Column(fmt.Sprintf("%d", len(prog.Inputs)))
		row.Column(fmt.Sprintf("%d", len(prog.Outputs)))
		row.Column(fmt.Sprintf("%d", len(prog.Nodes)))
	}
	tab.Print(out)
	return nil
}
