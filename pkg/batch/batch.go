// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package batch runs a list of command lines concurrently. Jobs are read
// from a TOML file:
//
//	threads = 4
//
//	[[job]]
//	name = "east"
//	command = "service resource create"
//	args = ["--name", "east", "--location", "eastus"]
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aicli/ai/pkg/codecutil"
	"golang.org/x/sync/errgroup"
)

type Job struct {
	Name    string   `toml:"name,omitempty"`
	Command string   `toml:"command,omitempty"`
	Args    []string `toml:"args,omitempty"`
}

// Argv returns the job's full command line.
func (j Job) Argv() []string {
	argv := strings.Fields(j.Command)
	return append(argv, j.Args...)
}

// Label names the job in output.
func (j Job) Label(i int) string {
	if j.Name != "" {
		return j.Name
	}
	return fmt.Sprintf("job %d", i+1)
}

type File struct {
	Threads int   `toml:"threads,omitempty"`
	Jobs    []Job `toml:"job"`
}

// Load reads a job file. Files ending in .zst are decompressed first.
func Load(path string) (*File, error) {
	data, err := codecutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i, j := range f.Jobs {
		if len(j.Argv()) == 0 {
			return nil, fmt.Errorf("%s: %s has no command or args", path, j.Label(i))
		}
	}
	return &f, nil
}

type Result struct {
	Job      Job
	Err      error
	Duration time.Duration
}

// Func runs one job.
type Func func(ctx context.Context, job Job) error

// Run runs every job with at most threads running at once. A failing job
// does not stop the others. Results are in job order.
func Run(ctx context.Context, jobs []Job, threads int, fn Func) []Result {
	if threads < 1 {
		threads = 1
	}
	results := make([]Result, len(jobs))
	var g errgroup.Group
	g.SetLimit(threads)
	for i, job := range jobs {
		g.Go(func() error {
			start := time.Now()
			err := ctx.Err()
			if err == nil {
				err = fn(ctx, job)
			}
			results[i] = Result{Job: job, Err: err, Duration: time.Since(start)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Err joins the failures in results, or returns nil when every job passed.
func Err(results []Result) error {
	var errs []error
	for i, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Job.Label(i), r.Err))
		}
	}
	return errors.Join(errs...)
}
