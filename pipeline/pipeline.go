// Package pipeline provides a small generic staged executor: a turn's
// eight lettered phases are literal, named, ordered Stage values run in
// sequence over one mutable *resolve.TurnContext. Stages never suspend
// — a turn runs to completion — so there is no continuation or resume
// machinery, only Sequential execution.
package pipeline

import "context"

// Stage transforms a turn's context as one phase of resolution. Name is
// used for diagnostics; Process takes and returns the same *TurnContext
// value, carried as `any` to keep this package independent of the
// resolve package it serves.
type Stage interface {
	Name() string
	Process(ctx context.Context, value any) (any, error)
}

// Pipeline runs a fixed, ordered sequence of Stages over one value.
type Pipeline struct {
	Name   string
	Stages []Stage
}

// Sequential builds a Pipeline that runs stages in the given order.
func Sequential(name string, stages ...Stage) *Pipeline {
	return &Pipeline{Name: name, Stages: stages}
}

// Run executes every stage in order, threading the value through each.
// A stage returning an error aborts the pipeline immediately: in this
// resolver, stage errors represent internal programming errors, never
// recoverable in-game failures, which are instead represented as
// logged rpgerr.Error values that a stage swallows and continues past.
func (p *Pipeline) Run(ctx context.Context, value any) (any, error) {
	var err error
	for _, stage := range p.Stages {
		value, err = stage.Process(ctx, value)
		if err != nil {
			return value, err
		}
	}
	return value, nil
}

// StageFunc adapts a plain function into a Stage.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, value any) (any, error)
}

// Name implements Stage.
func (f StageFunc) Name() string { return f.StageName }

// Process implements Stage.
func (f StageFunc) Process(ctx context.Context, value any) (any, error) {
	return f.Fn(ctx, value)
}
