// Package pipeline runs enabled features against a generated project in a
// fixed order, each one planning file writes and anchored patches through the
// project's dialect strategy.
package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/generator"
	"github.com/ehsanpo/create-wails-app/internal/logging"
	"github.com/ehsanpo/create-wails-app/internal/patch"
)

// Feature is one optional capability.
type Feature interface {
	Name() config.Feature
	Plan(env *Env, p *Plan) error
}

// Skip is a deliberate no-op, such as an intent the dialect cannot express.
type Skip struct {
	Feature config.Feature
	Reason  string
}

// Report summarizes a run.
type Report struct {
	Applied        []config.Feature
	AlreadyPresent []string
	Skips          []Skip
}

// FeatureError attributes a failure to the feature that caused it.
type FeatureError struct {
	Feature config.Feature
	Err     error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("feature %s: %v", e.Feature, e.Err)
}

func (e *FeatureError) Unwrap() error { return e.Err }

// Run executes every enabled feature in category order, then in the order
// given within a category. The first failure stops the run; features that
// already ran stay applied.
func Run(ctx context.Context, env *Env, features []Feature) (*Report, error) {
	log := logging.Get("pipeline")
	report := &Report{}

	for _, f := range ordered(features) {
		if !env.Has(f.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		log.Info().Str("feature", string(f.Name())).Str("dialect", env.Strategy.Name()).Msg("applying feature")

		plan := newPlan(env, f.Name())
		if err := f.Plan(env, plan); err != nil {
			return report, &FeatureError{Feature: f.Name(), Err: err}
		}

		opts := generator.ExecuteOptions{Force: true, Preview: env.Preview, Writer: env.Out}
		if err := generator.Execute(ctx, plan.ops, opts); err != nil {
			return report, &FeatureError{Feature: f.Name(), Err: err}
		}

		for _, op := range plan.ops {
			if p, ok := op.(*patchOp); ok && p.outcome == patch.AlreadyPresent {
				report.AlreadyPresent = append(report.AlreadyPresent, fmt.Sprintf("%s: %s", f.Name(), p.patch.Request.Path))
			}
		}
		for _, s := range plan.skips {
			log.Info().Str("feature", string(s.Feature)).Msg(s.Reason)
		}
		report.Skips = append(report.Skips, plan.skips...)
		report.Applied = append(report.Applied, f.Name())
	}

	return report, nil
}

// Describe plans f against env without executing anything.
func Describe(env *Env, f Feature) (*Plan, error) {
	plan := newPlan(env, f.Name())
	if err := f.Plan(env, plan); err != nil {
		return nil, &FeatureError{Feature: f.Name(), Err: err}
	}
	return plan, nil
}

// ordered sorts features by category, keeping the given order within one.
func ordered(features []Feature) []Feature {
	rank := func(f Feature) int {
		info, ok := config.Lookup(string(f.Name()))
		if !ok {
			return len(config.Categories)
		}
		return slices.Index(config.Categories, info.Category)
	}
	out := slices.Clone(features)
	slices.SortStableFunc(out, func(a, b Feature) int {
		return rank(a) - rank(b)
	})
	return out
}
