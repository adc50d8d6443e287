package domain

import (
	"context"
	"time"
)

type performanceProfileKey struct{}

type PerformanceProfileEvent struct {
	Name      string `json:"name"`
	ElapsedMs int64  `json:"elapsedMs"`
	time      time.Time
}

// PerformanceProfile records how long each phase of a request took, ie
// validate -> simulate -> persist. not thread safe
type PerformanceProfile struct {
	startTime time.Time
	Events    []PerformanceProfileEvent `json:"events"`
	TotalMs   int64                     `json:"totalMs"`
}

func NewPerformanceProfile() *PerformanceProfile {
	return &PerformanceProfile{
		startTime: time.Now(),
		Events:    []PerformanceProfileEvent{},
	}
}

// Add closes the phase that has been running since the last event
func (p *PerformanceProfile) Add(name string) {
	last := p.startTime
	if len(p.Events) > 0 {
		last = p.Events[len(p.Events)-1].time
	}
	now := time.Now()
	p.Events = append(p.Events, PerformanceProfileEvent{
		Name:      name,
		ElapsedMs: now.Sub(last).Milliseconds(),
		time:      now,
	})
}

func (p *PerformanceProfile) End() {
	p.TotalMs = time.Since(p.startTime).Milliseconds()
}

// LogFields flattens the profile for a sugared logger's Infow
func (p PerformanceProfile) LogFields() []interface{} {
	out := []interface{}{"totalMs", p.TotalMs}
	for _, e := range p.Events {
		out = append(out, e.Name+"Ms", e.ElapsedMs)
	}
	return out
}

func ContextWithPerformanceProfile(ctx context.Context, p *PerformanceProfile) context.Context {
	return context.WithValue(ctx, performanceProfileKey{}, p)
}

// PerformanceProfileFromContext returns a throwaway profile when none was
// attached so callers never need to nil check
func PerformanceProfileFromContext(ctx context.Context) *PerformanceProfile {
	p, ok := ctx.Value(performanceProfileKey{}).(*PerformanceProfile)
	if !ok {
		return NewPerformanceProfile()
	}
	return p
}
