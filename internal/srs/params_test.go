package srs

import "testing"

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}
}

func TestValidateRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"weight below bound", func(p *Params) { p.Weights[0] = 0 }},
		{"weight above bound", func(p *Params) { p.Weights[4] = 50 }},
		{"decay out of range", func(p *Params) { p.Weights[20] = 0.95 }},
		{"zero retention", func(p *Params) { p.DesiredRetention = 0 }},
		{"retention above one", func(p *Params) { p.DesiredRetention = 1.5 }},
		{"zero max interval", func(p *Params) { p.MaximumInterval = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestEngineRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.DesiredRetention = -1
	if _, err := NewEngine(p); err == nil {
		t.Fatalf("expected NewEngine to reject invalid params")
	}
}
