package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
	require.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-9)
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Weights)
		wantErr bool
	}{
		{name: "defaults pass", mutate: func(w *Weights) {}},
		{name: "short sum rejected", mutate: func(w *Weights) { w.SemanticScore = 0.4 }, wantErr: true},
		{name: "excess sum rejected", mutate: func(w *Weights) { w.DateScore = 0.2 }, wantErr: true},
		{
			name: "negative weight rejected",
			mutate: func(w *Weights) {
				w.SemanticScore = 0.70
				w.DateScore = -0.13
			},
			wantErr: true,
		},
		{
			name: "redistributed sum passes",
			mutate: func(w *Weights) {
				w.SemanticScore = 0.40
				w.SkillOverlapRatio = 0.30
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			err := w.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParamsApplyDefaults(t *testing.T) {
	var p Params
	p.ApplyDefaults()
	require.Equal(t, DefaultParams(), p)
	require.NoError(t, p.Validate())

	p = Params{TopK: 10}
	p.ApplyDefaults()
	require.Equal(t, 10, p.TopK)
	require.Equal(t, DefaultWeights(), p.Weights)
}

func TestParamsValidateThresholds(t *testing.T) {
	p := DefaultParams()
	p.SemanticGoodThreshold = 0.9
	require.Error(t, p.Validate())

	p = DefaultParams()
	p.FuzzyCutoff = 150
	require.Error(t, p.Validate())
}
