package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"apunab/internal/domain"
)

func TestPotentialPayout(t *testing.T) {
	cases := []struct {
		name  string
		stake float64
		game  *domain.Game
		want  float64
	}{
		{"oyun yok, tutar aynen döner", 40, nil, 40},
		{"çarpan 1.0", 40, &domain.Game{Multiplier: 1.0}, 40},
		{"çarpan 2.0", 40, &domain.Game{Multiplier: 2.0}, 80},
		{"kesirli çarpan", 10, &domain.Game{Multiplier: 1.5}, 15},
		{"sıfır tutar", 0, &domain.Game{Multiplier: 3.0}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PotentialPayout(tc.stake, tc.game))
		})
	}
}

func TestNormalizeCoBettors(t *testing.T) {
	cases := []struct {
		name     string
		bettorID string
		ids      []string
		want     []string
	}{
		{"boş liste", "u1", nil, []string{}},
		{"bahisçi elenir", "u1", []string{"u1", "u2"}, []string{"u2"}},
		{"tekrarlar elenir", "u1", []string{"u2", "u3", "u2"}, []string{"u2", "u3"}},
		{"boş kimlikler elenir", "u1", []string{"", "u2", ""}, []string{"u2"}},
		{"sıra korunur", "u1", []string{"u3", "u2"}, []string{"u3", "u2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeCoBettors(tc.bettorID, tc.ids))
		})
	}
}

func TestEqualIDSets(t *testing.T) {
	assert.True(t, equalIDSets(nil, nil))
	assert.True(t, equalIDSets([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, equalIDSets([]string{"a"}, []string{"a", "b"}))
	assert.False(t, equalIDSets([]string{"a"}, []string{"b"}))
}
