package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainCandidates(t *testing.T) {
	tests := []struct {
		email string
		want  []string
	}{
		{"a@cs.KBTU.kz", []string{"cs.kbtu.kz", "kbtu.kz"}},
		{"a@kbtu.kz", []string{"kbtu.kz"}},
		{"a@localhost", nil},
		{"no-at-sign", nil},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, DomainCandidates(tt.email))
		})
	}
}
