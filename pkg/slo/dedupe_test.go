package slo_test

import (
	"testing"

	"github.com/appclacks/slo-exporter/pkg/slo"
	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		result string
	}{
		{
			name:   "duplicates",
			input:  "A\n---\nB\n---\nA\n---\nC\n---\n",
			result: "A\n---\nB\n---\nC\n---\n",
		},
		{
			name:   "no duplicate",
			input:  "A\n---\nB\n---\n",
			result: "A\n---\nB\n---\n",
		},
		{
			name:   "substring is not a duplicate",
			input:  "service: a\n---\na\n---\n",
			result: "service: a\n---\na\n---\n",
		},
		{
			name:   "empty",
			input:  "",
			result: "",
		},
		{
			name:   "empty chunks",
			input:  "---\nA\n---\n---\n",
			result: "A\n---\n",
		},
		{
			name:   "last chunk without separator",
			input:  "A\n---\nA\n",
			result: "A\n---\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.result, slo.Dedupe(c.input))
		})
	}
}
