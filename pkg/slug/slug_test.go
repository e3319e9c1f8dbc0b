// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comuna-ec/comuna/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Medio Ambiente", want: "medio-ambiente"},
		{name: "accents", input: "Educación y Niñez", want: "educacion-y-ninez"},
		{name: "punctuation", input: "Salud: Comunitaria!", want: "salud-comunitaria"},
		{name: "multiple spaces", input: "zona   norte", want: "zona-norte"},
		{name: "leading trailing", input: "  -cultura-  ", want: "cultura"},
		{name: "digits", input: "Zona 7", want: "zona-7"},
		{name: "empty", input: "", want: ""},
		{name: "symbols only", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
