package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNameFromEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		firstOnly bool
		want      string
	}{
		{
			name:  "full name from dotted local part",
			email: "maria.souza@empresa.com.br",
			want:  "Maria Souza",
		},
		{
			name:      "first name only",
			email:     "maria.souza@empresa.com.br",
			firstOnly: true,
			want:      "Maria",
		},
		{
			name:  "underscore separator",
			email: "joao_pedro@empresa.com.br",
			want:  "Joao Pedro",
		},
		{
			name:      "accented first letter stays valid UTF-8",
			email:     "érica.campos@empresa.com.br",
			firstOnly: true,
			want:      "Érica",
		},
		{
			name:  "no at sign",
			email: "not-an-email",
			want:  "N/A",
		},
		{
			name:  "empty local part",
			email: "@empresa.com.br",
			want:  "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNameFromEmail(tt.email, tt.firstOnly))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		strategy FilenameStrategy
		want     string
	}{
		{
			name:     "strict folds accents and joins with underscores",
			input:    "Padaria São João",
			strategy: FilenameStrict,
			want:     "Padaria_Sao_Joao",
		},
		{
			name:     "strict drops punctuation",
			input:    "Bebidas (Geral): Teste!",
			strategy: FilenameStrict,
			want:     "Bebidas_Geral_Teste",
		},
		{
			name:     "minimal keeps accents and spaces",
			input:    "Padaria São João",
			strategy: FilenameMinimal,
			want:     "Padaria São João",
		},
		{
			name:     "minimal strips only illegal characters",
			input:    `Loja 10/Leste: "Centro"`,
			strategy: FilenameMinimal,
			want:     "Loja 10Leste Centro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input, tt.strategy))
		})
	}
}

func TestSafeSheetName(t *testing.T) {
	legal := regexp.MustCompile(`^[\w-]+$`)

	inputs := []string{
		"Bebidas",
		"Categoria com um nome absurdamente longo que não cabe numa aba",
		"Açúcar & Adoçantes [/\\?*]",
		"",
	}
	for _, input := range inputs {
		got := SafeSheetName(input)
		assert.LessOrEqual(t, len(got), MaxSheetNameLength, "input %q", input)
		assert.Regexp(t, legal, got, "input %q", input)
	}

	// Sanitize-then-truncate must stay stable when applied again.
	for _, input := range inputs {
		once := SafeSheetName(input)
		assert.Equal(t, once, SafeSheetName(once))
	}
}
