package votes_test

import (
	"testing"

	"plenario/internal/votes"
)

func TestComposeNonKnowledge(t *testing.T) {
	tests := []struct {
		name string
		in   votes.ComposeInput
		want string
	}{
		{
			name: "preliminary only",
			in: votes.ComposeInput{
				Knowledge:   votes.NonKnowledge,
				Outcome:     votes.OutcomeAccept,
				Preliminary: "Acolher a preliminar de intempestividade do recurso",
			},
			want: "Acolher a preliminar de intempestividade do recurso.",
		},
		{
			name: "preliminary with official directive",
			in: votes.ComposeInput{
				Knowledge:   votes.NonKnowledge,
				Outcome:     votes.OutcomeAccept,
				Preliminary: "Acolher a preliminar de intempestividade do recurso",
				Official:    "Reformar a decisão recorrida para cancelar o lançamento",
			},
			want: "Acolher a preliminar de intempestividade do recurso, mas, de ofício, " +
				"reformar a decisão recorrida para cancelar o lançamento.",
		},
		{
			name: "official directive only",
			in: votes.ComposeInput{
				Knowledge: votes.NonKnowledge,
				Outcome:   votes.OutcomeAccept,
				Official:  "Reformar a decisão recorrida para cancelar o lançamento",
			},
			want: "Não conhecer do recurso, mas, de ofício, " +
				"reformar a decisão recorrida para cancelar o lançamento.",
		},
		{
			name: "rejected preliminary admits the appeal",
			in: votes.ComposeInput{
				Knowledge:   votes.NonKnowledge,
				Outcome:     votes.OutcomeReject,
				Preliminary: "",
			},
			want: "Conhecer do recurso.",
		},
		{
			name: "rejected preliminary with variant text",
			in: votes.ComposeInput{
				Knowledge:   votes.NonKnowledge,
				Outcome:     votes.OutcomeReject,
				Preliminary: "Rejeitar a preliminar de ilegitimidade da parte recorrente",
			},
			want: "Rejeitar a preliminar de ilegitimidade da parte recorrente.",
		},
		{
			name: "official ignored unless preliminary accepted",
			in: votes.ComposeInput{
				Knowledge:   votes.NonKnowledge,
				Outcome:     votes.OutcomeReject,
				Preliminary: "Rejeitar a preliminar de intempestividade do recurso",
				Official:    "Reformar a decisão recorrida para cancelar o lançamento",
			},
			want: "Rejeitar a preliminar de intempestividade do recurso.",
		},
		{
			name: "accepted with no templates yields empty",
			in: votes.ComposeInput{
				Knowledge: votes.NonKnowledge,
				Outcome:   votes.OutcomeAccept,
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := votes.Compose(tt.in); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeKnowledge(t *testing.T) {
	tests := []struct {
		name string
		in   votes.ComposeInput
		want string
	}{
		{
			name: "merit only",
			in: votes.ComposeInput{
				Knowledge: votes.Knowledge,
				Merit:     "Negar provimento ao recurso, mantendo a decisão de primeira instância",
			},
			want: "Negar provimento ao recurso, mantendo a decisão de primeira instância.",
		},
		{
			name: "merit with official directive",
			in: votes.ComposeInput{
				Knowledge: votes.Knowledge,
				Merit:     "Dar provimento ao recurso para reformar a decisão de primeira instância",
				Official:  "Retificar a decisão recorrida para ajustar o valor do crédito tributário",
			},
			want: "Dar provimento ao recurso para reformar a decisão de primeira instância, mas, de ofício, " +
				"retificar a decisão recorrida para ajustar o valor do crédito tributário.",
		},
		{
			name: "missing merit yields empty",
			in: votes.ComposeInput{
				Knowledge: votes.Knowledge,
				Official:  "Reformar a decisão recorrida para cancelar o lançamento",
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := votes.Compose(tt.in); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   votes.ComposeInput
		want string
	}{
		{
			name: "trims whitespace and strips one trailing period",
			in: votes.ComposeInput{
				Knowledge: votes.Knowledge,
				Merit:     "  Negar provimento ao recurso.  ",
			},
			want: "Negar provimento ao recurso.",
		},
		{
			name: "only one trailing period is stripped",
			in: votes.ComposeInput{
				Knowledge: votes.Knowledge,
				Merit:     "Negar provimento ao recurso..",
			},
			want: "Negar provimento ao recurso..",
		},
		{
			name: "official fragment is lower-cased mid sentence",
			in: votes.ComposeInput{
				Knowledge: votes.Knowledge,
				Merit:     "Dar provimento ao recurso",
				Official:  "Águas passadas não movem moinhos.",
			},
			want: "Dar provimento ao recurso, mas, de ofício, águas passadas não movem moinhos.",
		},
		{
			name: "opening fragment keeps its casing",
			in: votes.ComposeInput{
				Knowledge:   votes.NonKnowledge,
				Outcome:     votes.OutcomeAccept,
				Preliminary: "acolher a preliminar arguida",
			},
			want: "acolher a preliminar arguida.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := votes.Compose(tt.in); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeDeterministic(t *testing.T) {
	in := votes.ComposeInput{
		Knowledge: votes.Knowledge,
		Merit:     "Dar provimento ao recurso",
		Official:  "Reformar a decisão recorrida",
	}

	first := votes.Compose(in)
	for range 10 {
		if got := votes.Compose(in); got != first {
			t.Fatalf("Compose() not deterministic: %q != %q", got, first)
		}
	}
}
