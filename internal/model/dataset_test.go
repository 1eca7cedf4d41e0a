package model

import (
	"testing"
	"time"
)

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]Status{
		"Cancelado":   StatusCancelled,
		" faturado ":  StatusInvoiced,
		"Em aberto":   StatusOpen,
		SentinelLabel: StatusOpen,
		"":            StatusOpen,
	}
	for label, want := range cases {
		if got := ClassifyStatus(label); got != want {
			t.Errorf("ClassifyStatus(%q) want=%v got=%v", label, want, got)
		}
	}
}

func TestDatasetSubsetDoesNotMutate(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	ds := NewDataset([]Record{
		{DataCriacao: day, StatusKPI: "Faturado", QuantidadeKPI: 2},
		{DataCriacao: day.AddDate(0, 1, 0), StatusKPI: "Cancelado", QuantidadeKPI: 3},
	}, []Field{FieldDataCriacao, FieldStatusKPI, FieldQuantidadeKPI}, nil)

	sub := ds.Subset(func(r *Record) bool { return r.Status() == StatusInvoiced })
	if sub.Len() != 1 || ds.Len() != 2 {
		t.Fatalf("unexpected lengths: sub=%d full=%d", sub.Len(), ds.Len())
	}
	sub.Records[0].QuantidadeKPI = 99
	if ds.Records[0].QuantidadeKPI != 2 {
		t.Fatalf("subset shares record storage with the full dataset")
	}
	if !sub.Has(FieldStatusKPI) || sub.Has(FieldCanalBI) {
		t.Fatalf("subset lost column metadata")
	}

	latest, ok := ds.Latest()
	if !ok || !latest.Equal(day.AddDate(0, 1, 0)) {
		t.Fatalf("unexpected latest: %v %v", latest, ok)
	}
	if len(ds.Missing) != len(Schema)-3 {
		t.Fatalf("unexpected missing count: %d", len(ds.Missing))
	}
}

func TestRecordText(t *testing.T) {
	t.Parallel()

	r := Record{Ano: 2024, SemanaAno: 9, CanalBI: "Loja"}
	if got := r.Text(FieldAno); got != "2024" {
		t.Fatalf("Ano text: %q", got)
	}
	if got := r.Text(FieldCanalBI); got != "Loja" {
		t.Fatalf("CanalBI text: %q", got)
	}
	if r.SetCategory(FieldAno, "x") {
		t.Fatalf("Ano must not be settable as category")
	}
	if _, ok := ParseField("Nope"); ok {
		t.Fatalf("unknown field parsed")
	}
}
