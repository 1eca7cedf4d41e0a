package parser

import (
	"sort"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// DefaultRules source header table of the order report export.
// The channel appears under two headers: "Canal" is preferred for CanalBI and
// "CANAL" feeds CanalAA only when "Canal" exists, otherwise it becomes CanalBI.
func DefaultRules() []RenameRule {
	return []RenameRule{
		{Source: "Order Creation Date: Date", Target: model.FieldDataCriacao, Priority: 0},
		{Source: "Orders Detail - Order Document Number", Target: model.FieldNumPedido, Priority: 0},
		{Source: "STATUS", Target: model.FieldStatusKPI, Priority: 0},
		{Source: "Orders - TOTAL Orders Qty", Target: model.FieldQuantidadeKPI, Priority: 0},
		{Source: "Orders - TOTAL Gross Amount (Document Currency)", Target: model.FieldValorFaturadoKPI, Priority: 0},
		{Source: "Tipo Cliente", Target: model.FieldTipoClienteY, Priority: 0},
		{Source: "3P", Target: model.FieldTresPAH, Priority: 0},
		{Source: "Sales Organization Code", Target: model.FieldSalesOrgE, Priority: 0},
		{Source: "Customer By SO: Buying Group Name", Target: model.FieldGrupoFranqueadoW, Priority: 0},
		{Source: "Franqueado", Target: model.FieldFranqueado, Priority: 0},
		{Source: "Nome Completo", Target: model.FieldNomeCompletoZ, Priority: 0},
		{Source: "Reject Reason Code", Target: model.FieldMotivoRejeicao, Priority: 0},
		{Source: "Brand & Segment - Code", Target: model.FieldBrandCode, Priority: 0},
		{Source: "PLM Attributes - Collection Mix Desc", Target: model.FieldCollectionDesc, Priority: 0},
		{Source: "Brand & Segment - Category", Target: model.FieldBrandCategory, Priority: 0},
		{Source: "Otico/Sport", Target: model.FieldOticoSport, Priority: 0},
		{Source: "Canal", Target: model.FieldCanalBI, Priority: 1},
		{Source: "CANAL", Target: model.FieldCanalBI, Priority: 2},
		{Source: "CANAL", Target: model.FieldCanalAA, Priority: 3},
	}
}

// FieldMapper resolves source headers to canonical fields
type FieldMapper struct {
	rules []RenameRule
}

// NewFieldMapper creates a mapper; nil rules means DefaultRules.
func NewFieldMapper(rules []RenameRule) *FieldMapper {
	if rules == nil {
		rules = DefaultRules()
	}
	sorted := make([]RenameRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &FieldMapper{rules: sorted}
}

// Resolve maps the header row. The result is in schema order.
// Headers are compared after NormalizeColumnName; case matters.
func (m *FieldMapper) Resolve(headers []string) []ColumnMapping {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := NormalizeColumnName(h)
		if key == "" {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	claimed := make(map[int]bool)
	assigned := make(map[model.Field]ColumnMapping)
	for _, rule := range m.rules {
		idx, ok := index[NormalizeColumnName(rule.Source)]
		if !ok || claimed[idx] {
			continue
		}
		if _, done := assigned[rule.Target]; done {
			continue
		}
		claimed[idx] = true
		assigned[rule.Target] = ColumnMapping{
			Field:       rule.Target,
			ColumnName:  headers[idx],
			ColumnIndex: idx,
		}
	}

	mappings := make([]ColumnMapping, 0, len(assigned))
	for _, f := range model.Schema {
		if mapping, ok := assigned[f]; ok {
			mappings = append(mappings, mapping)
		}
	}
	return mappings
}
