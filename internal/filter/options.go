package filter

import (
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Dimension a filterable column of the dashboard
type Dimension struct {
	Key   string      `json:"key"`
	Field model.Field `json:"field"`
	Label string      `json:"label"`
	// HideSentinel leaves SentinelLabel out of the offered options
	HideSentinel bool `json:"-"`
}

// Dimensions in sidebar order
var Dimensions = []Dimension{
	{Key: "ano", Field: model.FieldAno, Label: "Ano"},
	{Key: "mes", Field: model.FieldMesNome, Label: "Mês"},
	{Key: "semana", Field: model.FieldSemanaAno, Label: "Semana"},
	{Key: "canal", Field: model.FieldCanalBI, Label: "Canal"},
	{Key: "3p", Field: model.FieldTresPAH, Label: "3P/LUX"},
	{Key: "sales_org", Field: model.FieldSalesOrgE, Label: "Organização de Vendas"},
	{Key: "franqueado", Field: model.FieldFranqueado, Label: "Franqueado", HideSentinel: true},
	{Key: "brand_code", Field: model.FieldBrandCode, Label: "Marca"},
	{Key: "collection_desc", Field: model.FieldCollectionDesc, Label: "Tipo do Produto"},
	{Key: "brand_category", Field: model.FieldBrandCategory, Label: "Categoria da Marca"},
	{Key: "otico_sport", Field: model.FieldOticoSport, Label: "Ótico / Sport"},
}

// LookupDimension finds a dimension by its query key.
func LookupDimension(key string) (Dimension, bool) {
	return lo.Find(Dimensions, func(d Dimension) bool { return d.Key == key })
}

// Options lists the distinct values of a column, sorted for display.
// The month name column yields the full month domain in calendar order;
// integer columns sort numerically, everything else lexicographically.
// Unknown or absent columns yield an empty list.
func Options(ds *model.Dataset, column string) []string {
	field, ok := model.ParseField(column)
	if !ok || !ds.Has(field) {
		return []string{}
	}
	if field == model.FieldMesNome && len(ds.MonthDomain) > 0 {
		return append([]string(nil), ds.MonthDomain...)
	}

	values := make([]string, 0, 64)
	for i := range ds.Records {
		values = append(values, ds.Records[i].Text(field))
	}
	values = lo.Uniq(values)

	if ints, ok := parseInts(values); ok {
		sort.SliceStable(values, func(i, j int) bool { return ints[values[i]] < ints[values[j]] })
		return values
	}
	sort.Strings(values)
	return values
}

// DimensionOptions options of one dimension, honoring HideSentinel.
func DimensionOptions(ds *model.Dataset, d Dimension) []string {
	opts := Options(ds, string(d.Field))
	if d.HideSentinel {
		opts = lo.Without(opts, model.SentinelLabel)
	}
	return opts
}

func parseInts(values []string) (map[string]int64, bool) {
	out := make(map[string]int64, len(values))
	for _, v := range values {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, false
		}
		out[v] = n
	}
	return out, true
}
