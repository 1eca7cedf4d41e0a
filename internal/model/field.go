package model

// Field canonical column name
type Field string

const (
	FieldDataCriacao      Field = "DataCriacao"
	FieldAno              Field = "Ano"
	FieldMesNumero        Field = "MesNumero"
	FieldMesNome          Field = "MesNome"
	FieldSemanaAno        Field = "SemanaAno"
	FieldNumPedido        Field = "NumPedido"
	FieldStatusKPI        Field = "StatusKPI"
	FieldQuantidadeKPI    Field = "QuantidadeKPI"
	FieldValorFaturadoKPI Field = "ValorFaturadoKPI"
	FieldCanalAA          Field = "CanalAA"
	FieldTipoClienteY     Field = "TipoClienteY"
	FieldTresPAH          Field = "TresP_AH"
	FieldSalesOrgE        Field = "SalesOrgE"
	FieldGrupoFranqueadoW Field = "GrupoFranqueadoW"
	FieldFranqueado       Field = "Franqueado"
	FieldNomeCompletoZ    Field = "NomeCompletoZ"
	FieldMotivoRejeicao   Field = "MotivoRejeicao"
	FieldBrandCode        Field = "BrandCode"
	FieldCollectionDesc   Field = "CollectionDesc"
	FieldBrandCategory    Field = "BrandCategory"
	FieldOticoSport       Field = "OticoSport"
	FieldCanalBI          Field = "CanalBI"
)

// Schema is the fixed canonical column order. Exports follow it.
var Schema = []Field{
	FieldDataCriacao, FieldAno, FieldMesNumero, FieldMesNome, FieldSemanaAno,
	FieldNumPedido, FieldStatusKPI, FieldQuantidadeKPI, FieldValorFaturadoKPI,
	FieldCanalAA, FieldTipoClienteY, FieldTresPAH, FieldSalesOrgE,
	FieldGrupoFranqueadoW, FieldFranqueado, FieldNomeCompletoZ, FieldMotivoRejeicao,
	FieldBrandCode, FieldCollectionDesc, FieldBrandCategory, FieldOticoSport, FieldCanalBI,
}

// CategoricalFields are filled with SentinelLabel when blank.
var CategoricalFields = []Field{
	FieldStatusKPI,
	FieldCanalAA, FieldTipoClienteY, FieldTresPAH, FieldSalesOrgE,
	FieldGrupoFranqueadoW, FieldFranqueado, FieldNomeCompletoZ, FieldMotivoRejeicao,
	FieldBrandCode, FieldCollectionDesc, FieldBrandCategory, FieldOticoSport, FieldCanalBI,
}

// DerivedFields are computed from DataCriacao and exist whenever the date does.
var DerivedFields = []Field{FieldAno, FieldMesNumero, FieldMesNome, FieldSemanaAno}

// TableColumns are the columns shown in the capped data table.
var TableColumns = []Field{
	FieldDataCriacao, FieldAno, FieldMesNome, FieldSemanaAno, FieldNumPedido, FieldStatusKPI,
	FieldQuantidadeKPI, FieldCanalBI, FieldFranqueado, FieldBrandCode, FieldCollectionDesc,
}

// ParseField looks a canonical field up by name
func ParseField(name string) (Field, bool) {
	for _, f := range Schema {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// IsCategorical reports whether f is a categorical dimension
func (f Field) IsCategorical() bool {
	for _, c := range CategoricalFields {
		if c == f {
			return true
		}
	}
	return false
}
