package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SentinelLabel replaces missing categorical values.
const SentinelLabel = "Não Especificado"

// DateTimeLayout is used whenever DataCriacao is rendered as text.
const DateTimeLayout = "2006-01-02 15:04:05"

// Status order status partition
type Status int

const (
	StatusOpen Status = iota
	StatusCancelled
	StatusInvoiced
)

const (
	StatusLabelCancelled = "Cancelado"
	StatusLabelInvoiced  = "Faturado"
)

// ClassifyStatus maps a StatusKPI label to exactly one partition.
// Anything that is neither Cancelado nor Faturado is open.
func ClassifyStatus(label string) Status {
	label = strings.TrimSpace(label)
	switch {
	case strings.EqualFold(label, StatusLabelCancelled):
		return StatusCancelled
	case strings.EqualFold(label, StatusLabelInvoiced):
		return StatusInvoiced
	default:
		return StatusOpen
	}
}

func (s Status) String() string {
	switch s {
	case StatusCancelled:
		return "cancelled"
	case StatusInvoiced:
		return "invoiced"
	default:
		return "open"
	}
}

// Record one order line after cleaning
type Record struct {
	DataCriacao time.Time
	Ano         int
	MesNumero   int
	MesNome     string
	SemanaAno   int

	NumPedido        string
	StatusKPI        string
	QuantidadeKPI    int64
	ValorFaturadoKPI decimal.Decimal

	CanalAA          string
	TipoClienteY     string
	TresPAH          string
	SalesOrgE        string
	GrupoFranqueadoW string
	Franqueado       string
	NomeCompletoZ    string
	MotivoRejeicao   string
	BrandCode        string
	CollectionDesc   string
	BrandCategory    string
	OticoSport       string
	CanalBI          string
}

// Status returns the partition of the record's StatusKPI.
func (r *Record) Status() Status {
	return ClassifyStatus(r.StatusKPI)
}

// Text returns the string representation of a field, as compared by filters and exports.
func (r *Record) Text(f Field) string {
	switch f {
	case FieldDataCriacao:
		return r.DataCriacao.Format(DateTimeLayout)
	case FieldAno:
		return strconv.Itoa(r.Ano)
	case FieldMesNumero:
		return strconv.Itoa(r.MesNumero)
	case FieldMesNome:
		return r.MesNome
	case FieldSemanaAno:
		return strconv.Itoa(r.SemanaAno)
	case FieldNumPedido:
		return r.NumPedido
	case FieldQuantidadeKPI:
		return strconv.FormatInt(r.QuantidadeKPI, 10)
	case FieldValorFaturadoKPI:
		return r.ValorFaturadoKPI.String()
	}
	if p := r.category(f); p != nil {
		return *p
	}
	return ""
}

// SetCategory assigns a categorical field. It returns false for non-categorical fields.
func (r *Record) SetCategory(f Field, value string) bool {
	p := r.category(f)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (r *Record) category(f Field) *string {
	switch f {
	case FieldStatusKPI:
		return &r.StatusKPI
	case FieldCanalAA:
		return &r.CanalAA
	case FieldTipoClienteY:
		return &r.TipoClienteY
	case FieldTresPAH:
		return &r.TresPAH
	case FieldSalesOrgE:
		return &r.SalesOrgE
	case FieldGrupoFranqueadoW:
		return &r.GrupoFranqueadoW
	case FieldFranqueado:
		return &r.Franqueado
	case FieldNomeCompletoZ:
		return &r.NomeCompletoZ
	case FieldMotivoRejeicao:
		return &r.MotivoRejeicao
	case FieldBrandCode:
		return &r.BrandCode
	case FieldCollectionDesc:
		return &r.CollectionDesc
	case FieldBrandCategory:
		return &r.BrandCategory
	case FieldOticoSport:
		return &r.OticoSport
	case FieldCanalBI:
		return &r.CanalBI
	}
	return nil
}

// Cell returns the typed value of a field for spreadsheet export.
func (r *Record) Cell(f Field) interface{} {
	switch f {
	case FieldDataCriacao:
		return r.DataCriacao
	case FieldAno:
		return r.Ano
	case FieldMesNumero:
		return r.MesNumero
	case FieldSemanaAno:
		return r.SemanaAno
	case FieldQuantidadeKPI:
		return r.QuantidadeKPI
	case FieldValorFaturadoKPI:
		return r.ValorFaturadoKPI.InexactFloat64()
	}
	return r.Text(f)
}
