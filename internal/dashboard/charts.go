package dashboard

import (
	"github.com/willfaleixo/Dashboards-BI/internal/calculator"
	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Limits top-N sizes of the ranked charts
type Limits struct {
	Franchises  int
	Salespeople int
	Brands      int
}

// DefaultLimits as shown on the page
var DefaultLimits = Limits{Franchises: 15, Salespeople: 10, Brands: 10}

// NoSalesperson placeholder the order report uses for orders without a salesperson
const NoSalesperson = "-"

// Charts data behind every chart of the page. A nil series means its column is absent.
type Charts struct {
	MonthlyCreated  []calculator.MonthPoint `json:"monthlyCreated"`
	MonthlyInvoiced []calculator.MonthPoint `json:"monthlyInvoiced"`
	YearlyCreated   []calculator.YearPoint  `json:"yearlyCreated"`
	YearlyInvoiced  []calculator.YearPoint  `json:"yearlyInvoiced"`
	TopFranchises   []calculator.GroupTotal `json:"topFranchises"`
	TopSalespeople  []calculator.GroupTotal `json:"topSalespeople"`
	TopBrands       []calculator.GroupTotal `json:"topBrands"`
	BrandCategories []calculator.ShareItem  `json:"brandCategories"`
	Collections     []calculator.ShareItem  `json:"collections"`
}

// BuildCharts aggregates ds for the charts.
func BuildCharts(ds *model.Dataset, limits Limits) Charts {
	if limits.Franchises <= 0 {
		limits.Franchises = DefaultLimits.Franchises
	}
	if limits.Salespeople <= 0 {
		limits.Salespeople = DefaultLimits.Salespeople
	}
	if limits.Brands <= 0 {
		limits.Brands = DefaultLimits.Brands
	}
	invoiced := []model.Status{model.StatusInvoiced}

	return Charts{
		MonthlyCreated:  calculator.MonthlySeries(ds),
		MonthlyInvoiced: calculator.MonthlySeries(ds, invoiced...),
		YearlyCreated:   calculator.YearlyTotals(ds),
		YearlyInvoiced:  calculator.YearlyTotals(ds, invoiced...),
		TopFranchises: calculator.TopN(ds, calculator.TopNSpec{
			GroupBy:  model.FieldFranqueado,
			Metric:   calculator.MetricQuantity,
			N:        limits.Franchises,
			Statuses: invoiced,
			Exclude:  []string{model.SentinelLabel},
		}),
		TopSalespeople: calculator.TopN(ds, calculator.TopNSpec{
			GroupBy:  model.FieldNomeCompletoZ,
			Metric:   calculator.MetricQuantity,
			N:        limits.Salespeople,
			Statuses: invoiced,
			Exclude:  []string{NoSalesperson, model.SentinelLabel},
		}),
		TopBrands: calculator.TopN(ds, calculator.TopNSpec{
			GroupBy: model.FieldBrandCode,
			Metric:  calculator.MetricQuantity,
			N:       limits.Brands,
		}),
		BrandCategories: calculator.Share(ds, model.FieldBrandCategory),
		Collections:     calculator.Share(ds, model.FieldCollectionDesc),
	}
}
