package dashboard

const pageHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>
<style>
body { margin: 0; font-family: system-ui, sans-serif; background: #f1f5f9; color: #0f172a; }
header { display: flex; align-items: center; gap: 16px; padding: 12px 24px; background: #fff; border-bottom: 1px solid #e2e8f0; }
header img { height: 40px; }
header h1 { font-size: 20px; margin: 0; flex: 1; }
header .updated { font-size: 13px; color: #64748b; }
.layout { display: flex; }
aside { width: 260px; padding: 16px; background: #fff; border-right: 1px solid #e2e8f0; min-height: calc(100vh - 65px); }
aside label { display: block; font-size: 13px; font-weight: 600; margin: 12px 0 4px; }
aside select { width: 100%; }
aside .actions { margin-top: 16px; display: flex; gap: 8px; }
main { flex: 1; padding: 16px 24px; }
.panel { background: #fff; border: 1px solid #e2e8f0; border-radius: 8px; padding: 16px; margin-bottom: 16px; }
.error { border-color: #fca5a5; background: #fef2f2; }
.cards { display: grid; grid-template-columns: repeat(4, 1fr); gap: 12px; }
.card { background: #fff; border: 1px solid #e2e8f0; border-radius: 8px; padding: 12px; }
.card .label { font-size: 12px; color: #64748b; }
.card .value { font-size: 22px; font-weight: 700; }
.card .window { font-size: 11px; color: #94a3b8; }
.up { color: #16a34a; } .down { color: #dc2626; } .flat { color: #64748b; }
.charts { display: grid; grid-template-columns: 1fr 1fr; gap: 12px; }
.filters span { display: inline-block; background: #e2e8f0; border-radius: 4px; padding: 2px 6px; margin: 2px; font-size: 12px; }
table { width: 100%; border-collapse: collapse; font-size: 12px; }
th, td { border-bottom: 1px solid #e2e8f0; padding: 4px 6px; text-align: left; }
.note { font-size: 12px; color: #64748b; }
</style>
</head>
<body>
<header>
  {{if .LogoURL}}<img src="{{.LogoURL}}" alt="logo">{{end}}
  <h1>{{.Title}}</h1>
  {{if .LastUpdated}}<span class="updated">Atualizado em {{.LastUpdated}}</span>{{end}}
  <form method="post" action="/api/reload?redirect=1"><button type="submit">Recarregar dados</button></form>
</header>
{{if .Error}}
<main>
  <div class="panel error">
    <h2>Não foi possível carregar os dados</h2>
    <p>{{.Error.Message}}</p>
    <p class="note">Código: {{.Error.Kind}}</p>
  </div>
</main>
{{else}}
<div class="layout">
<aside>
  <form method="get" action="/">
  {{range .Widgets}}
    <label for="f-{{.Key}}">{{.Label}}</label>
    <select id="f-{{.Key}}" name="{{.Key}}" multiple size="4">
    {{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>
  {{end}}
  <div class="actions">
    <button type="submit">Aplicar</button>
    <a href="/">Limpar</a>
  </div>
  </form>
</aside>
<main>
  {{if .Active}}
  <div class="panel filters">
    {{range .Active}}<strong>{{.Label}}:</strong> {{range .Values}}<span>{{.}}</span>{{end}} {{end}}
  </div>
  {{end}}
  {{if .Empty}}
  <div class="panel"><p>Nenhum pedido corresponde aos filtros selecionados.</p></div>
  {{end}}
  {{range .Groups}}
  <div class="panel">
    <h3>{{.Name}}</h3>
    <div class="cards">
    {{range .Cards}}<div class="card"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>{{end}}
    </div>
  </div>
  {{end}}
  {{if .Comparisons}}
  <div class="panel">
    <h3>Comparativos</h3>
    <div class="cards">
    {{range .Comparisons}}
      <div class="card">
        <div class="label">{{.Label}}</div>
        <div class="value">{{.Current}}</div>
        <div class="{{.Change.Class}}">{{.Change.Text}}</div>
        <div class="window">{{.Window}} · anterior {{.Previous}}</div>
      </div>
    {{end}}
    </div>
  </div>
  {{end}}
  {{if not .Empty}}
  <div class="charts">
    {{with .Charts.Monthly}}<div class="panel">{{.}}</div>{{end}}
    {{with .Charts.YearlyCreated}}<div class="panel">{{.}}</div>{{end}}
    {{with .Charts.YearlyInvoiced}}<div class="panel">{{.}}</div>{{end}}
    {{with .Charts.TopFranchises}}<div class="panel">{{.}}</div>{{end}}
    {{with .Charts.TopSalespeople}}<div class="panel">{{.}}</div>{{end}}
    {{with .Charts.TopBrands}}<div class="panel">{{.}}</div>{{end}}
    {{with .Charts.BrandCategories}}<div class="panel">{{.}}</div>{{end}}
    {{with .Charts.Collections}}<div class="panel">{{.}}</div>{{end}}
  </div>
  {{end}}
  <div class="panel">
    <h3>Pedidos</h3>
    <p>
      <a href="/api/download/original">Arquivo original</a> ·
      <a href="/api/download/filtered.xlsx{{if .Query}}?{{.Query}}{{end}}">Dados filtrados (XLSX)</a> ·
      <a href="/api/download/filtered.csv{{if .Query}}?{{.Query}}{{end}}">Dados filtrados (CSV)</a>
    </p>
    {{if .Table.Truncated}}<p class="note">Exibindo as primeiras {{.Table.Shown}} de {{.Table.Total}} linhas.</p>{{end}}
    <table>
      <thead><tr>{{range .Table.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>
      {{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
      </tbody>
    </table>
  </div>
</main>
</div>
{{end}}
<footer class="note" style="padding: 8px 24px;">Gerado em {{now}}</footer>
</body>
</html>
`
