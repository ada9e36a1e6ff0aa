package report

import "html/template"

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} — {{.GeneratedOn}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; margin: 0 auto; max-width: 1240px; padding: 24px; color: #1c1c1c; }
h1, h2 { text-align: center; }
h3.headline { text-align: center; font-weight: normal; color: #444; }
.meta { text-align: center; color: #777; font-size: 0.9em; margin-bottom: 32px; }
.notice { margin: 64px auto; max-width: 640px; padding: 24px; border: 1px solid #d0a000; background: #fff8e0; text-align: center; }
table.stats { margin: 0 auto 32px; border-collapse: collapse; }
table.stats td { padding: 6px 16px; border-bottom: 1px solid #eee; }
table.stats td:first-child { color: #666; }
.chart { margin: 32px 0; text-align: center; }
table.detail { width: 100%; border-collapse: collapse; font-size: 0.92em; }
table.detail th, table.detail td { padding: 6px 10px; border-bottom: 1px solid #eee; text-align: right; }
table.detail th:first-child, table.detail td:first-child { text-align: left; }
.pos { color: #1a7a32; }
.neg { color: #b2241c; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Vault: {{.Meta.VaultURL}} · Generated {{.Meta.GeneratedAt.Format "2006-01-02 15:04 MST"}}</p>
{{if .Insufficient}}
<div class="notice">
<h2>Insufficient data</h2>
<p>Only {{.DataPoints}} committed snapshot(s) so far. Performance analytics need at least two days of history; collect again tomorrow.</p>
</div>
{{else}}
<h3 class="headline">{{.Headline}}</h3>
<table class="stats">
{{range .Stats}}<tr><td>{{index . 0}}</td><td>{{index . 1}}</td></tr>
{{end}}</table>
{{range .Charts}}
<div class="chart"><h2>{{.Title}}</h2>{{.SVG}}</div>
{{end}}
<h2>Daily detail</h2>
<table class="detail">
<tr><th>Date</th><th>Daily PnL</th><th>Cumulative PnL</th><th>Period return</th><th>Drawdown</th></tr>
{{range .Rows}}<tr><td>{{.Date}}</td><td class="{{.DailyClass}}">{{.DailyPnL}}</td><td class="{{.CumClass}}">{{.CumPnL}}</td><td>{{.PeriodReturn}}</td><td>{{.Drawdown}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>
`))
