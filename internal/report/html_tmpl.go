package report

// htmlTemplate is the self-contained page for the html renderer. No
// external assets: the report must survive being mailed around as a single
// file.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Validation Report - {{.Table}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1a1a2e; }
  h1 { font-size: 1.4rem; }
  .meta { color: #666; font-size: 0.85rem; margin-bottom: 1.5rem; }
  .cards { display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 1.5rem; }
  .card { border: 1px solid #ddd; border-radius: 8px; padding: 1rem 1.5rem; min-width: 9rem; }
  .card .num { font-size: 1.6rem; font-weight: 700; }
  .card .label { color: #666; font-size: 0.8rem; text-transform: uppercase; }
  .verdict.good { color: #1a7f37; }
  .verdict.warn { color: #9a6700; }
  .verdict.bad { color: #cf222e; }
  table { border-collapse: collapse; width: 100%; font-size: 0.85rem; }
  th, td { border: 1px solid #ddd; padding: 0.4rem 0.6rem; text-align: left; }
  th { background: #f6f8fa; }
  tr:nth-child(even) { background: #fafbfc; }
</style>
</head>
<body>
<h1>Validation Report - {{.Table}}</h1>
<p class="meta">{{if .File}}{{.File}} · {{end}}generated {{.GeneratedAt}}</p>

<div class="cards">
  <div class="card"><div class="num">{{.Total}}</div><div class="label">Total Records</div></div>
  <div class="card"><div class="num">{{.Valid}}</div><div class="label">Valid</div></div>
  <div class="card"><div class="num">{{.Rejected}}</div><div class="label">Rejected</div></div>
  <div class="card"><div class="num">{{.TotalErrors}}</div><div class="label">Errors</div></div>
  <div class="card"><div class="num verdict {{.VerdictClass}}">{{printf "%.2f" .QualityScore}}%</div><div class="label">{{.Verdict}}</div></div>
</div>

{{if .ByType}}
<h2>Errors by Type</h2>
<table>
  <tr><th>Error Type</th><th>Count</th></tr>
  {{range .ByType}}<tr><td>{{.Type}}</td><td>{{.Count}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Errors}}
<h2>Error Detail</h2>
<table>
  <tr><th>Row</th><th>Column</th><th>Type</th><th>Message</th><th>Actual</th><th>Expected</th><th>Fix Recommendation</th></tr>
  {{range .Errors}}<tr><td>{{.Row}}</td><td>{{.Column}}</td><td>{{.Type}}</td><td>{{.Message}}</td><td>{{.Actual}}</td><td>{{.Expected}}</td><td>{{.Fix}}</td></tr>
  {{end}}
</table>
{{else}}
<p>No validation errors. All records passed schema conformance.</p>
{{end}}
</body>
</html>
`
