package report

import "html/template"

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1a1a1a; }
h1 { font-size: 1.4rem; }
.meta { color: #666; font-size: 0.85rem; margin-bottom: 1.5rem; }
details { border: 1px solid #ddd; border-radius: 6px; margin-bottom: 0.75rem; }
summary { cursor: pointer; padding: 0.6rem 0.9rem; font-family: ui-monospace, monospace; font-size: 0.9rem; }
summary:hover { background: #f6f6f6; }
.body-section { padding: 0 0.9rem 0.9rem; }
.status { display: inline-block; min-width: 3ch; font-weight: 600; }
.status.ok { color: #1a7f37; }
.status.client-error { color: #bf8700; }
.status.server-error { color: #cf222e; }
.status.orphan { color: #8250df; }
.note { color: #8250df; font-style: italic; }
table.headers { border-collapse: collapse; font-size: 0.8rem; margin: 0.4rem 0; }
table.headers td { border: 1px solid #eee; padding: 0.15rem 0.5rem; font-family: ui-monospace, monospace; }
pre { background: #f6f8fa; border-radius: 6px; padding: 0.75rem; overflow-x: auto; font-size: 0.8rem; }
h3 { font-size: 0.85rem; margin: 0.75rem 0 0.25rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.Count}} exchange(s) &middot; generated {{.GeneratedAt}}</p>
{{range .Exchanges}}
<details>
<summary>
#{{.Seq}} <span class="status {{.StatusClass}}">{{.Status}}</span>
{{.Method}} {{.Target}}
<span class="meta">{{.RequestTime}}</span>
{{if .Note}}<span class="note">{{.Note}}</span>{{end}}
</summary>
<div class="body-section">
<h3>Request headers</h3>
<table class="headers">
{{range $name, $value := .ReqHeaders}}<tr><td>{{$name}}</td><td>{{$value}}</td></tr>
{{end}}</table>
{{if .RequestBody}}<h3>Request body</h3>
<pre>{{.RequestBody}}</pre>{{end}}
{{if .RespHeaders}}<h3>Response headers</h3>
<table class="headers">
{{range $name, $value := .RespHeaders}}<tr><td>{{$name}}</td><td>{{$value}}</td></tr>
{{end}}</table>{{end}}
{{if .ResponseBody}}<h3>Response body</h3>
<pre>{{.ResponseBody}}</pre>{{end}}
</div>
</details>
{{end}}
</body>
</html>
`
