package report

import (
	"bytes"
	"html/template"
)

// RenderHTML renders a report as a self-contained printable HTML document,
// the print-window target. Unreachable images degrade to the browser's broken
// image placeholder without affecting the rest of the document.
func RenderHTML(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, newHTMLReport(r)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type htmlBlock struct {
	Block
	Swatch template.CSS
	Badge  template.CSS
}

type htmlPage struct {
	Number int
	Blocks []htmlBlock
}

type htmlReport struct {
	Title       string
	GeneratedAt string
	Pages       []htmlPage
	TotalPages  int
}

func newHTMLReport(r *Report) htmlReport {
	out := htmlReport{
		Title:       r.Title,
		GeneratedAt: r.GeneratedAt.Format("1/2/2006, 3:04:05 PM"),
		TotalPages:  len(r.Pages),
	}
	for _, p := range r.Pages {
		hp := htmlPage{Number: p.Number}
		for _, b := range p.Blocks {
			hb := htmlBlock{Block: b, Badge: template.CSS(b.Status.ColorHex)}
			if b.SwatchHex != "" {
				hb.Swatch = template.CSS(b.SwatchHex)
			}
			hp.Blocks = append(hp.Blocks, hb)
		}
		out.Pages = append(out.Pages, hp)
	}
	return out
}

var printTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1F2937; background: #F9FAFB; margin: 0; }
  .page { padding: 28px; page-break-after: always; }
  .page:last-child { page-break-after: auto; }
  .header { display: flex; justify-content: space-between; border-bottom: 1px solid #E5E7EB; padding-bottom: 8px; margin-bottom: 16px; }
  .title { font-size: 20px; font-weight: bold; }
  .subtitle { font-size: 10px; color: #6B7280; }
  .card { background: #FFFFFF; border: 1px solid #E5E7EB; border-radius: 8px; padding: 16px; margin-bottom: 14px; }
  .card h3 { margin: 0 0 10px; font-size: 14px; }
  .row { display: flex; margin-bottom: 6px; }
  .label { font-weight: bold; color: #374151; width: 30%; }
  .value { width: 68%; }
  .badge { color: #fff; font-size: 10px; padding: 2px 8px; border-radius: 12px; }
  .swatch { display: inline-block; width: 50px; height: 18px; border: 1px solid #9CA3AF; border-radius: 4px; vertical-align: middle; }
  .images { display: flex; flex-wrap: wrap; gap: 8px; margin-top: 12px; border-top: 1px solid #E5E7EB; padding-top: 12px; }
  .images img { width: 140px; height: 100px; object-fit: cover; border: 1px solid #E5E7EB; border-radius: 6px; }
  .placeholder { color: #6B7280; font-style: italic; }
  .footer { text-align: center; color: #9CA3AF; font-size: 9px; margin-top: 16px; }
</style>
</head>
<body>
{{- $total := .TotalPages }}
{{- $generated := .GeneratedAt }}
{{- $title := .Title }}
{{- range .Pages }}
<div class="page">
  <div class="header">
    <span class="title">{{$title}}</span>
    <span class="subtitle">Generated on {{$generated}}</span>
  </div>
  {{- range .Blocks }}
  <div class="card">
    {{- if .Placeholder }}
    <p class="placeholder">{{.Placeholder}}</p>
    {{- else }}
    <h3>{{.Index}}. {{.Title}}</h3>
    {{- range .Rows }}
    <div class="row"><span class="label">{{.Label}}:</span><span class="value">{{.Value}}</span></div>
    {{- end }}
    <div class="row"><span class="label">Colour:</span><span class="swatch"{{if .Swatch}} style="background: {{.Swatch}};"{{end}}></span></div>
    <div class="row"><span class="label">Status:</span><span class="badge" style="background: {{.Badge}};">{{.Status.Label}}</span></div>
    {{- if .ImageURLs }}
    <div class="images">
      {{- range .ImageURLs }}
      <img src="{{.}}" alt="">
      {{- end }}
    </div>
    {{- end }}
    {{- end }}
  </div>
  {{- end }}
  <div class="footer">Page {{.Number}} of {{$total}}</div>
</div>
{{- end }}
</body>
</html>
`))
