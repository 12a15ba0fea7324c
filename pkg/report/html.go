package report

import (
	"html/template"
	"io"
)

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Soil analysis report</title></head>
<body>
<h1>Soil analysis report</h1>
<p class="generated">Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}{{if .Field}} for <span class="field">{{.Field}}</span>{{end}}</p>

<h2>Soil data</h2>
<table id="soil-data">
<tr><th>Nitrogen</th><td>{{printf "%.2f" .SoilData.Nitrogen}}</td></tr>
<tr><th>Phosphorus</th><td>{{printf "%.2f" .SoilData.Phosphorus}}</td></tr>
<tr><th>Potassium</th><td>{{printf "%.2f" .SoilData.Potassium}}</td></tr>
<tr><th>pH</th><td>{{printf "%.2f" .SoilData.PH}}</td></tr>
<tr><th>Temperature (°C)</th><td>{{printf "%.2f" .SoilData.TemperatureC}}</td></tr>
<tr><th>Humidity (%)</th><td>{{printf "%.2f" .SoilData.HumidityPct}}</td></tr>
<tr><th>Rainfall (mm)</th><td>{{printf "%.2f" .SoilData.RainfallMM}}</td></tr>
</table>

<h2>Fertility</h2>
<table id="fertility">
<tr><th>pH</th><td>{{.Analysis.Fertility.PH}}</td></tr>
<tr><th>Nitrogen</th><td>{{.Analysis.Fertility.Nitrogen}}</td></tr>
<tr><th>Phosphorus</th><td>{{.Analysis.Fertility.Phosphorus}}</td></tr>
<tr><th>Potassium</th><td>{{.Analysis.Fertility.Potassium}}</td></tr>
<tr class="overall"><th>Overall</th><td>{{.Analysis.Fertility.Overall}}</td></tr>
</table>

<h2>Irrigation</h2>
<p id="irrigation"><span class="score">{{.Analysis.Irrigation.Score}}</span>/5: {{.Analysis.Irrigation.Description}}</p>

<h2>Recommended crops</h2>
<ul id="crops">{{range .Analysis.RecommendedCrops}}
<li>{{.}}</li>{{end}}
</ul>

<h2>Improvements</h2>
<ol id="improvements">{{range .Analysis.ImprovementSuggestions}}
<li>{{.}}</li>{{end}}
</ol>
{{if .Narrative}}
<h2>Summary</h2>
<pre id="narrative">{{.Narrative}}</pre>
{{end}}
</body>
</html>
`))

func renderHTML(w io.Writer, d Document) error { return page.Execute(w, d) }
