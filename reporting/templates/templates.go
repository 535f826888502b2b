package templates

import "html/template"

//ReportingInfo fills the templates listed in html/template
type ReportingInfo struct {
	Title  string
	Source string
	Chart  string
	Writer template.HTML
}

var homeHeader = `
<head>
<meta content="text/html;charset=utf-8" http-equiv="Content-Type">
<meta content="utf-8" http-equiv="encoding">
<title>{{.Title}}</title>
<link rel="stylesheet" type="text/css" href="./style.css">
</head>
<ul>
  <li><a href="./index.html">flowmon</a></li>
  <li><a href="./index.html">{{.Title}}</a></li>
</ul>
`

// Hometempl lists one summary row per simulation and embeds the chart
var Hometempl = homeHeader + `
<div class="info">Select a simulation to view its individual flows.</div>
<div class="container">
  <table>
    <tr><th>Nodes</th><th>Clients</th><th>Lost Clients</th><th>Lost Client Ratio (%)</th><th>Total TX Packets</th><th>Total RX Packets</th><th>Total Lost Packets</th><th>Packet Loss Rate (%)</th><th>Avg Throughput (Kbps)</th></tr>
      {{.Writer}}
  </table>
</div>
{{if .Chart}}
<div class="chart">
  <img src="{{.Chart}}" alt="{{.Title}}">
</div>
{{end}}
`

// SimulationTempl lists the per flow metrics of a single simulation
var SimulationTempl = homeHeader + `
<div class="info">Flows recorded in {{.Source}}</div>
<div class="container">
  <table>
    <tr><th>Flow</th><th>TX Packets</th><th>RX Packets</th><th>Lost Packets</th><th>TX Bytes</th><th>RX Bytes</th><th>Duration (s)</th><th>Throughput (Kbps)</th><th>Avg Delay (ms)</th></tr>
      {{.Writer}}
  </table>
</div>
`
