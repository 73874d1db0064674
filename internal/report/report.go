// Package report renders the executive financial report as a standalone
// printable HTML document.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"nexcrm/internal/core"
)

const recentLimit = 15

type cityRow struct {
	Name   string
	Amount string
}

type paymentRow struct {
	Date      string
	PayerName string
	Status    string
	Amount    string
}

type reportData struct {
	GeneratedAt  string
	TotalPaid    string
	TotalPending string
	Cities       []cityRow
	Recent       []paymentRow
}

// Generate renders the executive report from a snapshot of payments and
// meetings. The city table follows first-seen meeting order, the
// transaction history shows the most recent records first.
func Generate(payments []core.Payment, meetings []core.Meeting, now time.Time) ([]byte, error) {
	data := reportData{
		GeneratedAt:  now.Format("02/01/2006"),
		TotalPaid:    core.TotalByStatus(payments, core.StatusPaid).FormatFCFA(),
		TotalPending: core.TotalByStatus(payments, core.StatusPending).FormatFCFA(),
	}

	for _, c := range core.CityBreakdown(meetings, payments) {
		data.Cities = append(data.Cities, cityRow{
			Name:   c.City,
			Amount: c.Amount.FormatFCFA(),
		})
	}

	start := len(payments) - recentLimit
	if start < 0 {
		start = 0
	}
	for i := len(payments) - 1; i >= start; i-- {
		p := payments[i]
		data.Recent = append(data.Recent, paymentRow{
			Date:      p.Date.ISO(),
			PayerName: p.PayerName,
			Status:    string(p.Status),
			Amount:    p.Amount.FormatFCFA(),
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Rapport Exécutif NexCRM</title>
<style>
body { font-family: sans-serif; padding: 60px; color: #1e293b; line-height: 1.5; }
.header { display: flex; justify-content: space-between; align-items: center; border-bottom: 4px solid #4f46e5; padding-bottom: 20px; margin-bottom: 40px; }
.logo { font-size: 32px; font-weight: 900; color: #312e81; text-transform: uppercase; }
h1 { font-size: 24px; font-weight: 900; text-transform: uppercase; margin: 0; }
.meta { font-size: 11px; color: #64748b; font-weight: 700; text-transform: uppercase; }
.metrics-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; margin-bottom: 40px; }
.metric-card { background: #f8fafc; padding: 25px; border-radius: 20px; border: 1px solid #e2e8f0; }
.metric-label { font-size: 10px; font-weight: 900; text-transform: uppercase; color: #64748b; margin-bottom: 8px; }
.metric-value { font-size: 24px; font-weight: 900; color: #312e81; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; margin-bottom: 40px; border: 1px solid #e2e8f0; }
th { background: #f1f5f9; color: #475569; font-size: 10px; font-weight: 900; text-transform: uppercase; padding: 12px; text-align: left; }
td { padding: 12px; border-bottom: 1px solid #f1f5f9; font-size: 12px; font-weight: 600; }
.amount { font-family: monospace; font-weight: 900; color: #4f46e5; text-align: right; }
h2 { font-size: 14px; font-weight: 900; text-transform: uppercase; color: #64748b; border-bottom: 2px solid #e2e8f0; padding-bottom: 10px; margin-top: 30px; }
.footer { font-size: 9px; color: #94a3b8; text-align: center; font-weight: 800; text-transform: uppercase; letter-spacing: 2px; }
</style>
</head>
<body>
<div class="header">
<div class="logo">NexCRM</div>
<div style="text-align: right">
<h1>Rapport Exécutif Financier</h1>
<div class="meta">Généré le: {{.GeneratedAt}}</div>
</div>
</div>
<div class="metrics-grid">
<div class="metric-card">
<div class="metric-label">Volume Total Collecté</div>
<div class="metric-value">{{.TotalPaid}}</div>
</div>
<div class="metric-card">
<div class="metric-label">En Attente de Recouvrement</div>
<div class="metric-value">{{.TotalPending}}</div>
</div>
</div>
<h2>Répartition par Ville</h2>
<table>
<thead>
<tr><th>Localisation</th><th style="text-align: right">Montant Consolidé</th></tr>
</thead>
<tbody>
{{range .Cities}}<tr><td>{{.Name}}</td><td class="amount">{{.Amount}}</td></tr>
{{end}}</tbody>
</table>
<h2>Historique des Transactions Récentes</h2>
<table>
<thead>
<tr><th>Date</th><th>Contributeur</th><th>Statut</th><th style="text-align: right">Montant</th></tr>
</thead>
<tbody>
{{range .Recent}}<tr><td>{{.Date}}</td><td>{{.PayerName}}</td><td>{{.Status}}</td><td class="amount">{{.Amount}}</td></tr>
{{end}}</tbody>
</table>
<div class="footer">Document confidentiel à usage interne</div>
</body>
</html>
`))
