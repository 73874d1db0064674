package report

import (
	"strings"
	"testing"
	"time"

	"nexcrm/internal/core"
)

func TestGenerate(t *testing.T) {
	meetings := []core.Meeting{
		{ID: "m1", Title: "Tontine Hebdo", Location: "Douala", Frequency: core.Weekly},
	}
	payments := []core.Payment{
		{
			ID: "p1", MeetingID: "m1", Amount: core.Money{Francs: 50000},
			Status: core.StatusPaid, Date: core.NewDate(2024, 6, 1),
			PayerName: "Jean Mballa", Method: core.MethodCash, ReceiptNumber: "REC-001",
		},
		{
			ID: "p2", MeetingID: "m1", Amount: core.Money{Francs: 25000},
			Status: core.StatusPending, Date: core.NewDate(2024, 6, 3),
			PayerName: "Sarah Nkomo", Method: core.MethodMobileMoney, ReceiptNumber: "REC-002",
		},
	}

	out, err := Generate(payments, meetings, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"50.000 FCFA",
		"25.000 FCFA",
		"Douala",
		"Jean Mballa",
		"Sarah Nkomo",
		"10/06/2024",
		"Rapport Exécutif",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestGenerateRecentOrderAndLimit(t *testing.T) {
	payments := make([]core.Payment, 0, 20)
	for i := 0; i < 20; i++ {
		payments = append(payments, core.Payment{
			ID:        string(rune('a' + i)),
			MeetingID: "m1",
			Amount:    core.Money{Francs: int64(1000 * (i + 1))},
			Status:    core.StatusPaid,
			Date:      core.NewDate(2024, 6, 1+i),
			PayerName: "Payer",
			Method:    core.MethodCash,
		})
	}

	out, err := Generate(payments, nil, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	html := string(out)

	// The newest payment appears, the oldest five do not.
	if !strings.Contains(html, "2024-06-20") {
		t.Error("newest payment missing")
	}
	if strings.Contains(html, "2024-06-05") {
		t.Error("payment beyond the recent window present")
	}
	if strings.Index(html, "2024-06-20") > strings.Index(html, "2024-06-19") {
		t.Error("recent payments not newest-first")
	}
}

func TestGenerateEmpty(t *testing.T) {
	out, err := Generate(nil, nil, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(string(out), "0 FCFA") {
		t.Error("empty report should show zero totals")
	}
}
