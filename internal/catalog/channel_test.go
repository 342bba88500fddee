package catalog_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Oktay2617/trvip6/internal/catalog"
)

func TestRecordDecodesFields(t *testing.T) {
	ch := catalog.NewChannel(json.RawMessage(`{"id": 42, "name": " ABC ", "country": "US", "logo": "x"}`))
	rec, err := ch.Record()
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if rec.ID != "42" || !rec.HasID() {
		t.Fatalf("unexpected id: %q", rec.ID)
	}
	if got := rec.DisplayName("Unnamed Channel"); got != "ABC" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
	if got := rec.Group("Other Channels"); got != "US" {
		t.Fatalf("unexpected group: %q", got)
	}
}

func TestRecordAppliesFallbacksForAbsentKeys(t *testing.T) {
	rec, err := catalog.NewChannel(json.RawMessage(`{"id": "abc"}`)).Record()
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if rec.Name != nil || rec.Country != nil {
		t.Fatalf("expected absent optional fields, got %+v", rec)
	}
	if got := rec.DisplayName("Unnamed Channel"); got != "Unnamed Channel" {
		t.Fatalf("unexpected fallback name: %q", got)
	}
	if got := rec.Group("Other Channels"); got != "Other Channels" {
		t.Fatalf("unexpected fallback group: %q", got)
	}
}

func TestRecordIDTruthiness(t *testing.T) {
	tests := []struct {
		raw    string
		wantID string
	}{
		{`{"id": 1735806851}`, "1735806851"},
		{`{"id": "1735806851"}`, "1735806851"},
		{`{"id": 1.5}`, "1.5"},
		{`{"id": 1.50}`, "1.5"},
		{`{"id": 1e2}`, "100.0"},
		{`{"id": 12.0}`, "12.0"},
		{`{"id": 1e16}`, "1e+16"},
		{`{"id": 0.00001}`, "1e-05"},
		{`{"id": 1E400}`, "inf"},
		{`{"id": -1E400}`, "-inf"},
		{`{"id": -7}`, "-7"},
		{`{"id": true}`, "True"},
		{`{}`, ""},
		{`{"id": null}`, ""},
		{`{"id": ""}`, ""},
		{`{"id": 0}`, ""},
		{`{"id": 0.0}`, ""},
		{`{"id": -0}`, ""},
		{`{"id": 1e-400}`, ""},
		{`{"id": false}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rec, err := catalog.NewChannel(json.RawMessage(tt.raw)).Record()
			if err != nil {
				t.Fatalf("Record returned error: %v", err)
			}
			if rec.ID != tt.wantID {
				t.Fatalf("got id %q want %q", rec.ID, tt.wantID)
			}
			if rec.HasID() != (tt.wantID != "") {
				t.Fatalf("HasID mismatch for %q", rec.ID)
			}
		})
	}
}

func TestRecordFaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"array entry", `[1, 2]`, "not a JSON object"},
		{"string entry", `"channel"`, "not a JSON object"},
		{"null entry", `null`, "not a JSON object"},
		{"composite id", `{"id": {"v": 1}}`, "id:"},
		{"null name", `{"id": 1, "name": null}`, "name:"},
		{"numeric name", `{"id": 1, "name": 5}`, "name:"},
		{"list country", `{"id": 1, "country": ["US"]}`, "country:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.NewChannel(json.RawMessage(tt.raw)).Record()
			if err == nil {
				t.Fatal("expected decode fault")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestChannelStringIsCompact(t *testing.T) {
	ch := catalog.NewChannel(json.RawMessage("{\n  \"name\": \"NoID\"\n}"))
	if got := ch.String(); got != `{"name":"NoID"}` {
		t.Fatalf("unexpected compact form: %q", got)
	}
}
