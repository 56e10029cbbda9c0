package alerts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mamadbah2/vertical-farm/internal/config"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

func TestSendAlert(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(config.AlertsConfig{WebhookURL: srv.URL, Threshold: 90})
	alert := models.UtilizationAlert{
		ContainerID:           "c-1",
		Area:                  models.AreaNurseryStation,
		UtilizationPercentage: 95,
		Threshold:             90,
		Date:                  "2025-06-15",
		Message:               "Nursery station at 95%",
	}
	if err := client.SendAlert(context.Background(), alert); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Text != alert.Message || got.Alert.ContainerID != "c-1" || got.Alert.UtilizationPercentage != 95 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestSendAlertReportsReceiverError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"channel archived"}`))
	}))
	defer srv.Close()

	client := NewClient(config.AlertsConfig{WebhookURL: srv.URL})
	err := client.SendAlert(context.Background(), models.UtilizationAlert{ContainerID: "c-1"})
	if err == nil || !strings.Contains(err.Error(), "channel archived") || !strings.Contains(err.Error(), "status=400") {
		t.Errorf("unexpected error: %v", err)
	}
}
