package client

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/h2non/gock"
)

const serviceURL = "http://profanity.local:8055"

func TestClient_Check(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr bool
	}{
		{name: "clean", status: http.StatusOK, want: false},
		{name: "profane", status: http.StatusUnprocessableEntity, want: true},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()

			gock.New(serviceURL).
				Post("/check").
				MatchHeader("Content-Type", "application/json").
				Reply(tt.status).
				JSON(map[string]any{"profane": tt.want, "profanities": []string{}})

			got, err := New(serviceURL).Check(context.Background(), "some text")
			if (err != nil) != tt.wantErr {
				t.Fatalf("want error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestClient_Censor(t *testing.T) {
	defer gock.Off()

	gock.New(serviceURL).
		Post("/censor").
		Reply(http.StatusOK).
		JSON(map[string]string{"text": "what the ****"})

	got, err := New(serviceURL + "/").Censor(context.Background(), "what the fuck")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "what the ****" {
		t.Errorf("want %q, got %q", "what the ****", got)
	}
}

func TestClient_Profanities(t *testing.T) {
	defer gock.Off()

	gock.New(serviceURL).
		Post("/profanities").
		Reply(http.StatusOK).
		JSON(map[string]any{"profane": true, "profanities": []string{"dick", "twat"}})

	got, err := New(serviceURL).Profanities(context.Background(), "dick twat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"dick", "twat"}; !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestClient_ProfanitiesNone(t *testing.T) {
	defer gock.Off()

	gock.New(serviceURL).
		Post("/profanities").
		Reply(http.StatusOK).
		JSON(map[string]any{"profane": false})

	got, err := New(serviceURL).Profanities(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("want empty non-nil slice, got %#v", got)
	}
}

func TestClient_StatusError(t *testing.T) {
	defer gock.Off()

	gock.New(serviceURL).
		Post("/censor").
		Reply(http.StatusBadRequest).
		BodyString("char must be a single character\n")

	_, err := New(serviceURL).Censor(context.Background(), "x")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want *StatusError, got %v", err)
	}
	if se.Code != http.StatusBadRequest || se.Msg != "char must be a single character" {
		t.Errorf("unexpected status error %+v", se)
	}
}

func TestClient_BadResponse(t *testing.T) {
	defer gock.Off()

	gock.New(serviceURL).
		Post("/profanities").
		Reply(http.StatusOK).
		BodyString("{not json")

	if _, err := New(serviceURL).Profanities(context.Background(), "x"); err == nil {
		t.Error("want decode error, got nil")
	}
}
