package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/container"
	"github.com/saulo-duarte/quizdeck/internal/session"
	"github.com/saulo-duarte/quizdeck/internal/storage"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		mode    session.Mode
		want    int
		wantErr bool
	}{
		{name: "PracticeDefaultsToAll", raw: "", mode: session.ModePractice, want: 0},
		{name: "TestDefaultsToTestSize", raw: "", mode: session.ModeTest, want: 20},
		{name: "All", raw: "ALL", mode: session.ModeTest, want: 0},
		{name: "Number", raw: " 7 ", mode: session.ModePractice, want: 7},
		{name: "Negative", raw: "-1", mode: session.ModePractice, wantErr: true},
		{name: "Garbage", raw: "many", mode: session.ModePractice, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCount(tt.raw, tt.mode, 20)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCount(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseCount(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestOpenSessionsReadsSealedStore(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() { config.InitCrypto("") })

	cfg := &config.Config{
		DBPath:    filepath.Join(t.TempDir(), "quizdeck.db"),
		CryptoKey: "01234567890123456789012345678901",
	}

	app, err := container.New(ctx, cfg)
	if err != nil {
		t.Fatalf("container.New: %v", err)
	}
	started, err := app.QuizContainer.Controller.Start(ctx, session.ModePractice, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// a fresh process starts with encryption off
	if err := config.InitCrypto(""); err != nil {
		t.Fatalf("InitCrypto: %v", err)
	}

	raw, err := storage.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	e, err := raw.Get(ctx, "sessionData")
	raw.Close()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if strings.Contains(string(e.Value), started.Session().ID) {
		t.Fatal("session snapshot should be stored sealed")
	}

	svc, closeFn, err := openSessions(ctx, cfg)
	if err != nil {
		t.Fatalf("openSessions: %v", err)
	}
	defer closeFn()

	list := svc.List()
	if len(list) != 1 || list[0].ID != started.Session().ID {
		t.Errorf("expected the sealed session to be listed, got %+v", list)
	}
}
