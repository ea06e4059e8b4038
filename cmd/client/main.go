// Консольный клиент подсистемы связей: опрашивает Connection Service
// от имени вьювера и печатает уведомления и алерты.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careconnect_backend/internal/config"
	"careconnect_backend/internal/connect"
	"careconnect_backend/internal/logger"
	"careconnect_backend/internal/models"
)

func main() {
	var (
		baseURL = flag.String("server", "http://localhost:4000", "адрес Connection Service")
		token   = flag.String("token", os.Getenv("CARECONNECT_TOKEN"), "JWT вьювера")
		userID  = flag.String("user", "", "id вьювера")
		role    = flag.String("role", "candidate", "роль вьювера: candidate | employer")
	)
	flag.Parse()

	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	if *token == "" || *userID == "" {
		fmt.Fprintln(os.Stderr, "требуются -token и -user")
		os.Exit(2)
	}

	viewer := connect.NewViewerContext(*userID, models.UserRole(*role))

	store, err := connect.NewSuppressionStore(cfg.Client.StateDir, viewer)
	if err != nil {
		logger.Fatal("Failed to load suppression store", "error", err)
	}

	api := connect.NewHTTPConnectionAPI(*baseURL, *token)
	poller := connect.NewPoller(api, viewer, store, cfg.PollInterval(), cfg.AlertTTL())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller.Start(ctx)
	defer poller.Stop()

	logger.Info("Client started", "viewer", *userID, "role", *role, "interval", cfg.PollInterval())

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Client stopped")
			return
		case alert := <-poller.Alerts():
			fmt.Printf("\n*** %s ***\n", alert.Notification.Message)
		case <-ticker.C:
			printSnapshot(poller)
		}
	}
}

func printSnapshot(poller *connect.Poller) {
	snapshot := poller.Snapshot()
	if len(snapshot) == 0 {
		return
	}

	fmt.Printf("\n--- Уведомления (%d) ---\n", len(snapshot))
	for _, n := range snapshot {
		fmt.Printf("[%s] %s  %s\n", n.Status, n.CreatedAt.Format("02.01 15:04"), n.Message)
	}
	poller.MarkSeen()
}
