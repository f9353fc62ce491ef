// README: One-shot CLI that sends a message through the fully wired router.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/1234620/Travel-Based-Chatbot/internal/app"
	"github.com/1234620/Travel-Based-Chatbot/internal/config"
	"github.com/1234620/Travel-Based-Chatbot/internal/logger"
)

func main() {
	userID := flag.String("user", "demo", "user id recorded with the turns")
	flag.Parse()

	message := strings.Join(flag.Args(), " ")
	if message == "" {
		message = "Find hotels in Paris for 2024-02-01 to 2024-02-05"
	}
	if err := run(message, *userID); err != nil {
		log.Fatal(err)
	}
}

func run(message, userID string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.Log.Level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	ctx := context.Background()
	a, err := app.Build(ctx, cfg, lg)
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}
	defer a.Close()

	fmt.Printf("User: %s\n\n", message)
	resp := a.Router.ProcessMessage(ctx, message, userID)
	fmt.Printf("Assistant:\n%s\n\n", resp.Response)

	if resp.IntentAnalysis != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		fmt.Println("Intent analysis:")
		if err := enc.Encode(resp.IntentAnalysis); err != nil {
			return err
		}
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	return nil
}
