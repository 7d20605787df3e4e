package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskbot/internal/bot"
	"taskbot/internal/command"
	"taskbot/internal/config"
	"taskbot/internal/export"
	"taskbot/internal/server"
	"taskbot/internal/store"
	"taskbot/pkg/events"
)

func main() {
	mode := flag.String("mode", "bot", "bot|server|export|help")
	mem := flag.Bool("mem", false, "use the in-memory store instead of MySQL")
	userID := flag.Int64("user", 0, "user id (export mode)")
	format := flag.String("format", "json", "export format: json|csv|pdf")
	out := flag.String("out", "tasks.json", "export output path")
	flag.Parse()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg, *mem)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	switch *mode {
	case "bot":
		if cfg.BotToken == "" {
			log.Fatal("BOT_TOKEN is required in bot mode")
		}
		h := command.New(st, events.Noop{})
		b, err := bot.New(cfg.BotToken, h)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}
		if err := b.Run(ctx); err != nil && err != context.Canceled {
			log.Fatalf("bot: %v", err)
		}

	case "server":
		srv := server.New(st)
		if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
			log.Fatalf("server: %v", err)
		}

	case "export":
		ex := export.NewExporter(st)
		b, err := ex.Export(ctx, *userID, *format)
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		if err := os.WriteFile(*out, b, 0644); err != nil {
			log.Fatalf("write: %v", err)
		}
		fmt.Printf("Exported -> %s\n", *out)

	default:
		fmt.Println("Usage examples:")
		fmt.Println("  go run ./cmd --mode bot")
		fmt.Println("  go run ./cmd --mode server")
		fmt.Println("  go run ./cmd --mode export --user 123456 --format pdf --out ./tasks.pdf")
	}
}

func openStore(cfg config.Config, mem bool) (store.Store, error) {
	if mem {
		return store.NewMemory(), nil
	}
	return store.NewMySQL(cfg.StoreDSN)
}
