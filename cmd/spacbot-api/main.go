// main is the entry point of the Spacbot API — the back end for the
// children's STEM-education site: program catalog, student
// registration, contact messages, and PDF payment receipts.
//
// STARTUP SEQUENCE:
//  1. Load a local .env file (optional, dev convenience)
//  2. Load configuration from a YAML file
//  3. Initialise the logger
//  4. Connect to (and set up) the SQLite database
//  5. Start the notification outbox worker
//  6. Register all HTTP routes
//  7. Start the HTTP server in a separate goroutine
//  8. Block the main goroutine until an OS signal arrives
//  9. Gracefully shut down: finish in-flight requests, drain the
//     outbox, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/spacbot-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/spacbot-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/spacbotltd/spacbot-api/internal/config"
	"github.com/spacbotltd/spacbot-api/internal/http/handlers/contact"
	"github.com/spacbotltd/spacbot-api/internal/http/handlers/program"
	receipthandler "github.com/spacbotltd/spacbot-api/internal/http/handlers/receipt"
	"github.com/spacbotltd/spacbot-api/internal/http/handlers/student"
	"github.com/spacbotltd/spacbot-api/internal/notify"
	"github.com/spacbotltd/spacbot-api/internal/receipt"
	"github.com/spacbotltd/spacbot-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load .env ──────────────────────────────────────────────────────
	// Local development keeps SMTP_PASSWORD and friends in a .env file
	// that is never committed. A missing file is fine: in production
	// the deployment populates the environment instead.
	_ = godotenv.Load()

	// ── 2. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and exits if anything is wrong.
	// The name "Must" signals: if this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 3. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21). Structured
	// logging writes key=value pairs rather than plain strings, making
	// logs easy to filter in aggregation tools.
	log := setupLogger(cfg.Env)

	log.Info("starting spacbot-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// Registration timestamps and receipt dates use the business zone.
	loc := cfg.Location()

	// ── 4. Initialise Storage (Database) ──────────────────────────────────
	// sqlite.New opens the SQLite file and creates the students and
	// contact_messages tables. The result is stored as the
	// storage.Storage INTERFACE, so the rest of the code never learns
	// which database it is talking to.
	store, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 5. Start the Notification Outbox ──────────────────────────────────
	// Registrations enqueue their two emails here; a background worker
	// delivers them with retry and backoff. Mail failures surface in
	// the logs, never in a registration response.
	mailer := notify.NewSMTPMailer(cfg.SMTP)
	outbox := notify.NewOutbox(mailer, log, cfg.SMTP.MaxAttempts, cfg.SMTP.RetryBackoff)

	log.Info("notification outbox started",
		slog.String("relay", cfg.SMTP.Host),
		slog.Int("max_attempts", cfg.SMTP.MaxAttempts),
	)

	// ── 6. Register HTTP Routes ───────────────────────────────────────────
	// The handler functions are FACTORIES — they receive their
	// dependencies and return the actual handler (closure pattern).
	//
	// Route table:
	//   GET  /api/programs        → list the program catalog
	//   GET  /api/programs/{name} → one catalog entry
	//   POST /api/students        → register a student
	//   GET  /api/students        → list all registrations
	//   GET  /api/students/{id}   → one registration by StudentID
	//   POST /api/contact         → store a contact message
	//   GET  /api/pricing         → the two-tier fee table
	//   POST /api/receipts        → render a receipt PDF
	pricing := receipt.Pricing{
		Below13:     cfg.Pricing.Below13,
		AtOrAbove13: cfg.Pricing.AtOrAbove13,
	}

	router := http.NewServeMux()

	router.HandleFunc("GET /api/programs", program.GetList())
	router.HandleFunc("GET /api/programs/{name}", program.GetByName())
	router.HandleFunc("POST /api/students", student.New(store, outbox, cfg.SMTP.AdminRecipient(), loc))
	router.HandleFunc("GET /api/students", student.GetList(store))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(store))
	router.HandleFunc("POST /api/contact", contact.New(store, loc))
	router.HandleFunc("GET /api/pricing", receipthandler.Pricing(pricing))
	router.HandleFunc("POST /api/receipts", receipthandler.New(pricing, loc))

	// ── 7. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		// Timeouts guard against slow clients holding connections open.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 8. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks; run it in its own goroutine so the
	// graceful-shutdown code below gets to run.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown()
		// is called — expected, not an error.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 9. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered channel of size 1 so the signal is not missed if main is
	// briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	// Give in-flight requests five seconds to finish, then drain the
	// outbox so queued notifications are not lost on a clean exit.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
	}

	outbox.Close()

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
