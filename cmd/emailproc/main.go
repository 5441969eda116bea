// Command emailproc runs a single email through the classification and
// extraction pipeline and prints the result as JSON. Useful for prompt
// tuning without a running server or database.
//
// Usage:
//
//	emailproc -subject "New order" -sender buyer@example.com email.txt
//	cat email.txt | emailproc -subject "New order"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ordermate/ordermate/internal/email"
	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/llm/gemini"
)

// printStore reports created orders to stdout instead of persisting them.
type printStore struct{}

func (printStore) CreateOrder(_ context.Context, o *entity.Order) (*entity.Order, error) {
	return o, nil
}

func main() {
	_ = godotenv.Load()

	subject := flag.String("subject", "", "email subject")
	sender := flag.String("sender", "", "sender email address")
	model := flag.String("model", "", "Gemini model override")
	classifyOnly := flag.Bool("classify-only", false, "stop after classification")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	content, err := readEmail(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read email: %v\n", err)
		os.Exit(1)
	}
	if len(content) == 0 {
		fmt.Fprintln(os.Stderr, "empty email content")
		os.Exit(1)
	}

	gen := gemini.NewClient(gemini.Config{Model: *model}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *classifyOnly {
		classification := email.NewClassifier(gen, logger).Classify(ctx, string(content), *subject)
		printJSON(classification)
		return
	}

	processor := email.NewProcessor(logger, email.Config{},
		email.NewClassifier(gen, logger),
		email.NewExtractor(gen, logger),
		printStore{})

	result, err := processor.ProcessEmail(ctx, email.InboundEmail{
		Content:      string(content),
		Subject:      *subject,
		SenderEmail:  *sender,
		ReceivedDate: time.Now(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "process email: %v\n", err)
		os.Exit(1)
	}
	printJSON(result)
}

func readEmail(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
}
