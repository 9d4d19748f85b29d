// Package main provides a tool to seed a board with test messages.
//
// Messages go through the same services as the HTTP handlers, so tags are
// created with palette colors and the retention cap is enforced.
//
// Usage:
//
//	go run ./cmd/seed
//	go run ./cmd/seed -n 300 -data-dir /tmp/board -replies 2
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/listenupapp/board-server/internal/color"
	"github.com/listenupapp/board-server/internal/config"
	"github.com/listenupapp/board-server/internal/service"
	"github.com/listenupapp/board-server/internal/store/sqlite"
)

var (
	count       = flag.Int("n", 200, "Number of messages to create")
	dataDir     = flag.String("data-dir", "", "Data directory (default: $DATA_DIR or ~/"+config.DefaultDataDirName+")")
	maxTags     = flag.Int("max-tags", 3, "Maximum tags per message")
	maxReplies  = flag.Int("replies", 0, "Maximum replies per message")
	maxMessages = flag.Int("max-messages", config.DefaultMaxMessages, "Retention cap applied while seeding")
)

var tagPool = []string{
	"general", "random", "ops", "release", "bug", "idea", "question",
	"meeting", "lunch", "deploy", "docs", "design", "test", "urgent", "fyi",
}

var words = strings.Fields(`
	the board keeps a short history of messages with tags search and replies
	deploy finished without errors please check the staging environment
	who has the keys for the meeting room on the third floor today
	lunch order goes out at noon add yours before eleven thirty
	reminder the backup job runs nightly and rotates old snapshots
	new release notes are in the docs folder feedback welcome
`)

func main() {
	flag.Parse()

	dir, err := config.ResolveDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create data dir: %v", err)
	}

	dbPath := config.StorageConfig{DataDir: dir}.DBPath()
	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	limits := service.BoardLimits{
		PageSize:    config.DefaultPageSize,
		MaxMessages: *maxMessages,
		MaxPages:    config.DerivedMaxPages(*maxMessages, config.DefaultPageSize),
	}
	tags := service.NewTagService(s, color.Random, nil, logger)
	messages := service.NewMessageService(s, tags, limits, nil, logger)
	replies := service.NewReplyService(s, nil, logger)

	ctx := context.Background()
	var created, replied int

	for i := range *count {
		m, err := messages.CreateMessage(ctx, sentence(8, 30), pickTags(*maxTags))
		if err != nil && m == nil {
			log.Fatalf("Failed to create message %d: %v", i, err)
		}
		if err != nil {
			log.Printf("Retention failed after message %d: %v", m.ID, err)
		}
		created++

		for range rand.IntN(max(*maxReplies, 0) + 1) {
			if _, err := replies.CreateReply(ctx, fmt.Sprint(m.ID), sentence(3, 12)); err != nil {
				log.Printf("Failed to reply to message %d: %v", m.ID, err)
				continue
			}
			replied++
		}
	}

	total, err := messages.TotalCount(ctx)
	if err != nil {
		log.Fatalf("Failed to count messages: %v", err)
	}

	fmt.Printf("Created %d messages and %d replies; board now holds %d messages\n", created, replied, total)
}

func sentence(minWords, maxWords int) string {
	n := minWords + rand.IntN(maxWords-minWords+1)
	out := make([]string, n)
	for i := range out {
		out[i] = words[rand.IntN(len(words))]
	}
	out[0] = strings.ToUpper(out[0][:1]) + out[0][1:]
	return strings.Join(out, " ") + "."
}

func pickTags(limit int) []string {
	if limit <= 0 {
		return nil
	}
	n := rand.IntN(min(limit, len(tagPool)) + 1)
	picked := make([]string, 0, n)
	for _, i := range rand.Perm(len(tagPool))[:n] {
		picked = append(picked, tagPool[i])
	}
	return picked
}
