package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/blackmichael/instaapp/internal/activity"
	"github.com/blackmichael/instaapp/internal/client"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		apiURL   string
		username string
		password string
		cmd      string
		kind     string
		id       int64
		title    string
		content  string
		tags     string
		caption  string
		imageURL string
		videoURL string
		kinds    string
	)

	flag.StringVar(&apiURL, "api", envOrDefault("INSTAAPP_API", "http://localhost:3000"), "API base URL")
	flag.StringVar(&username, "username", envOrDefault("INSTAAPP_USERNAME", ""), "Account username")
	flag.StringVar(&password, "password", envOrDefault("INSTAAPP_PASSWORD", ""), "Account password")
	flag.StringVar(&cmd, "cmd", "", "Command: login, feed, post, story, like, unlike, follow, unfollow, watch")
	flag.StringVar(&kind, "kind", "post", "Like target kind: post, comment or story")
	flag.Int64Var(&id, "id", 0, "Target ID for like, unlike, follow and unfollow")
	flag.StringVar(&title, "title", "", "Post title")
	flag.StringVar(&content, "content", "", "Post content")
	flag.StringVar(&tags, "tags", "", "Comma-separated post hashtags")
	flag.StringVar(&caption, "caption", "", "Story caption")
	flag.StringVar(&imageURL, "image", "", "Image URL for a post or story")
	flag.StringVar(&videoURL, "video", "", "Video URL for a post or story")
	flag.StringVar(&kinds, "kinds", "", "Comma-separated event kinds to watch (default all)")
	flag.Parse()

	if username == "" || password == "" {
		return fmt.Errorf("--username and --password are required (or set INSTAAPP_USERNAME and INSTAAPP_PASSWORD)")
	}
	if cmd == "" {
		return fmt.Errorf("--cmd is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := client.NewClient(apiURL)
	if err := c.Login(ctx, username, password); err != nil {
		return err
	}

	switch cmd {
	case "login":
		fmt.Printf("Authenticated as profile %d\n", c.ProfileID())
		fmt.Println(c.Token())
		return nil

	case "feed":
		page, err := c.Feed(ctx, 0, "")
		if err != nil {
			return err
		}
		return printJSON(page)

	case "post":
		post, err := c.CreatePost(ctx, client.NewPost{
			Title:    title,
			Content:  content,
			ImageURL: imageURL,
			VideoURL: videoURL,
			Tags:     tags,
		})
		if err != nil {
			return err
		}
		return printJSON(post)

	case "story":
		story, err := c.CreateStory(ctx, client.NewStory{
			Caption:  caption,
			ImageURL: imageURL,
			VideoURL: videoURL,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Story %d expires at %s\n", story.ID, story.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		return nil

	case "like", "unlike":
		if id <= 0 {
			return fmt.Errorf("--id is required for %s", cmd)
		}
		var count int
		var err error
		if cmd == "like" {
			count, err = c.Like(ctx, kind, id)
		} else {
			count, err = c.Unlike(ctx, kind, id)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s %d now has %d likes\n", kind, id, count)
		return nil

	case "follow", "unfollow":
		if id <= 0 {
			return fmt.Errorf("--id is required for %s", cmd)
		}
		if cmd == "follow" {
			return c.Follow(ctx, id)
		}
		return c.Unfollow(ctx, id)

	case "watch":
		var filter []string
		if kinds != "" {
			filter = strings.Split(kinds, ",")
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		stream := client.NewStream(apiURL, c.Token(), filter, func(m *activity.Message) {
			printJSON(m)
		}, logger)
		if err := stream.Start(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
