package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"dramahub/internal/feed"
)

// feed-tail follows the live activity feed over the raw TCP leg and renders
// each event as a human readable line. Use -json to see the wire format.

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP feed server address")
	raw := flag.Bool("json", false, "print raw JSON lines instead of formatted events")
	flag.Parse()

	for {
		if err := run(*addr, *raw); err != nil {
			log.Printf("[feed-tail] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, raw bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[feed-tail] connected to %s", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := sc.Bytes()

		if raw {
			fmt.Println(string(line))
			continue
		}

		var ev feed.Event
		if err := json.Unmarshal(line, &ev); err != nil || ev.Type == "" {
			fmt.Println(string(line))
			continue
		}
		fmt.Println(render(ev))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func render(ev feed.Event) string {
	ts := ev.At.Local().Format("15:04:05")
	show := ev.ShowTitle
	if show == "" {
		show = fmt.Sprintf("show #%d", ev.ShowID)
	}

	switch ev.Type {
	case feed.EventReviewCreated:
		return fmt.Sprintf("%s  %s reviewed %s (%d/10)", ts, ev.Username, show, ev.Rating)
	case feed.EventWatchlistUpdated:
		line := fmt.Sprintf("%s  %s marked %s as %s", ts, ev.Username, show, ev.Status)
		if ev.Rating > 0 {
			line += fmt.Sprintf(" (%d/10)", ev.Rating)
		}
		return line
	default:
		b, _ := json.Marshal(ev)
		return string(b)
	}
}
