// Command diagnose_feeds probes every configured RSS source and reports
// whether it responds, parses, and carries items. Useful when the digest
// suddenly thins out and you need to know which feed went dark.
//
// Usage:
//
//	go run scripts/diagnose_feeds.go [config.yaml]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	appconfig "neuradigest/internal/config"
)

// FeedDiagnostic represents the diagnostic result for a single feed.
type FeedDiagnostic struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Status        string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT"
	ItemCount     int    `json:"item_count"`
	LatestDate    string `json:"latest_date,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	ResponseTime  int64  `json:"response_time_ms"`
}

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := appconfig.LoadAppConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Diagnosing %d feed sources...\n", len(cfg.Feeds))

	client := &http.Client{Timeout: 30 * time.Second}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "NeuraDigest-Diagnostic/1.0"

	diagnostics := make([]FeedDiagnostic, 0, len(cfg.Feeds))
	for i, source := range cfg.Feeds {
		log.Printf("[%d/%d] Diagnosing: %s", i+1, len(cfg.Feeds), source.Name)
		diagnostics = append(diagnostics, diagnoseFeed(parser, source.Name, source.URL, 30*time.Second))

		// フィード側に優しく
		time.Sleep(500 * time.Millisecond)
	}

	printReport(diagnostics)
	writeJSONReport(diagnostics)
}

func diagnoseFeed(parser *gofeed.Parser, name, url string, timeout time.Duration) FeedDiagnostic {
	diag := FeedDiagnostic{Name: name, URL: url}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	feed, err := parser.ParseURLWithContext(url, ctx)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("Request timeout after %v", timeout)
		} else if _, ok := err.(gofeed.HTTPError); ok {
			diag.Status = "HTTP_ERROR"
			diag.ErrorMessage = err.Error()
		} else {
			diag.Status = "PARSE_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}

	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		diag.ErrorMessage = "Feed has no items"
		return diag
	}

	if first := feed.Items[0]; first.PublishedParsed != nil {
		diag.LatestDate = first.PublishedParsed.Format(time.RFC3339)
	} else {
		diag.LatestDate = first.Published
	}

	diag.Status = "OK"
	return diag
}

func printReport(diagnostics []FeedDiagnostic) {
	var okCount, errorCount int
	statusCount := make(map[string]int)
	for _, d := range diagnostics {
		statusCount[d.Status]++
		if d.Status == "OK" {
			okCount++
		} else {
			errorCount++
		}
	}

	fmt.Println("===============================================")
	fmt.Println("RSS Feed Diagnostic Report")
	fmt.Printf("Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("Total Sources: %d\n", len(diagnostics))
	fmt.Println("===============================================")
	fmt.Printf("  Working: %d\n", okCount)
	fmt.Printf("  Broken:  %d\n", errorCount)
	for status, count := range statusCount {
		fmt.Printf("  %s: %d\n", status, count)
	}
	fmt.Println()

	for _, d := range diagnostics {
		if d.Status == "OK" {
			fmt.Printf("[OK]   %-25s %3d items, latest %s (%dms)\n",
				d.Name, d.ItemCount, d.LatestDate, d.ResponseTime)
		} else {
			fmt.Printf("[%s] %-25s %s\n", d.Status, d.Name, d.ErrorMessage)
		}
	}
}

func writeJSONReport(diagnostics []FeedDiagnostic) {
	f, err := os.Create("feed_diagnostic_report.json")
	if err != nil {
		log.Printf("Failed to create JSON report: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close JSON report: %v", err)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(diagnostics); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}
	log.Println("JSON report written to feed_diagnostic_report.json")
}
