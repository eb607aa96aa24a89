package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	sitebuilder "github.com/goliatone/go-site-builder"
	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/layout"
)

var errUsage = errors.New("usage: sitebuilder <upgrade|downgrade|bind|story|check> [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("sitebuilder: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "upgrade":
		return runUpgrade(args[1:], out)
	case "downgrade":
		return runDowngrade(args[1:], out)
	case "bind":
		return runBind(args[1:], out)
	case "story":
		return runStory(args[1:], out)
	case "check":
		return runCheck(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func runUpgrade(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("upgrade", flag.ContinueOnError)
	input := fs.String("in", "", "Path to the legacy layout configuration JSON")
	weddingID := fs.String("wedding", "", "Wedding ID owning the project")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*weddingID) == "" {
		return fmt.Errorf("wedding is required")
	}

	raw, err := readInput(*input)
	if err != nil {
		return err
	}
	cfg, err := layout.DecodeLayoutConfig(raw)
	if err != nil {
		return fmt.Errorf("decode layout config: %w", err)
	}
	return writeJSON(out, sitebuilder.Upgrade(*weddingID, cfg))
}

func runDowngrade(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("downgrade", flag.ContinueOnError)
	input := fs.String("in", "", "Path to the project JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	project, err := loadProject(*input)
	if err != nil {
		return err
	}
	return writeJSON(out, sitebuilder.Downgrade(project))
}

func runBind(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bind", flag.ContinueOnError)
	input := fs.String("in", "", "Path to the project JSON")
	dataPath := fs.String("data", "", "Path to the wedding content JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*dataPath) == "" {
		return fmt.Errorf("data is required")
	}

	project, err := loadProject(*input)
	if err != nil {
		return err
	}
	data, err := loadWeddingData(*dataPath)
	if err != nil {
		return err
	}
	return writeJSON(out, sitebuilder.ApplyBindings(project, data))
}

func runStory(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("story", flag.ContinueOnError)
	input := fs.String("in", "", "Path to the couple story Markdown document")
	dataPath := fs.String("data", "", "Path to the wedding content JSON to update")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := readInput(*input)
	if err != nil {
		return err
	}
	story, err := sitebuilder.ParseStory(raw)
	if err != nil {
		return err
	}
	var data *document.WeddingData
	if strings.TrimSpace(*dataPath) != "" {
		if data, err = loadWeddingData(*dataPath); err != nil {
			return err
		}
	}
	return writeJSON(out, story.ApplyTo(data))
}

type checkReport struct {
	Publishable    bool     `json:"publishable"`
	Message        string   `json:"message,omitempty"`
	FirstPageID    string   `json:"firstPageId,omitempty"`
	FirstSectionID string   `json:"firstSectionId,omitempty"`
	Hints          []string `json:"hints"`
}

func runCheck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	input := fs.String("in", "", "Path to the project JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	project, err := loadProject(*input)
	if err != nil {
		return err
	}
	report := checkReport{Publishable: true, Hints: []string{}}
	if issue := sitebuilder.CheckPublish(project); issue != nil {
		report = checkReport{
			Message:        issue.Message,
			FirstPageID:    issue.FirstPageID,
			FirstSectionID: issue.FirstSectionID,
			Hints:          issue.Hints(),
		}
	}
	return writeJSON(out, report)
}

func loadProject(path string) (*document.Project, error) {
	raw, err := readInput(path)
	if err != nil {
		return nil, err
	}
	project, err := layout.DecodeProject(raw)
	if err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	return project, nil
}

func loadWeddingData(path string) (*document.WeddingData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	var data document.WeddingData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return &data, nil
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return raw, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
