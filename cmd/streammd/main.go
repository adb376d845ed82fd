package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/streammd"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/streammd")
}

func main() {
	var (
		widthFlag   int
		tick        time.Duration
		minSpeed    int
		maxSpeed    int
		noRepair    bool
		noStream    bool
		plain       bool
		interactive bool
		showVersion bool
	)

	flags := pflag.NewFlagSet("streammd", pflag.ExitOnError)
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.DurationVar(&tick, "tick", streammd.DefaultTickInterval, "Delay between reveal ticks")
	flags.IntVar(&minSpeed, "min-speed", streammd.DefaultMinSpeed, "Minimum characters revealed per tick")
	flags.IntVar(&maxSpeed, "max-speed", streammd.DefaultMaxSpeed, "Maximum characters revealed per tick")
	flags.BoolVar(&noRepair, "no-repair", false, "Disable mid-stream Markdown repair")
	flags.BoolVar(&noStream, "no-stream", false, "Reveal the whole document at once")
	flags.BoolVar(&plain, "plain", false, "Skip Markdown rendering and print the processed text")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Interactive viewer with pause, speed, and repair controls")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: streammd [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if showVersion {
		fmt.Println(version.Module(), version.Current())
		return
	}

	data, err := readInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
	if err := streammd.ValidateInput(data); err != nil {
		fmt.Fprintf(os.Stderr, "validate input: %v\n", err)
		os.Exit(1)
	}
	target := string(data)
	width := resolveWidth(widthFlag)

	if interactive {
		if err := runInteractive(viewerConfig{
			target:   target,
			tick:     tick,
			minSpeed: minSpeed,
			maxSpeed: maxSpeed,
			repair:   !noRepair,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "interactive: %v\n", err)
			os.Exit(1)
		}
		return
	}

	out := os.Stdout
	var renderer *streammd.Renderer
	if !plain {
		renderer, err = streammd.NewRenderer(width)
		if err != nil {
			fmt.Fprintf(os.Stderr, "renderer: %v\n", err)
			os.Exit(1)
		}
	}
	styles := streammd.DefaultDirectiveStyles()

	if noStream {
		text, err := renderProcessed(renderer, plain, styles, streammd.Repair(target, !noRepair))
		if err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(out, text)
		return
	}

	tty := term.IsTerminal(int(out.Fd()))
	ctrl := streammd.NewTermControl(out, width)
	prevLines := 0
	sink := streammd.FrameFunc(func(fr streammd.Frame) error {
		// Without cursor control, intermediate frames would just scroll by.
		if !tty && !fr.Done {
			return nil
		}
		text, err := renderProcessed(renderer, plain, styles, fr.Processed)
		if err != nil {
			return err
		}
		if tty {
			if err := ctrl.ClearLines(prevLines); err != nil {
				return err
			}
			prevLines = ctrl.CountLines(text)
		}
		_, err = fmt.Fprintln(out, text)
		return err
	})
	if err := streammd.Simulate(streammd.SimulateRequest{
		Reader:       strings.NewReader(target),
		Sink:         sink,
		TickInterval: tick,
		MinSpeed:     minSpeed,
		MaxSpeed:     maxSpeed,
		Repair:       !noRepair,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "stream: %v\n", err)
		os.Exit(1)
	}
}

func renderProcessed(r *streammd.Renderer, plain bool, styles streammd.DirectiveStyles, processed string) (string, error) {
	if plain || r == nil {
		return strings.TrimRight(streammd.StyleDirectives(processed, styles), "\n"), nil
	}
	return r.RenderFrame(processed)
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// readInputs concatenates every named input. With no arguments the document
// comes from stdin. Each argument may be a local path, a file:// URL, or an
// http(s):// URL; the whole document is loaded up front since the stream is a
// local replay of an already known text.
func readInputs(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	var buf bytes.Buffer
	for _, raw := range args {
		data, err := loadSource(raw)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func loadSource(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty input argument")
	}
	if u, err := url.Parse(raw); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return fetchURL(raw)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return readFile(path)
		}
	}
	return readFile(raw)
}

func fetchURL(raw string) ([]byte, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(normalizePath(path))
}

func normalizePath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
