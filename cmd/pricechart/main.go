package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"PriceChart/internal/chart"
	"PriceChart/internal/collector"
	"PriceChart/internal/config"
	"PriceChart/internal/render"
	"PriceChart/internal/scheduler"
)

const usage = `usage: pricechart <command> [flags]

commands:
  render   load the data and write the chart
  hover    locate the record under a pointer position and print the tooltip as JSON
  watch    re-render the chart on the configured cron schedule

run "pricechart <command> -h" for command flags`

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "render":
		err = runRender(args)
	case "hover":
		err = runHover(args)
	case "watch":
		err = runWatch(args)
	case "help", "-h", "--help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("pricechart failed")
	}
}

// commonFlags are shared by every subcommand and override the config file.
type commonFlags struct {
	configPath string
	in         string
	out        string
	format     string
}

func bindCommon(fs *flag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.configPath, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")
	fs.StringVar(&f.in, "in", "", "CSV file with date,close columns (overrides data.source/path)")
	fs.StringVar(&f.out, "out", "", "output file (overrides chart.output)")
	fs.StringVar(&f.format, "format", "", "svg or png (default from the -out extension, then chart.format)")
	return f
}

// load reads .env and the config file, applies flag overrides and sets up logging.
func (f *commonFlags) load() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	path := f.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)
	log.Debug().Str("config", path).Str("source", cfg.Data.Source).Msg("config loaded")
	return cfg, nil
}

// apply overrides the config with the flags. The output extension and the format are kept
// in agreement: -out picks the format when -format is absent, and -format alone renames the
// configured output.
func (f *commonFlags) apply(cfg *config.Config) {
	if f.in != "" {
		cfg.Data.Source = "csv"
		cfg.Data.Path = f.in
	}
	if f.out != "" {
		cfg.Chart.Output = f.out
	}
	switch {
	case f.format != "":
		cfg.Chart.Format = f.format
		if f.out == "" {
			cfg.Chart.Output = withFormatExt(cfg.Chart.Output, f.format)
		}
	case f.out != "":
		if ext := strings.TrimPrefix(filepath.Ext(f.out), "."); ext == "svg" || ext == "png" {
			cfg.Chart.Format = ext
		}
	}
}

// withFormatExt swaps a .svg or .png extension for the one matching format.
func withFormatExt(path, format string) string {
	ext := filepath.Ext(path)
	if ext != ".svg" && ext != ".png" {
		return path
	}
	return strings.TrimSuffix(path, ext) + "." + format
}

func chartOptions(cfg *config.Config) chart.Options {
	return chart.Options{NiceY: cfg.Chart.Nice(), Snap: chart.SnapMode(cfg.Hover.Snap)}
}

func renderOptions(cfg *config.Config) render.Options {
	opts := render.DefaultOptions()
	opts.Format = render.Format(cfg.Chart.Format)
	return opts
}

func buildContext(ctx context.Context, cfg *config.Config) (*chart.Context, error) {
	src, err := collector.Open(cfg.Data, cfg.Proxy)
	if err != nil {
		return nil, err
	}
	ds, err := collector.Collect(ctx, src, cfg.Data.Sort)
	if err != nil {
		return nil, err
	}
	return chart.NewContext(ds, cfg.Chart.Dimensions(), chartOptions(cfg))
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	common := bindCommon(fs)
	_ = fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		return err
	}
	c, err := buildContext(context.Background(), cfg)
	if err != nil {
		return err
	}
	if err := render.WriteFile(cfg.Chart.Output, c, chart.Tooltip{}, renderOptions(cfg)); err != nil {
		return err
	}
	log.Info().Str("output", cfg.Chart.Output).Int("points", len(c.Dataset)).Msg("chart written")
	return nil
}

// hoverResult is the machine-readable answer printed by the hover command.
type hoverResult struct {
	State   string         `json:"state"`
	Tooltip *chart.Tooltip `json:"tooltip,omitempty"`
	Price   string         `json:"price,omitempty"`
	Date    string         `json:"date,omitempty"`
}

// newHoverResult leaves the tooltip out while idle.
func newHoverResult(tip chart.Tooltip) hoverResult {
	res := hoverResult{State: chart.Idle.String()}
	if tip.Visible {
		res.State = chart.Hovering.String()
		res.Tooltip = &tip
		res.Price = render.FormatPrice(tip.Record.Close)
		res.Date = render.FormatDate(tip.Record.Date)
	}
	return res
}

func runHover(args []string) error {
	fs := flag.NewFlagSet("hover", flag.ExitOnError)
	common := bindCommon(fs)
	x := fs.Float64("x", 0, "pointer x relative to the drawable area")
	y := fs.Float64("y", 0, "pointer y relative to the drawable area")
	track := fs.String("track", "", `replay a pointer track, e.g. "10,20 300,40 900,10"`)
	leave := fs.Bool("leave", false, "send a pointer-leave after the moves")
	_ = fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		return err
	}
	c, err := buildContext(context.Background(), cfg)
	if err != nil {
		return err
	}

	events := []chart.PointerEvent{{X: *x, Y: *y}}
	if *track != "" {
		if events, err = parseTrack(*track); err != nil {
			return err
		}
	}

	h, tips := c.HandleMoves(chart.Hover{}, events)
	results := make([]hoverResult, 0, len(tips)+1)
	for _, tip := range tips {
		results = append(results, newHoverResult(tip))
	}
	last := tips[len(tips)-1]
	if *leave {
		h, last = h.Leave()
		results = append(results, newHoverResult(last))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		err = enc.Encode(results[0])
	} else {
		err = enc.Encode(results)
	}
	if err != nil {
		return fmt.Errorf("encode hover result: %w", err)
	}

	if common.out != "" {
		if err := render.WriteFile(cfg.Chart.Output, c, last, renderOptions(cfg)); err != nil {
			return err
		}
		log.Info().Str("output", cfg.Chart.Output).Str("state", h.State.String()).Msg("hover chart written")
	}
	return nil
}

// parseTrack reads space separated "x,y" pairs.
func parseTrack(s string) ([]chart.PointerEvent, error) {
	fields := strings.Fields(s)
	events := make([]chart.PointerEvent, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("track point %q: want x,y", f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("track point %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("track point %q: %w", f, err)
		}
		events = append(events, chart.PointerEvent{X: x, Y: y})
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("empty track")
	}
	return events, nil
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	common := bindCommon(fs)
	_ = fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		return err
	}
	src, err := collector.Open(cfg.Data, cfg.Proxy)
	if err != nil {
		return err
	}
	log.Info().Str("source", src.Name()).Msg("PriceChart watch starting")

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, scheduler.Job{
		Source:     src,
		Sort:       cfg.Data.Sort,
		Dimensions: cfg.Chart.Dimensions(),
		Chart:      chartOptions(cfg),
		Render:     renderOptions(cfg),
		Output:     cfg.Chart.Output,
	})
	if err := sched.Register(cfg.Schedule.RenderCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Schedule.RunOnStart {
		log.Info().Msg("RUN_ON_START enabled, rendering now")
		go sched.RunNow()
	}

	log.Info().Msg("PriceChart is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")
	return nil
}
