package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"

	"map-catalog/config"
	"map-catalog/logging"
)

type (
	Args struct {
		Config  string     `arg:"--config,env:CATALOG_CONFIG" help:"path to the YAML config" placeholder:"catalog.yaml"`
		Verbose bool       `arg:"-v,--verbose" help:"log at debug level"`
		Decode  *DecodeCmd `arg:"subcommand:decode" help:"decode a cache payload to JSON"`
		Pack    *PackCmd   `arg:"subcommand:pack" help:"encode compact JSON to a cache payload"`
		Query   *QueryCmd  `arg:"subcommand:query" help:"filter and sort records"`
		Stats   *StatsCmd  `arg:"subcommand:stats" help:"summarize a cache payload"`
	}
	DecodeCmd struct {
		From  string `arg:"required" help:"path to the cache payload" placeholder:"cache.proto.gz"`
		To    string `help:"path to the JSON output; stdout when empty" placeholder:"records.json"`
		Force bool   `help:"overwrite the destination file"`
	}
	PackCmd struct {
		From  string `arg:"required" help:"path to the compact JSON" placeholder:"compact.json"`
		To    string `arg:"required" help:"path to the payload output" placeholder:"cache.proto"`
		Gzip  bool   `help:"compress the payload"`
		Force bool   `help:"overwrite the destination file"`
	}
	QueryCmd struct {
		Cache  string `help:"path to the cache payload" placeholder:"cache.proto.gz"`
		Local  string `help:"path to a JSON list of local records" placeholder:"local.json"`
		Remote string `help:"path to a JSON list of remote records" placeholder:"remote.json"`
		Preset string `help:"name of a filter preset from the config"`
		Search string `help:"free-text search"`
		Sort   string `help:"sort key"`
		Desc   bool   `help:"sort in descending order"`
		Limit  int    `help:"maximum number of records"`

		Tags        []string `help:"tags every record must have"`
		ExcludeTags []string `arg:"--exclude-tags" help:"tags no record may have"`
		MinNPS      *float64 `arg:"--min-nps" help:"lowest notes per second of any difficulty"`
		MaxNPS      *float64 `arg:"--max-nps" help:"highest notes per second of any difficulty"`
		MinDuration *uint32  `arg:"--min-duration" help:"shortest duration in seconds"`
		MaxDuration *uint32  `arg:"--max-duration" help:"longest duration in seconds"`
		Chroma      bool     `help:"a difficulty uses chroma"`
		Noodle      bool     `help:"a difficulty uses noodle extensions"`
		ME          bool     `arg:"--me" help:"a difficulty uses mapping extensions"`
		Cinema      bool     `help:"a difficulty uses cinema"`
		FullSpread  bool     `arg:"--full-spread" help:"at least five difficulties"`
		Automapper  bool     `help:"made with an automapper"`
		Ranked      bool     `help:"ranked on any leaderboard"`
		Curated     bool     `help:"curated"`
		Verified    bool     `help:"uploaded by a verified mapper"`
		To          string   `help:"path to the JSON output; stdout when empty"`
	}
	StatsCmd struct {
		From string `arg:"required" help:"path to the cache payload" placeholder:"cache.proto.gz"`
	}
)

var ErrNoCommand = errors.New("no subcommand given")

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"A catalog tool for rhythm game maps.\n",
			"Decodes the song details cache and queries local, remote and cached",
			"map records with one set of filters and sort keys.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

func createLogger(args Args, cfg *config.Config, w io.Writer) logging.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if args.Verbose {
		level = slog.LevelDebug
	}
	return logging.NewDefaultLogger(w, level)
}

// Run executes the subcommand of args. Results go to stdout unless the
// subcommand writes a file; logs go to stderr.
func Run(args Args, stdout io.Writer, stderr io.Writer) error {
	cfg, err := config.Load(args.Config)
	if err != nil {
		return errors.Wrap(err, "Run error")
	}
	logger := createLogger(args, cfg, stderr)

	switch {
	case args.Decode != nil:
		return RunDecode(*args.Decode, stdout, logger)
	case args.Pack != nil:
		return RunPack(*args.Pack, logger)
	case args.Query != nil:
		return RunQuery(*args.Query, cfg, stdout, logger)
	case args.Stats != nil:
		return RunStats(*args.Stats, stdout, logger)
	default:
		return ErrNoCommand
	}
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	if parser.Subcommand() == nil {
		parser.Fail("missing subcommand")
	}

	if err := Run(args, os.Stdout, os.Stderr); err != nil {
		println("Error: " + err.Error())
		os.Exit(1)
	}
}
