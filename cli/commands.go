package cli

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"map-catalog/config"
	"map-catalog/ds"
	"map-catalog/logging"
	"map-catalog/mapcache"
	"map-catalog/mapcache/mdiff"
	"map-catalog/mapcache/mrecord"
	"map-catalog/mapcache/mtag"
	"map-catalog/mapcache/mwire"
	"map-catalog/query"
	"map-catalog/query/qfilter"
	"map-catalog/query/qshape"
)

var ErrDestinationExists = errors.New("destination file exists; use --force to overwrite it")

type (
	DecodeOutput struct {
		LastUpdated int64            `json:"last_updated"`
		Total       uint32           `json:"total"`
		Report      mapcache.Report  `json:"report"`
		Records     []mrecord.Record `json:"records"`
	}
)

func writeOutput(path string, force bool, stdout io.Writer, bs []byte) error {
	if path == "" {
		_, err := stdout.Write(append(bs, '\n'))
		return errors.Wrap(err, "writeOutput error: stdout")
	}
	if CheckExistence(path) && !force {
		return errors.Wrapf(ErrDestinationExists, `writeOutput error: "%s"`, path)
	}
	if err := os.WriteFile(path, bs, 0644); err != nil {
		return errors.Wrapf(err, `writeOutput error: writing "%s"`, path)
	}
	return nil
}

func readJSON[T any](path string) (T, error) {
	var value T
	bs, err := os.ReadFile(path)
	if err != nil {
		return value, errors.Wrapf(err, `readJSON error: reading "%s"`, path)
	}
	if err := json.Unmarshal(bs, &value); err != nil {
		return value, errors.Wrapf(err, `readJSON error: parsing "%s"`, path)
	}
	return value, nil
}

func loadCache(path string, logger logging.Logger) (*mapcache.Cache, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, `loadCache error: reading "%s"`, path)
	}
	logger.Debug("read cache payload", "path", path, "bytes", len(bs), "gzip", mwire.IsGzip(bs))
	return mapcache.Load(bs, logger)
}

func RunDecode(cmd DecodeCmd, stdout io.Writer, logger logging.Logger) error {
	cache, err := loadCache(cmd.From, logger)
	if err != nil {
		return errors.Wrap(err, "RunDecode error")
	}
	output := DecodeOutput{
		LastUpdated: cache.LastUpdated(),
		Total:       cache.Total(),
		Report:      cache.Report(),
		Records:     cache.Records(),
	}
	bs, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return errors.Wrap(err, "RunDecode error: marshal")
	}
	return writeOutput(cmd.To, cmd.Force, stdout, bs)
}

func RunPack(cmd PackCmd, logger logging.Logger) error {
	payload, err := readJSON[mwire.Payload](cmd.From)
	if err != nil {
		return errors.Wrap(err, "RunPack error")
	}
	bs := mwire.Encode(payload)
	if cmd.Gzip {
		bs, err = mwire.Deflate(bs)
		if err != nil {
			return errors.Wrap(err, "RunPack error")
		}
	}
	if err := writeOutput(cmd.To, cmd.Force, io.Discard, bs); err != nil {
		return errors.Wrap(err, "RunPack error")
	}
	logger.Info("packed payload", "songs", len(payload.Songs), "bytes", len(bs), "to", cmd.To)
	return nil
}

// CreateSpec layers the command line dimensions over the preset.
func CreateSpec(cmd QueryCmd, preset qfilter.Spec) qfilter.Spec {
	flags := qfilter.Spec{
		MinNPS:            cmd.MinNPS,
		MaxNPS:            cmd.MaxNPS,
		MinDuration:       cmd.MinDuration,
		MaxDuration:       cmd.MaxDuration,
		Chroma:            cmd.Chroma,
		Noodle:            cmd.Noodle,
		MappingExtensions: cmd.ME,
		Cinema:            cmd.Cinema,
		FullSpread:        cmd.FullSpread,
		Automapper:        cmd.Automapper,
		Ranked:            cmd.Ranked,
		Curated:           cmd.Curated,
		Verified:          cmd.Verified,
	}
	if len(cmd.Tags) > 0 {
		flags.EnabledTags = mtag.NewSet(mtag.ParseAll(cmd.Tags)...)
	}
	if len(cmd.ExcludeTags) > 0 {
		flags.ExcludedTags = mtag.NewSet(mtag.ParseAll(cmd.ExcludeTags)...)
	}
	return preset.Merge(flags)
}

// collectRecords gathers the records to query: local records enriched from
// the cache when both are given, then remote records, then the cache itself
// when neither local nor remote records are given.
func collectRecords(cmd QueryCmd, logger logging.Logger) ([]qshape.Record, error) {
	var cache *mapcache.Cache
	if cmd.Cache != "" {
		loaded, err := loadCache(cmd.Cache, logger)
		if err != nil {
			return nil, err
		}
		cache = loaded
	}

	records := make([]qshape.Record, 0)
	if cmd.Local != "" {
		locals, err := readJSON[[]qshape.LocalRecord](cmd.Local)
		if err != nil {
			return nil, err
		}
		if cache != nil {
			locals = cache.Enrich(locals)
		}
		records = append(records, lo.Map(locals, func(local qshape.LocalRecord, _ int) qshape.Record {
			return qshape.Local(local)
		})...)
	}
	if cmd.Remote != "" {
		remotes, err := readJSON[[]qshape.RemoteRecord](cmd.Remote)
		if err != nil {
			return nil, err
		}
		records = append(records, lo.Map(remotes, func(remote qshape.RemoteRecord, _ int) qshape.Record {
			return qshape.Remote(remote)
		})...)
	}
	if cmd.Local == "" && cmd.Remote == "" && cache != nil {
		records = cache.CanonicalRecords()
	}
	return records, nil
}

func RunQuery(cmd QueryCmd, cfg *config.Config, stdout io.Writer, logger logging.Logger) error {
	preset, err := cfg.Preset(cmd.Preset)
	if err != nil {
		return errors.Wrap(err, "RunQuery error")
	}
	records, err := collectRecords(cmd, logger)
	if err != nil {
		return errors.Wrap(err, "RunQuery error")
	}

	request := query.Request{
		Spec:      CreateSpec(cmd, preset),
		Search:    cmd.Search,
		SortKey:   lo.Ternary(cmd.Sort != "", cmd.Sort, cfg.Query.Sort),
		Ascending: lo.Ternary(cmd.Desc, false, cfg.Query.Ascending),
		Limit:     lo.Ternary(cmd.Limit > 0, cmd.Limit, cfg.Query.Limit),
	}
	logger.Debug("query request", "spec", ds.DumpJSON(request.Spec), "sort", request.SortKey)

	engine, err := query.NewEngine(cfg.ViewCacheSize, logger)
	if err != nil {
		return errors.Wrap(err, "RunQuery error")
	}
	result := engine.Run(records, request)
	bs, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "RunQuery error: marshal")
	}
	return writeOutput(cmd.To, true, stdout, bs)
}

// CreateStats counts tags and difficulty labels over the cache, in code
// order.
func CreateStats(cache *mapcache.Cache) *orderedmap.OrderedMap {
	tagCounts := make(map[mtag.Tag]int)
	labelCounts := make(map[mdiff.Label]int)
	for _, record := range cache.Records() {
		for _, tag := range record.Tags {
			tagCounts[tag]++
		}
		for _, difficulty := range record.Difficulties {
			labelCounts[difficulty.Difficulty]++
		}
	}

	tags := orderedmap.New()
	for _, tag := range mtag.All() {
		if count, ok := tagCounts[tag]; ok {
			tags.Set(string(tag), count)
		}
	}

	difficulties := orderedmap.New()
	for _, code := range ds.MakeRange[mdiff.Code](1, 6, 1) {
		label := mdiff.LabelFromCode(code)
		difficulties.Set(string(label), labelCounts[label])
	}

	report := cache.Report()
	stats := orderedmap.New()
	stats.Set("last_updated", cache.LastUpdated())
	stats.Set("total", cache.Total())
	stats.Set("checksum", strconv.FormatUint(cache.Checksum(), 16))
	stats.Set("decoded", report.Decoded)
	stats.Set("failed", report.Failed)
	stats.Set("malformed", report.Malformed)
	stats.Set("uploaders", cache.Tables().NumUploaders())
	stats.Set("difficulty_labels", cache.Tables().NumDifficultyLabels())
	stats.Set("tags", tags)
	stats.Set("difficulties", difficulties)
	return stats
}

func RunStats(cmd StatsCmd, stdout io.Writer, logger logging.Logger) error {
	cache, err := loadCache(cmd.From, logger)
	if err != nil {
		return errors.Wrap(err, "RunStats error")
	}
	bs, err := json.MarshalIndent(CreateStats(cache), "", "  ")
	if err != nil {
		return errors.Wrap(err, "RunStats error: marshal")
	}
	return writeOutput("", false, stdout, bs)
}
