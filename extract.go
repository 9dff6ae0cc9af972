// Package elemeta extracts structured metadata from an Element Desktop
// local-storage store. The store must be a working copy; the extractor
// only ever reads it.
package elemeta

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/bahrom04-lab/element-desktop-leveldb/catalog"
	"github.com/bahrom04-lab/element-desktop-leveldb/codec"
	"github.com/bahrom04-lab/element-desktop-leveldb/elemeta_errors"
	"github.com/bahrom04-lab/element-desktop-leveldb/store"
	"github.com/bahrom04-lab/element-desktop-leveldb/utils"
)

type Options struct {
	// Namespace overrides the default key namespace marker.
	Namespace string
	// Catalog overrides the built-in classification table.
	Catalog *catalog.Catalog
	Logger  utils.Logger
}

// Extractor is the single forward pass over the store: decode, classify,
// aggregate. One instance per store handle.
type Extractor struct {
	st    *store.Store
	keys  codec.KeyCodec
	cat   *catalog.Catalog
	log   utils.Logger
	runID uuid.UUID

	entries    *xsync.Counter
	foreign    *xsync.Counter
	anomalies  *xsync.Counter
	classified *xsync.Counter
}

func NewExtractor(st *store.Store, opts Options) *Extractor {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewDefaultLogger(slog.LevelInfo)
	}
	return &Extractor{
		st:         st,
		keys:       codec.NewKeyCodec(opts.Namespace),
		cat:        opts.Catalog,
		log:        opts.Logger,
		runID:      uuid.New(),
		entries:    xsync.NewCounter(),
		foreign:    xsync.NewCounter(),
		anomalies:  xsync.NewCounter(),
		classified: xsync.NewCounter(),
	}
}

func (ex *Extractor) RunID() uuid.UUID { return ex.runID }

func (ex *Extractor) Catalog() *catalog.Catalog { return ex.cat }

// Extract runs the full scan and returns the completed record. Scan
// order drives the first-seen-wins scalars, so entries are aggregated
// strictly one at a time. On cancellation the partial record is
// discarded, never returned.
func (ex *Extractor) Extract(ctx context.Context) (*MetadataRecord, error) {
	ctx = utils.WithDefaultArgs(ctx, "run", ex.runID.String())
	ex.log.InfoCtx(ctx, "extraction started", "store", ex.st.Path())
	rec := NewRecord()
	err := ex.st.Scan(func(key, value []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ex.consume(ctx, rec, key, value)
		return nil
	})
	if err != nil {
		ex.log.ErrorCtx(ctx, "extraction aborted", "error", err)
		return nil, err
	}
	ex.log.InfoCtx(ctx, "extraction complete",
		"entries", ex.entries.Value(),
		"classified", ex.classified.Value(),
		"foreign", ex.foreign.Value(),
		"anomalies", ex.anomalies.Value())
	return rec, nil
}

// consume commits one raw entry into the record. Everything lands in
// the raw map; only clean in-namespace entries reach classification.
func (ex *Extractor) consume(ctx context.Context, rec *MetadataRecord, key, value []byte) {
	ex.entries.Inc()
	dk := ex.keys.Decode(key)
	val := codec.NormalizeValue(value)
	rec.putRaw(dk.Field, val.Text)
	if !dk.Matched {
		ex.foreign.Inc()
		return
	}
	if val.Binary {
		// the raw map keeps the hex rendering, classification skips it
		ex.anomalies.Inc()
		ex.log.DebugCtx(ctx, "binary value", "field", dk.Field)
		return
	}
	ex.aggregate(rec, dk.Field, val.Text)
}

func (ex *Extractor) aggregate(rec *MetadataRecord, field, val string) {
	for _, m := range ex.cat.Classify(field) {
		ex.classified.Inc()
		switch {
		case m.Rule.Kind == catalog.KindScalar:
			rec.setScalar(m.Rule.Slot, val)
		case m.Rule.FromSuffix:
			rec.addList(m.Rule.Slot, m.Suffix)
		default:
			rec.addList(m.Rule.Slot, val)
		}
	}
}

// Lookup is the point-lookup path: one field, no scan, same
// normalization as the scan path. ok=false means the key is absent.
func (ex *Extractor) Lookup(field string) (val codec.Value, ok bool, err error) {
	raw, err := ex.st.Get(ex.keys.Encode(field))
	if errors.Is(err, elemeta_errors.ErrKeyMissing) {
		return codec.Value{}, false, nil
	}
	if err != nil {
		return codec.Value{}, false, err
	}
	return codec.NormalizeValue(raw), true, nil
}

// Counter snapshots, read by the Prometheus collector and the REPL.
func (ex *Extractor) Entries() int64    { return ex.entries.Value() }
func (ex *Extractor) Foreign() int64    { return ex.foreign.Value() }
func (ex *Extractor) Anomalies() int64  { return ex.anomalies.Value() }
func (ex *Extractor) Classified() int64 { return ex.classified.Value() }
