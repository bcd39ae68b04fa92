// MongoHandler is an slog.Handler that asynchronously stores log records in
// a MongoDB collection. It exists so admin mutations (catalog edits, order
// status changes, role changes) leave a queryable audit trail without
// touching the hot request path:
//
//   - Records are enqueued into a buffered channel (non-blocking).
//   - One background goroutine drains the channel and performs InsertMany
//     in batches.
//   - A full queue drops the record; logging must never block handlers.
//   - Close() flushes the queue and disconnects.
//
// Enabled from the server bootstrap when AUDIT_MONGO_URI is configured.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// AuditDocument is the shape written to MongoDB.
type AuditDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// MongoHandler is a slog.Handler that writes to MongoDB asynchronously.
type MongoHandler struct {
	col    *mongo.Collection
	client *mongo.Client
	queue  chan AuditDocument
	done   chan struct{}
	attrs  []slog.Attr
}

// NewMongoHandler connects to uri and returns a handler writing to
// db/collection. The caller must eventually call Close().
func NewMongoHandler(uri, db, collection string) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).SetConnectTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	h := &MongoHandler{
		col:    client.Database(db).Collection(collection),
		client: client,
		queue:  make(chan AuditDocument, mongoQueueSize),
		done:   make(chan struct{}),
	}
	go h.drain()
	return h, nil
}

// Enabled reports whether the handler processes records at the given level.
// Audit records are Info and above.
func (h *MongoHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

// Handle converts the record to an AuditDocument and enqueues it.
func (h *MongoHandler) Handle(_ context.Context, rec slog.Record) error {
	doc := AuditDocument{
		Time:  rec.Time,
		Level: rec.Level.String(),
		Msg:   rec.Message,
		Attrs: bson.M{},
	}

	collect := func(a slog.Attr) bool {
		if a.Key == "request_id" {
			doc.RequestID = a.Value.String()
			return true
		}
		doc.Attrs[a.Key] = a.Value.Any()
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	rec.Attrs(collect)

	select {
	case h.queue <- doc:
	default:
		// Queue full: drop rather than block the request.
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup is accepted but flattened; audit documents stay one level deep.
func (h *MongoHandler) WithGroup(string) slog.Handler { return h }

func (h *MongoHandler) drain() {
	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := h.col.InsertMany(ctx, batch); err != nil {
			// Nowhere sane to report a failing audit sink except stderr-bound slog.
			slog.Warn("logger: audit insert failed", "error", err, "dropped", len(batch))
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-h.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-h.done:
			for {
				select {
				case doc := <-h.queue:
					batch = append(batch, doc)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close flushes pending documents and disconnects the client.
func (h *MongoHandler) Close() error {
	close(h.done)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.client.Disconnect(ctx)
}

// ── Fan-out wiring ────────────────────────────────────────────────────────────

// teeHandler forwards every record to all children.
type teeHandler struct {
	children []slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, c := range t.children {
		if c.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, rec slog.Record) error {
	var firstErr error
	for _, c := range t.children {
		if !c.Enabled(ctx, rec.Level) {
			continue
		}
		if err := c.Handle(ctx, rec.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	children := make([]slog.Handler, len(t.children))
	for i, c := range t.children {
		children[i] = c.WithAttrs(attrs)
	}
	return &teeHandler{children: children}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	children := make([]slog.Handler, len(t.children))
	for i, c := range t.children {
		children[i] = c.WithGroup(name)
	}
	return &teeHandler{children: children}
}

// EnableMongoAudit attaches a MongoHandler alongside the current handler so
// Info-and-above records are mirrored into the audit collection. Returns the
// handler so the caller can Close() it on shutdown.
func EnableMongoAudit(uri, db, collection string) (*MongoHandler, error) {
	mh, err := NewMongoHandler(uri, db, collection)
	if err != nil {
		return nil, err
	}

	L = slog.New(&teeHandler{children: []slog.Handler{L.Handler(), mh}})
	slog.SetDefault(L)
	return mh, nil
}
