package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"lending-backend/internal/domain/user"
)

const (
	HeaderIdempotencyKey       = "Idempotency-Key"
	HeaderIdempotencyTimestamp = "Idempotency-Timestamp"
	HeaderIdempotentReplay     = "Idempotent-Replayed"

	// a crashed handler frees its key after this long
	provisionalLockTTL = 60 * time.Second
	maxClockSkew       = 10 * time.Minute
	storeTimeout       = 2 * time.Second
)

var errTimestampSkewed = errors.New("Idempotency-Timestamp too skewed")

// idempEntry is the JSON stored under an idempotency key: first as an
// in-progress claim, then as the recorded response.
type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// captureWriter tees the response body so it can be stored for replay.
type captureWriter struct {
	http.ResponseWriter
	body bytes.Buffer
	code int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

type idempotencyGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

// Idempotency replays the recorded response of a mutating request that
// carries an Idempotency-Key already seen for the same caller and route.
// Requests without the header, and every request when rdb is nil, pass
// straight through. Mount it after RequireAuth so keys are scoped per user.
func Idempotency(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	g := &idempotencyGuard{rdb: rdb, ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			reqID := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if g.rdb == nil || reqID == "" {
				return next(c)
			}
			return g.serve(c, next, reqID)
		}
	}
}

func (g *idempotencyGuard) serve(c echo.Context, next echo.HandlerFunc, reqID string) error {
	req := c.Request()
	if !validReqID(reqID) {
		return deny(c, http.StatusBadRequest, "invalid Idempotency-Key format")
	}
	now := nowUTC()
	reqAt, err := requestTime(req.Header.Get(HeaderIdempotencyTimestamp), now)
	if err != nil {
		return deny(c, http.StatusBadRequest, err.Error())
	}

	owner := "anonymous"
	if id, ok := user.IdentityFrom(req.Context()); ok {
		owner = id.ID
	}
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	key := buildKey(req.Method, c.Path(), owner, strings.ToLower(reqID))
	claim := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash(body),
		RequestID:   reqID,
		RequestAtMS: reqAt.UnixMilli(),
		CreatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
	defer cancel()
	claimed, err := provisionalSet(ctx, g.rdb, key, claim)
	if err != nil {
		log.WithError(err).WithField("key", key).Error("idempotency: store unavailable")
		return deny(c, http.StatusServiceUnavailable, "idempotency store unavailable")
	}
	if !claimed {
		return g.replay(ctx, c, key, claim.BodySHA256)
	}

	w := &captureWriter{ResponseWriter: c.Response().Writer, code: http.StatusOK}
	c.Response().Writer = w
	if err := next(c); err != nil {
		c.Error(err)
	}
	g.record(key, w, claim)
	return nil
}

// replay answers a request whose key is already claimed.
func (g *idempotencyGuard) replay(ctx context.Context, c echo.Context, key, bodySHA string) error {
	cur, err := loadEntry(ctx, g.rdb, key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("idempotency: failed to load entry")
	}
	switch {
	case cur.BodySHA256 != "" && cur.BodySHA256 != bodySHA:
		return deny(c, http.StatusConflict, "Idempotency-Key reused with different body")
	case !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0:
		c.Response().Header().Set(HeaderIdempotentReplay, "true")
		return c.Blob(cur.Code, echo.MIMEApplicationJSONCharsetUTF8, cur.Body)
	}
	return deny(c, http.StatusConflict, "request is already in progress")
}

// record stores the finished response, or releases the key after a server
// error so the client may retry.
func (g *idempotencyGuard) record(key string, w *captureWriter, claim idempEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if w.code >= http.StatusInternalServerError {
		if err := g.rdb.Del(ctx, key).Err(); err != nil {
			log.WithError(err).WithField("key", key).Warn("idempotency: failed to release key")
		}
		return
	}
	final := claim
	final.InProgress = false
	final.Code = w.code
	final.Body = w.body.Bytes()
	final.CreatedAt = nowUTC()
	if err := saveFinal(ctx, g.rdb, key, final, g.ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("idempotency: failed to save response")
	}
}

// requestTime parses an optional client timestamp and rejects one further
// than maxClockSkew from now. An empty header yields now.
func requestTime(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now, nil
	}
	t, err := parseRequestAt(raw)
	if err != nil {
		return time.Time{}, err
	}
	if t.Before(now.Add(-maxClockSkew)) || t.After(now.Add(maxClockSkew)) {
		return time.Time{}, errTimestampSkewed
	}
	return t, nil
}
