package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/service/cache"
)

const (
	HeaderXCache = "X-Cache"

	cacheHit  = "HIT"
	cacheMiss = "MISS"
)

// cachedResponse is what CacheHttp keeps per url
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// recorder copies everything written to the client into body
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recorder) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *recorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

// cacheKey hashes the path with its query sorted by key and value, so that
// parameter order does not matter
func cacheKey(r *http.Request) string {
	query := r.URL.Query()
	names := make([]string, 0, len(query))
	for name, values := range query {
		sort.Strings(values)
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(r.URL.Path)
	for _, name := range names {
		for _, v := range query[name] {
			b.WriteString("&" + name + "=" + v)
		}
	}

	hash := fnv.New64a()
	io.WriteString(hash, b.String())
	return strconv.FormatUint(hash.Sum64(), 36)
}

// CacheHttp answers repeated GETs of the same url from cacheService. Only
// responses below 400 are stored. Authenticated requests always miss.
func CacheHttp(cacheService cache.Service) echo.MiddlewareFunc {
	met := metrics.New("http.cache")
	maxAge := "max-age=" + strconv.Itoa(int(cacheService.Ttl().Seconds()))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet || c.Request().Header.Get(echo.HeaderAuthorization) != "" {
				return next(c)
			}
			ctx := c.Get("ctx").(ctx.Ctx)
			key := cacheKey(c.Request())

			cached := cachedResponse{}
			if err := cacheService.Get(ctx, key, &cached); err == nil {
				met.BumpSum("hit", 1, "path", c.Path())
				for k, v := range cached.Header {
					c.Response().Header()[k] = v
				}
				c.Response().Header().Set(HeaderXCache, cacheHit)
				c.Response().WriteHeader(cached.Status)
				_, err := c.Response().Write(cached.Body)
				return err
			} else if err != cache.ErrNotFound {
				ctx.WithFields(log.Fields{"err": err, "key": key}).Error("cacheService.Get failed")
			}
			met.BumpSum("miss", 1, "path", c.Path())

			c.Response().Header().Set(HeaderXCache, cacheMiss)
			c.Response().Header().Set("Cache-Control", maxAge)
			rec := &recorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			status := rec.status
			if status == 0 {
				status = c.Response().Status
			}
			if status >= http.StatusBadRequest {
				return nil
			}

			header := c.Response().Header().Clone()
			header.Del(HeaderXCache)
			if err := cacheService.Set(ctx, key, cachedResponse{status, header, rec.body.Bytes()}); err != nil {
				ctx.WithFields(log.Fields{"err": err, "key": key}).Error("cacheService.Set failed")
			}
			return nil
		}
	}
}
