package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/museumguide/internal/adapters/cache"
	"github.com/okian/museumguide/internal/config"
	"github.com/okian/museumguide/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const objectJSON = `{"id":299843,"medium":"Oil on canvas","people":[{"displayname":"Unknown Artist"}]}`

func fakeMuseum() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/object/299843" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(objectJSON))
	}))
}

func TestNewCache(t *testing.T) {
	convey.Convey("Given the cache selection", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When the TTL is zero", func() {
			cfg.CacheTTLSeconds = 0
			c, err := newCache(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(c, convey.ShouldHaveSameTypeAs, cache.Nop{})
		})

		convey.Convey("When no redis is configured", func() {
			c, err := newCache(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(c, convey.ShouldHaveSameTypeAs, &cache.InMemory{})
		})

		convey.Convey("When redis is unreachable", func() {
			cfg.RedisAddr = "127.0.0.1:1"
			c, err := newCache(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(c, convey.ShouldBeNil)
		})
	})
}

func TestWiring(t *testing.T) {
	convey.Convey("Given the service wired against a fake museum", t, func() {
		museumSrv := fakeMuseum()
		defer museumSrv.Close()

		ctx := context.Background()
		cfg := config.New()
		cfg.MuseumBaseURL = museumSrv.URL
		cfg.MuseumTimeoutMS = 2000

		svc, err := newService(ctx, cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newMux(ctx, svc, logger.Nop()))
		defer srv.Close()
		client := &http.Client{Timeout: 5 * time.Second}

		ask := func(path, title string) map[string]any {
			body := `{"context":{"facts":{"painting_to_search":{"grammar_entry":"` + title + `"}}}}`
			resp, err := client.Post(srv.URL+path, "application/json", strings.NewReader(body))
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			var out map[string]any
			convey.So(json.NewDecoder(resp.Body).Decode(&out), convey.ShouldBeNil)
			return out
		}

		convey.Convey("When asking for the medium", func() {
			out := ask("/medium", "299843")
			result := out["data"].(map[string]any)["result"].([]any)[0].(map[string]any)
			convey.So(out["status"], convey.ShouldEqual, "success")
			convey.So(result["value"], convey.ShouldEqual, "Oil on canvas")
		})

		convey.Convey("When asking for an anonymous artist", func() {
			out := ask("/artist_name", "299843")
			result := out["data"].(map[string]any)["result"].([]any)[0].(map[string]any)
			convey.So(result["value"], convey.ShouldEqual, "unknown")
		})

		convey.Convey("When asking about an unknown painting", func() {
			out := ask("/medium", "1")
			convey.So(out["status"], convey.ShouldEqual, "error")
			convey.So(out["message"], convey.ShouldContainSubstring, "not found")
		})

		convey.Convey("When fetching the API docs", func() {
			resp, err := client.Get(srv.URL + "/openapi.yaml")
			convey.So(err, convey.ShouldBeNil)
			resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestUnreachableMuseumKeepsKeyOutOfEnvelope(t *testing.T) {
	convey.Convey("Given the service wired against a museum that has gone away", t, func() {
		gone := httptest.NewServer(http.NotFoundHandler())
		deadURL := gone.URL
		gone.Close()

		const apiKey = "tourguide-test-key-0042"
		ctx := context.Background()
		cfg := config.New()
		cfg.MuseumBaseURL = deadURL
		cfg.MuseumAPIKey = apiKey
		cfg.MuseumTimeoutMS = 1000

		svc, err := newService(ctx, cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, svc, logger.Nop())

		convey.Convey("When asking for the medium", func() {
			body := `{"context":{"facts":{"painting_to_search":{"grammar_entry":"299843"}}}}`
			req := httptest.NewRequest(http.MethodPost, "/medium", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.Convey("Then the envelope names only the failure kind", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"status":"error"`)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "lookup failed: museum api failed")
				convey.So(w.Body.String(), convey.ShouldNotContainSubstring, apiKey)
				convey.So(w.Body.String(), convey.ShouldNotContainSubstring, deadURL)
			})
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then it should update metrics without panicking", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("And it should stop with its context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()
			cancel()
			select {
			case <-done:
			case <-time.After(time.Second):
				convey.So("updater did not stop", convey.ShouldBeEmpty)
			}
		})
	})
}
