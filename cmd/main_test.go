package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/curveboard/curveboard/internal/adapters/http/api"
	"github.com/curveboard/curveboard/internal/adapters/http/swagger"
	repository "github.com/curveboard/curveboard/internal/adapters/repository"
	app "github.com/curveboard/curveboard/internal/app"
	"github.com/curveboard/curveboard/internal/config"
	"github.com/curveboard/curveboard/internal/demodata"
	"github.com/curveboard/curveboard/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("CURVEBOARD_ADDR", ":8080")
			_ = os.Setenv("CURVEBOARD_DEMO_STEPS", "4")
			defer func() {
				_ = os.Unsetenv("CURVEBOARD_ADDR")
				_ = os.Unsetenv("CURVEBOARD_DEMO_STEPS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DemoSteps, convey.ShouldEqual, 4)
			})
		})
	})
}

func TestServerWiring(t *testing.T) {
	convey.Convey("Given a fully wired server over the demo dataset", t, func() {
		ctx := context.Background()

		store := repository.NewMemStore(repository.WithMetricsEnabled(false))
		store.Load(demodata.Generate(demodata.NewConfig()))

		svc := app.New(app.WithStore(store), app.WithLogger(logger.Get()))

		mux := http.NewServeMux()
		swagger.Register(ctx, mux)
		api.NewServer(svc, svc).Register(ctx, mux)

		convey.Convey("When fetching tags end to end", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, api.RoutePrefix+"/tags", nil))

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			var tags map[string]map[string]api.TagInfo
			convey.So(json.Unmarshal(rec.Body.Bytes(), &tags), convey.ShouldBeNil)
			convey.So(tags, convey.ShouldContainKey, demodata.RunColors)
			convey.So(tags[demodata.RunColors], convey.ShouldContainKey, "blue/pr_curves")
		})

		convey.Convey("When fetching curves end to end", func() {
			rec := httptest.NewRecorder()
			target := api.RoutePrefix + "/pr_curves?run=colors&run=mask_every_other_prediction&tag=green/pr_curves"
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			var curves map[string][]api.CurveEntry
			convey.So(json.Unmarshal(rec.Body.Bytes(), &curves), convey.ShouldBeNil)
			convey.So(curves, convey.ShouldHaveLength, 2)
			convey.So(curves[demodata.RunColors], convey.ShouldHaveLength, demodata.DefaultSteps)
			convey.So(curves[demodata.RunColors][0].Precision, convey.ShouldHaveLength, demodata.DefaultThresholds)
		})

		convey.Convey("When fetching available steps end to end", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, api.RoutePrefix+"/available_steps", nil))

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			var steps map[string][]int64
			convey.So(json.Unmarshal(rec.Body.Bytes(), &steps), convey.ShouldBeNil)
			convey.So(steps[demodata.RunColors], convey.ShouldResemble, []int64{0, 1, 2})
		})

		convey.Convey("When requesting a tag missing from one run", func() {
			rec := httptest.NewRecorder()
			target := api.RoutePrefix + "/pr_curves?run=colors&run=no-such-run&tag=green/pr_curves"
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, "no-such-run")
		})

		convey.Convey("When fetching the API docs", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}
