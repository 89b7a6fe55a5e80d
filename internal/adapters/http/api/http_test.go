package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/curveboard/curveboard/internal/adapters/http/api"
	service "github.com/curveboard/curveboard/internal/app"
	"github.com/curveboard/curveboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDeps struct {
	tags      map[string]map[string]types.TagInfo
	tagsErr   error
	steps     map[string][]int64
	stepsErr  error
	curves    map[string][]types.CurveEntry
	curvesErr error

	gotRuns []string
	gotTag  string
}

func (m *mockDeps) TagsPerRun(ctx context.Context) (map[string]map[string]types.TagInfo, error) {
	return m.tags, m.tagsErr
}

func (m *mockDeps) AvailableSteps(ctx context.Context) (map[string][]int64, error) {
	return m.steps, m.stepsErr
}

func (m *mockDeps) Curves(ctx context.Context, runs []string, tag string) (map[string][]types.CurveEntry, error) {
	m.gotRuns = runs
	m.gotTag = tag
	if m.curvesErr != nil {
		return nil, m.curvesErr
	}
	return m.curves, nil
}

func (m *mockDeps) Active(ctx context.Context) bool {
	for _, tags := range m.tags {
		if len(tags) > 0 {
			return true
		}
	}
	return false
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"active": m.Active(context.Background())}
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return mux
}

func TestTagsRoute(t *testing.T) {
	Convey("Given a server with tagged and untagged runs", t, func() {
		deps := &mockDeps{
			tags: map[string]map[string]types.TagInfo{
				"colors": {
					"blue/pr_curves": {DisplayName: "classifying blue", Description: "<p>blue</p>"},
				},
				"empty_run": {},
			},
		}
		mux := newTestMux(deps)

		Convey("When fetching the tags route", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, api.RoutePrefix+"/tags", nil))

			Convey("Then the full run mapping comes back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var body map[string]map[string]types.TagInfo
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body, ShouldHaveLength, 2)
				So(body["colors"]["blue/pr_curves"].DisplayName, ShouldEqual, "classifying blue")
				So(body["empty_run"], ShouldHaveLength, 0)
			})
		})

		Convey("When using a non-GET method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, api.RoutePrefix+"/tags", nil))

			Convey("Then it answers 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestCurvesRoute(t *testing.T) {
	Convey("Given a server with curve data", t, func() {
		deps := &mockDeps{
			curves: map[string][]types.CurveEntry{
				"colors": {
					{WallTime: 1500000000, Step: 0, Precision: []float64{1, 0.5}, Recall: []float64{1, 0.2}},
				},
			},
		}
		mux := newTestMux(deps)

		Convey("When fetching curves with runs and a tag", func() {
			rec := httptest.NewRecorder()
			target := api.RoutePrefix + "/pr_curves?run=colors&run=shapes&tag=blue/pr_curves"
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			Convey("Then the handler passes parameters through and answers JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.gotRuns, ShouldResemble, []string{"colors", "shapes"})
				So(deps.gotTag, ShouldEqual, "blue/pr_curves")

				var body map[string][]types.CurveEntry
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["colors"], ShouldHaveLength, 1)
				So(body["colors"][0].Precision, ShouldResemble, []float64{1, 0.5})
			})
		})

		Convey("When the run parameter is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, api.RoutePrefix+"/pr_curves?tag=t", nil))

			Convey("Then it answers 400 with a plain-text message and queries nothing", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "text/plain")
				So(rec.Body.String(), ShouldContainSubstring, "No runs provided")
				So(deps.gotRuns, ShouldBeNil)
			})
		})

		Convey("When the tag parameter is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, api.RoutePrefix+"/pr_curves?run=colors", nil))

			Convey("Then it answers 400 with a plain-text message and queries nothing", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "No tag provided")
				So(deps.gotRuns, ShouldBeNil)
			})
		})

		Convey("When the lookup fails for a requested run/tag", func() {
			deps.curvesErr = &service.LookupError{Run: "shapes", Tag: "blue/pr_curves"}
			rec := httptest.NewRecorder()
			target := api.RoutePrefix + "/pr_curves?run=shapes&tag=blue/pr_curves"
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			Convey("Then it answers 400 naming the run and tag", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "text/plain")
				So(rec.Body.String(), ShouldContainSubstring, "shapes")
				So(rec.Body.String(), ShouldContainSubstring, "blue/pr_curves")
			})
		})

		Convey("When the service fails for another reason", func() {
			deps.curvesErr = context.DeadlineExceeded
			rec := httptest.NewRecorder()
			target := api.RoutePrefix + "/pr_curves?run=colors&tag=t"
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			Convey("Then it answers 500 with a JSON error body", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
			})
		})
	})
}

func TestAvailableStepsRoute(t *testing.T) {
	Convey("Given a server with step data", t, func() {
		deps := &mockDeps{
			steps: map[string][]int64{"colors": {0, 1, 2}},
		}
		mux := newTestMux(deps)

		Convey("When fetching available steps", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, api.RoutePrefix+"/available_steps", nil))

			Convey("Then the step mapping comes back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string][]int64
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["colors"], ShouldResemble, []int64{0, 1, 2})
			})
		})
	})
}

func TestStatsRoute(t *testing.T) {
	Convey("Given a server with an active service", t, func() {
		deps := &mockDeps{
			tags: map[string]map[string]types.TagInfo{
				"colors": {"blue/pr_curves": {}},
			},
		}
		mux := newTestMux(deps)

		Convey("When fetching stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then it reports activity", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(rec.Body.String()), ShouldContainSubstring, `"active":true`)
			})
		})
	})
}

func TestHealthRoute(t *testing.T) {
	Convey("Given a server", t, func() {
		mux := newTestMux(&mockDeps{})

		Convey("When fetching healthz", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it serves the metrics exposition", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "curveboard_prcurves")
			})
		})
	})
}
