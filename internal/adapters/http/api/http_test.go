package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hooprank/hooprank/internal/adapters/http/api"
	"github.com/hooprank/hooprank/internal/domain/category"
	"github.com/hooprank/hooprank/internal/domain/model"
	"github.com/hooprank/hooprank/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDeps is a controllable Dependencies implementation.
type stubDeps struct {
	seen        map[string]bool
	backpressed bool
	enqueued    []model.Submission
	entries     []api.Entry
	weights     map[string]float64
}

func newStubDeps() *stubDeps {
	return &stubDeps{
		seen: make(map[string]bool),
		entries: []api.Entry{
			{Rank: 1, AthleteID: "a", Name: "A", Score: 1.5},
			{Rank: 2, AthleteID: "b", Name: "B", Score: 0.2},
		},
		weights: scoring.DefaultWeights().ToMap(),
	}
}

func (d *stubDeps) SeenAndRecord(_ context.Context, id string) bool {
	if d.seen[id] {
		return true
	}
	d.seen[id] = true
	return false
}

func (d *stubDeps) Unrecord(_ context.Context, id string) {
	delete(d.seen, id)
}

func (d *stubDeps) Enqueue(_ context.Context, sub model.Submission) bool {
	if d.backpressed {
		return false
	}
	d.enqueued = append(d.enqueued, sub)
	return true
}

func (d *stubDeps) TopN(_ context.Context, n int) ([]api.Entry, error) {
	if n > len(d.entries) {
		n = len(d.entries)
	}
	return d.entries[:n], nil
}

func (d *stubDeps) Rank(_ context.Context, athleteID string) (api.Entry, error) {
	for _, e := range d.entries {
		if e.AthleteID == athleteID {
			return e, nil
		}
	}
	return api.Entry{}, fmt.Errorf("athlete not found: %q", athleteID)
}

func (d *stubDeps) Weights(_ context.Context) map[string]float64 {
	return d.weights
}

func (d *stubDeps) UpdateWeights(_ context.Context, m map[string]float64) error {
	w, err := scoring.FromMap(m)
	if err != nil {
		return err
	}
	d.weights = w.ToMap()
	return nil
}

func (d *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"rosterSize": len(d.entries)}
}

func newTestServer(deps *stubDeps) *httptest.Server {
	srv := api.NewServer(deps, deps, 100)
	mux := http.NewServeMux()
	srv.Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

const validStatLine = `{
	"submission_id": "sub-1",
	"athlete_id": "ath-1",
	"name": "Test Athlete",
	"points": 22.5,
	"rebounds": 8.1,
	"turnovers": 2.4,
	"field_goal_pct": 0.51,
	"field_goal_attempts": 15.2
}`

func TestPostStatLine(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := newStubDeps()
		ts := newTestServer(deps)
		Reset(ts.Close)

		Convey("When a valid stat line is posted", func() {
			resp, err := http.Post(ts.URL+"/statlines", "application/json", strings.NewReader(validStatLine))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it is accepted and enqueued", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
				So(deps.enqueued, ShouldHaveLength, 1)
				So(deps.enqueued[0].Record.AthleteID, ShouldEqual, "ath-1")
				So(deps.enqueued[0].Record.Points, ShouldEqual, 22.5)
			})

			Convey("And omitted stats arrive absent, not zero", func() {
				_, present := deps.enqueued[0].Record.Value(category.Assists)
				So(present, ShouldBeFalse)
			})

			Convey("And a replay is reported as duplicate", func() {
				resp2, err := http.Post(ts.URL+"/statlines", "application/json", strings.NewReader(validStatLine))
				So(err, ShouldBeNil)
				defer resp2.Body.Close()
				So(resp2.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.enqueued, ShouldHaveLength, 1)
			})
		})

		Convey("When a stat line without an athlete id is posted", func() {
			body := `{"submission_id": "sub-2", "name": "No ID"}`
			resp, err := http.Post(ts.URL+"/statlines", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a stat line with an out-of-range percentage is posted", func() {
			body := `{"submission_id": "sub-3", "athlete_id": "a", "name": "N", "field_goal_pct": 1.2}`
			resp, err := http.Post(ts.URL+"/statlines", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the queue pushes back", func() {
			deps.backpressed = true
			resp, err := http.Post(ts.URL+"/statlines", "application/json", strings.NewReader(validStatLine))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the client gets 429 and may retry the same id", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusTooManyRequests)
				So(deps.seen["sub-1"], ShouldBeFalse)
			})
		})
	})
}

func TestGetRankings(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := newStubDeps()
		ts := newTestServer(deps)
		Reset(ts.Close)

		Convey("When rankings are requested with a valid limit", func() {
			resp, err := http.Get(ts.URL + "/rankings?limit=2")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("When the limit is missing or invalid", func() {
			for _, q := range []string{"", "?limit=0", "?limit=abc"} {
				resp, err := http.Get(ts.URL + "/rankings" + q)
				So(err, ShouldBeNil)
				resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When the limit exceeds the configured maximum", func() {
			resp, err := http.Get(ts.URL + "/rankings?limit=101")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestGetRank(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := newStubDeps()
		ts := newTestServer(deps)
		Reset(ts.Close)

		Convey("When a known athlete is requested", func() {
			resp, err := http.Get(ts.URL + "/rank/a")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("When an unknown athlete is requested", func() {
			resp, err := http.Get(ts.URL + "/rank/ghost")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the athlete id is empty", func() {
			resp, err := http.Get(ts.URL + "/rank/")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestWeights(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := newStubDeps()
		ts := newTestServer(deps)
		Reset(ts.Close)

		Convey("When weights are fetched", func() {
			resp, err := http.Get(ts.URL + "/weights")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("When a complete vector is put", func() {
			body := `{"weights": {"points": 2.0, "rebounds": 1.0, "assists": 1.0, "steals": 1.0,
				"blocks": 1.0, "three_pointers_made": 0.8, "turnovers": 1.0,
				"field_goal_pct": 0.5, "free_throw_pct": 0.3}}`

			req, err := http.NewRequest(http.MethodPut, ts.URL+"/weights", strings.NewReader(body))
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the vector is replaced", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.weights["points"], ShouldEqual, 2.0)
			})
		})

		Convey("When a partial vector is put", func() {
			req, err := http.NewRequest(http.MethodPut, ts.URL+"/weights",
				strings.NewReader(`{"weights": {"points": 2.0}}`))
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it is rejected rather than zero-filled", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(deps.weights["points"], ShouldEqual, 1.0)
			})
		})
	})
}

func TestStats(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := newStubDeps()
		ts := newTestServer(deps)
		Reset(ts.Close)

		Convey("When stats are requested", func() {
			resp, err := http.Get(ts.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}
