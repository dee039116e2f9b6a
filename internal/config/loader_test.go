package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hooprank/hooprank/internal/config"
	"github.com/hooprank/hooprank/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func clearEnv() {
	for _, kv := range os.Environ() {
		if len(kv) > 9 && kv[:9] == "HOOPRANK_" {
			key := kv[:indexByte(kv, '=')]
			os.Unsetenv(key)
		}
	}
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return len(s)
}

func TestLoad(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		clearEnv()

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.MaxRankingsLimit, ShouldEqual, 100)
				So(cfg.Weights, ShouldResemble, scoring.DefaultWeights().ToMap())
			})
		})
	})

	Convey("Given env overrides", t, func() {
		clearEnv()
		os.Setenv("HOOPRANK_ADDR", ":7070")
		os.Setenv("HOOPRANK_LOG_LEVEL", "debug")
		defer clearEnv()

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env takes precedence over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})
	})

	Convey("Given a YAML config file", t, func() {
		clearEnv()
		dir := t.TempDir()
		path := filepath.Join(dir, "hooprank.yaml")
		yaml := "addr: \":6060\"\nmax_rankings_limit: 25\nweights:\n" +
			"  points: 2.0\n  rebounds: 1.0\n  assists: 1.0\n  steals: 1.0\n" +
			"  blocks: 1.0\n  three_pointers_made: 0.8\n  turnovers: 1.0\n" +
			"  field_goal_pct: 0.5\n  free_throw_pct: 0.3\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		os.Setenv("HOOPRANK_CONFIG", path)
		defer clearEnv()

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.MaxRankingsLimit, ShouldEqual, 25)
				So(cfg.Weights["points"], ShouldEqual, 2.0)
			})
		})
	})

	Convey("Given a weight map with an untracked category", t, func() {
		clearEnv()
		dir := t.TempDir()
		path := filepath.Join(dir, "hooprank.yaml")
		yaml := "weights:\n  dunks: 5.0\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		os.Setenv("HOOPRANK_CONFIG", path)
		defer clearEnv()

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then the load fails fast naming the problem", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
