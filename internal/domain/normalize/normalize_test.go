package normalize_test

import (
	"math"
	"testing"

	"github.com/hooprank/hooprank/internal/domain/category"
	"github.com/hooprank/hooprank/internal/domain/model"
	"github.com/hooprank/hooprank/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 0.0001

func pointsOnly(id string, pts float64) model.StatRecord {
	return model.StatRecord{AthleteID: id, Name: id, Points: pts}
}

func TestPopulation_CountingCategories(t *testing.T) {
	Convey("Given three athletes with points 30, 20 and 10", t, func() {
		records := []model.StatRecord{
			pointsOnly("a", 30),
			pointsOnly("b", 20),
			pointsOnly("c", 10),
		}

		Convey("When the population is normalized", func() {
			normalized := normalize.Population(records)

			Convey("Then the points z-scores are about 1.225, 0 and -1.225", func() {
				So(normalized, ShouldHaveLength, 3)
				So(normalized[0].Scores[category.Points], ShouldAlmostEqual, 1.224744, tolerance)
				So(normalized[1].Scores[category.Points], ShouldAlmostEqual, 0, tolerance)
				So(normalized[2].Scores[category.Points], ShouldAlmostEqual, -1.224744, tolerance)
			})

			Convey("And the z-scores have mean 0 and population stddev 1", func() {
				sum := 0.0
				for _, n := range normalized {
					sum += n.Scores[category.Points]
				}
				mean := sum / 3
				So(mean, ShouldAlmostEqual, 0, tolerance)

				sq := 0.0
				for _, n := range normalized {
					d := n.Scores[category.Points] - mean
					sq += d * d
				}
				So(math.Sqrt(sq/3), ShouldAlmostEqual, 1, tolerance)
			})

			Convey("And identity fields carry through", func() {
				So(normalized[0].AthleteID, ShouldEqual, "a")
				So(normalized[0].Name, ShouldEqual, "a")
			})
		})
	})

	Convey("Given a population where every athlete has identical rebounds", t, func() {
		records := []model.StatRecord{
			{AthleteID: "a", Rebounds: 7},
			{AthleteID: "b", Rebounds: 7},
			{AthleteID: "c", Rebounds: 7},
		}

		Convey("When the population is normalized", func() {
			normalized := normalize.Population(records)

			Convey("Then the flat category scores exactly 0 for everyone", func() {
				for _, n := range normalized {
					So(n.Scores[category.Rebounds], ShouldEqual, 0)
				}
			})
		})
	})

	Convey("Given a record with an absent points value", t, func() {
		records := []model.StatRecord{
			pointsOnly("a", 30),
			pointsOnly("b", 10),
			{AthleteID: "c", Points: model.Absent()},
		}

		Convey("When the population is normalized", func() {
			normalized := normalize.Population(records)

			Convey("Then the absent value is excluded from the population statistics", func() {
				// mean 20, population stddev 10 over the two present values
				So(normalized[0].Scores[category.Points], ShouldAlmostEqual, 1, tolerance)
				So(normalized[1].Scores[category.Points], ShouldAlmostEqual, -1, tolerance)
			})

			Convey("And the incomplete athlete scores 0 rather than being dropped", func() {
				So(normalized[2].Scores[category.Points], ShouldEqual, 0)
				So(normalized[2].Scores, ShouldHaveLength, 9)
			})
		})
	})

	Convey("Given a single-athlete population", t, func() {
		normalized := normalize.Population([]model.StatRecord{pointsOnly("solo", 25)})

		Convey("Then every category scores 0", func() {
			So(normalized, ShouldHaveLength, 1)
			for _, c := range category.All() {
				So(normalized[0].Scores[c], ShouldEqual, 0)
			}
		})
	})

	Convey("Given an empty population", t, func() {
		So(normalize.Population(nil), ShouldBeEmpty)
	})
}

func TestPopulation_InverseCategory(t *testing.T) {
	Convey("Given athletes with turnovers 1, 3 and 5", t, func() {
		records := []model.StatRecord{
			{AthleteID: "careful", Turnovers: 1},
			{AthleteID: "average", Turnovers: 3},
			{AthleteID: "loose", Turnovers: 5},
		}

		Convey("When the population is normalized", func() {
			normalized := normalize.Population(records)

			Convey("Then fewer turnovers than average yields a strictly positive score", func() {
				So(normalized[0].Scores[category.Turnovers], ShouldBeGreaterThan, 0)
			})

			Convey("And more turnovers than average yields a strictly negative score", func() {
				So(normalized[2].Scores[category.Turnovers], ShouldBeLessThan, 0)
			})

			Convey("And the sign flip happens exactly once", func() {
				// Magnitudes match the plain z-scores of the raw values.
				So(normalized[0].Scores[category.Turnovers], ShouldAlmostEqual, 1.224744, tolerance)
				So(normalized[2].Scores[category.Turnovers], ShouldAlmostEqual, -1.224744, tolerance)
			})
		})
	})
}

func TestPopulation_ImpactCategories(t *testing.T) {
	Convey("Given two above-mean shooters at the same percentage but different volume", t, func() {
		records := []model.StatRecord{
			{AthleteID: "volume", FieldGoalPct: 0.55, FieldGoalAttempts: 20},
			{AthleteID: "spot-up", FieldGoalPct: 0.55, FieldGoalAttempts: 5},
			{AthleteID: "anchor", FieldGoalPct: 0.40, FieldGoalAttempts: 10},
		}

		Convey("When the population is normalized", func() {
			normalized := normalize.Population(records)

			Convey("Then the higher-volume shooter scores strictly higher", func() {
				So(normalized[0].Scores[category.FieldGoalPct],
					ShouldBeGreaterThan, normalized[1].Scores[category.FieldGoalPct])
			})
		})
	})

	Convey("Given two below-mean shooters at the same percentage but different volume", t, func() {
		records := []model.StatRecord{
			{AthleteID: "brick-volume", FieldGoalPct: 0.35, FieldGoalAttempts: 20},
			{AthleteID: "brick-light", FieldGoalPct: 0.35, FieldGoalAttempts: 5},
			{AthleteID: "anchor", FieldGoalPct: 0.60, FieldGoalAttempts: 10},
		}

		Convey("When the population is normalized", func() {
			normalized := normalize.Population(records)

			Convey("Then the higher-volume shooter scores strictly lower", func() {
				So(normalized[0].Scores[category.FieldGoalPct],
					ShouldBeLessThan, normalized[1].Scores[category.FieldGoalPct])
			})
		})
	})

	Convey("Given two athletes both shooting exactly the population mean percentage", t, func() {
		records := []model.StatRecord{
			{AthleteID: "a", FieldGoalPct: 0.50, FieldGoalAttempts: 20},
			{AthleteID: "b", FieldGoalPct: 0.50, FieldGoalAttempts: 5},
		}

		Convey("When the population is normalized", func() {
			normalized := normalize.Population(records)

			Convey("Then both score 0 regardless of volume", func() {
				// Impact depends on the difference from the mean, so
				// equal-to-mean shooters contribute nothing at any volume.
				So(normalized[0].Scores[category.FieldGoalPct], ShouldEqual, 0)
				So(normalized[1].Scores[category.FieldGoalPct], ShouldEqual, 0)
			})
		})
	})

	Convey("Given an athlete with zero free-throw attempts", t, func() {
		records := []model.StatRecord{
			{AthleteID: "shooter", FreeThrowPct: 0.90, FreeThrowAttempts: 8},
			{AthleteID: "shooter2", FreeThrowPct: 0.60, FreeThrowAttempts: 4},
			{AthleteID: "never-fouled", FreeThrowPct: 1.00, FreeThrowAttempts: 0},
		}

		Convey("When the population is normalized", func() {
			normalized := normalize.Population(records)

			Convey("Then the zero-attempt athlete scores 0 and stays in the output", func() {
				So(normalized, ShouldHaveLength, 3)
				So(normalized[2].Scores[category.FreeThrowPct], ShouldEqual, 0)
			})

			Convey("And the zero-attempt athlete does not drag the population mean", func() {
				// Filtered mean is 0.75; the 1.00 on zero attempts is excluded,
				// so the two real shooters land symmetrically around it.
				So(normalized[0].Scores[category.FreeThrowPct], ShouldAlmostEqual, 1, tolerance)
				So(normalized[1].Scores[category.FreeThrowPct], ShouldAlmostEqual, -1, tolerance)
			})
		})
	})
}

func TestPopulation_Purity(t *testing.T) {
	Convey("Given a population snapshot", t, func() {
		records := []model.StatRecord{
			pointsOnly("a", 30),
			pointsOnly("b", 10),
		}

		Convey("When it is normalized twice", func() {
			first := normalize.Population(records)
			second := normalize.Population(records)

			Convey("Then the results are identical and the input is untouched", func() {
				So(second, ShouldResemble, first)
				So(records[0].Points, ShouldEqual, 30)
				So(records[1].Points, ShouldEqual, 10)
			})
		})
	})
}
