package category_test

import (
	"testing"

	"github.com/hooprank/hooprank/internal/domain/category"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCategories(t *testing.T) {
	Convey("Given the tracked category set", t, func() {
		all := category.All()

		Convey("Then there are exactly nine categories", func() {
			So(all, ShouldHaveLength, 9)
			So(category.Count(), ShouldEqual, 9)
		})

		Convey("Then each kind is assigned correctly", func() {
			So(category.Points.Kind(), ShouldEqual, category.Counting)
			So(category.ThreePointersMade.Kind(), ShouldEqual, category.Counting)
			So(category.Turnovers.Kind(), ShouldEqual, category.Inverse)
			So(category.FieldGoalPct.Kind(), ShouldEqual, category.Percentage)
			So(category.FreeThrowPct.Kind(), ShouldEqual, category.Percentage)
		})

		Convey("Then Valid accepts tracked names and rejects strays", func() {
			So(category.Valid("points"), ShouldBeTrue)
			So(category.Valid("free_throw_pct"), ShouldBeTrue)
			So(category.Valid("dunks"), ShouldBeFalse)
			So(category.Valid(""), ShouldBeFalse)
		})
	})
}
