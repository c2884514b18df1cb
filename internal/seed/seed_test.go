package seed_test

import (
	"context"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/okian/consultmatch/internal/adapters/http/api"
	service "github.com/okian/consultmatch/internal/app"
	"github.com/okian/consultmatch/internal/seed"
	"github.com/okian/consultmatch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		cfg := seed.DefaultConfig()
		cfg.Consultants, cfg.Projects = 40, 8
		cfg.ConflictRate = 0.1

		f := seed.Generate(cfg)

		Convey("It produces the requested number of valid records", func() {
			So(len(f.Consultants), ShouldEqual, 40)
			So(len(f.Projects), ShouldEqual, 8)
			cs, ps, err := f.Models()
			So(err, ShouldBeNil)
			So(cs[0].ID, ShouldEqual, "C0001")
			So(ps[7].ID, ShouldEqual, "P0008")
		})

		Convey("The same seed gives the same dataset", func() {
			So(seed.Generate(cfg), ShouldResemble, f)
		})

		Convey("A different seed gives a different dataset", func() {
			cfg.Seed = 2
			So(seed.Generate(cfg), ShouldNotResemble, f)
		})

		Convey("Conflicts are mutual", func() {
			byID := map[string][]string{}
			for _, c := range f.Consultants {
				byID[c.ID] = c.Conflicts
			}
			for id, conflicts := range byID {
				for _, other := range conflicts {
					So(slices.Contains(byID[other], id), ShouldBeTrue)
				}
			}
		})
	})
}

func TestPush(t *testing.T) {
	Convey("Given a running server", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc := service.New()
		srv := httptest.NewServer(api.NewServer(svc).Handler())
		defer srv.Close()

		cfg := seed.DefaultConfig()
		cfg.Consultants, cfg.Projects = 12, 4
		cfg.BaseURL = srv.URL
		cfg.Workers = 3
		cfg.Staff = true
		f := seed.Generate(cfg)

		Convey("Push loads the dataset in order and requests teams", func() {
			stats, err := seed.Push(ctx, cfg, f)
			So(err, ShouldBeNil)
			So(stats.ConsultantsPushed, ShouldEqual, 12)
			So(stats.ProjectsPushed, ShouldEqual, 4)
			So(stats.TeamsRequested, ShouldEqual, 4)
			So(stats.TeamsCommitted+stats.TeamsRejected, ShouldEqual, 4)
			So(stats.Failed, ShouldEqual, 0)

			pool, err := svc.Consultants(ctx)
			So(err, ShouldBeNil)
			So(len(pool), ShouldEqual, 12)
			for i, c := range pool {
				So(c.ID, ShouldEqual, f.Consultants[i].ID)
			}
		})
	})
}
