package cloth

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func testConfig() Config {
	return Config{
		Width:          4,
		Height:         3,
		Spacing:        1.0,
		Mass:           1.0,
		Gravity:        9.81,
		TearDistance:   1.5,
		MouseDistance:  1.2,
		MouseInfluence: 0.5,
		Iterations:     5,
	}
}

var _ = Describe("config validation", func() {
	DescribeTable("rejects degenerate parameters",
		func(mutate func(*Config), want error) {
			cfg := testConfig()
			mutate(&cfg)
			_, err := New(cfg)
			Expect(err).To(MatchError(want))
		},
		Entry("width below 2", func(c *Config) { c.Width = 1 }, ErrGridTooSmall),
		Entry("height below 2", func(c *Config) { c.Height = 0 }, ErrGridTooSmall),
		Entry("zero spacing", func(c *Config) { c.Spacing = 0 }, ErrBadSpacing),
		Entry("negative spacing", func(c *Config) { c.Spacing = -1 }, ErrBadSpacing),
		Entry("zero mass", func(c *Config) { c.Mass = 0 }, ErrBadMass),
		Entry("negative gravity", func(c *Config) { c.Gravity = -9.81 }, ErrBadGravity),
		Entry("zero tear distance", func(c *Config) { c.TearDistance = 0 }, ErrBadTearDistance),
		Entry("zero pointer distance", func(c *Config) { c.MouseDistance = 0 }, ErrBadPointerRange),
		Entry("negative influence", func(c *Config) { c.MouseInfluence = -0.1 }, ErrBadInfluence),
		Entry("zero iterations", func(c *Config) { c.Iterations = 0 }, ErrBadIterations),
	)

	It("accepts the reference config", func() {
		s, err := New(testConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(s).NotTo(BeNil())
	})
})

var _ = Describe("grid construction", func() {
	var s *Simulation

	BeforeEach(func() {
		var err error
		s, err = New(testConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("creates width*height particles", func() {
		Expect(s.NumParticles()).To(Equal(12))
	})

	It("creates one horizontal and one vertical constraint per interior edge", func() {
		// horizontal: 3 per row * 3 rows; vertical: 4 per column gap * 2 gaps
		Expect(s.NumConstraints()).To(Equal(17))
	})

	It("pins exactly the top row", func() {
		for i := 0; i < s.NumParticles(); i++ {
			Expect(s.ParticleAt(i).Pinned).To(Equal(i < 4), "particle %d", i)
		}
	})

	It("centers the grid horizontally and stacks rows downward", func() {
		// startX = -(4-1)/2*1 + 0.5 = -1
		Expect(s.ParticleAt(0).Pos).To(Equal(Vec3{X: -1}))
		Expect(s.ParticleAt(3).Pos).To(Equal(Vec3{X: 2}))
		Expect(s.ParticleAt(4).Pos).To(Equal(Vec3{X: -1, Y: -1}))
		Expect(s.ParticleAt(11).Pos).To(Equal(Vec3{X: 2, Y: -2}))
	})

	It("builds every constraint at rest length", func() {
		for i := 0; i < s.NumConstraints(); i++ {
			a, b, enabled := s.Segment(i)
			Expect(enabled).To(BeTrue())
			Expect(a.DistanceTo(b)).To(Equal(1.0))
		}
	})
})

var _ = Describe("stepping", func() {
	It("never moves pinned particles", func() {
		s, _ := New(testConfig())
		before := make([]Vec3, 4)
		for i := range before {
			before[i] = s.ParticleAt(i).Pos
		}
		for tick := 0; tick < 120; tick++ {
			s.Step(1.0/60, Pointer{})
		}
		for i := range before {
			Expect(s.ParticleAt(i).Pos).To(Equal(before[i]), "pinned particle %d drifted", i)
		}
	})

	It("leaves a rest-length zero-gravity grid at its fixed point", func() {
		cfg := testConfig()
		cfg.Gravity = 0
		s, _ := New(cfg)
		before := make([]Vec3, s.NumParticles())
		for i := range before {
			before[i] = s.ParticleAt(i).Pos
		}
		for tick := 0; tick < 30; tick++ {
			s.Step(1.0/60, Pointer{})
		}
		for i := range before {
			Expect(s.ParticleAt(i).Pos).To(Equal(before[i]), "particle %d moved", i)
		}
	})

	It("sags under gravity", func() {
		s, _ := New(testConfig())
		bottom := s.ParticleAt(11).Pos
		for tick := 0; tick < 60; tick++ {
			s.Step(1.0/60, Pointer{})
		}
		Expect(s.ParticleAt(11).Pos.Y).To(BeNumerically("<", bottom.Y))
	})

	It("keeps state finite over a long run", func() {
		s, _ := New(testConfig())
		for tick := 0; tick < 600; tick++ {
			s.Step(1.0/60, Pointer{})
		}
		for i := 0; i < s.NumParticles(); i++ {
			Expect(s.ParticleAt(i).Pos.IsValid()).To(BeTrue(), "particle %d", i)
		}
	})
})

var _ = Describe("tearing", func() {
	// 2x2 mesh: particles 0,1 pinned; constraints in store order are
	// (0,1), (0,2), (2,3), (1,3).
	smallConfig := func() Config {
		cfg := testConfig()
		cfg.Width = 2
		cfg.Height = 2
		cfg.Gravity = 0
		cfg.TearDistance = 1.0
		cfg.Iterations = 1
		return cfg
	}

	It("disables a constraint the first pass its length exceeds the threshold", func() {
		s, _ := New(smallConfig())
		// Stretch the (1,3) vertical constraint past its limit.
		s.particles[3].Pos.Y = -1.5
		s.particles[3].Prev = s.particles[3].Pos
		s.satisfy()
		Expect(s.ConstraintAt(3).Enabled).To(BeFalse())
	})

	It("still applies the correction in the tearing pass", func() {
		s, _ := New(smallConfig())
		s.particles[3].Pos.Y = -1.5
		s.particles[3].Prev = s.particles[3].Pos
		s.satisfy()
		// Particle 3 was pulled back toward both rest lengths, so it
		// ends above the stretched position.
		Expect(s.ParticleAt(3).Pos.Y).To(BeNumerically(">", -1.5))
	})

	It("never re-enables a torn constraint", func() {
		s, _ := New(smallConfig())
		s.particles[3].Pos.Y = -1.5
		s.particles[3].Prev = s.particles[3].Pos
		s.satisfy()
		Expect(s.ConstraintAt(3).Enabled).To(BeFalse())
		// Back at rest length; the tear must persist anyway.
		s.particles[3].Pos = Vec3{X: 0.5, Y: -1}
		s.particles[3].Prev = s.particles[3].Pos
		for tick := 0; tick < 30; tick++ {
			s.Step(1.0/60, Pointer{})
		}
		Expect(s.ConstraintAt(3).Enabled).To(BeFalse())
	})

	It("skips the correction for coincident endpoints", func() {
		s, _ := New(smallConfig())
		s.particles[3].Pos = s.particles[2].Pos
		s.particles[3].Prev = s.particles[3].Pos
		s.satisfy()
		for i := 0; i < s.NumParticles(); i++ {
			Expect(s.ParticleAt(i).Pos.IsValid()).To(BeTrue())
		}
	})

	It("restores all constraints on reset", func() {
		s, _ := New(smallConfig())
		s.particles[3].Pos.Y = -1.5
		s.particles[3].Prev = s.particles[3].Pos
		s.satisfy()
		Expect(s.Intact()).To(BeNumerically("<", s.NumConstraints()))
		Expect(s.Reset(smallConfig())).To(Succeed())
		Expect(s.Intact()).To(Equal(s.NumConstraints()))
	})
})

var _ = Describe("pointer interaction", func() {
	var s *Simulation

	BeforeEach(func() {
		cfg := testConfig()
		cfg.Gravity = 0
		var err error
		s, err = New(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("drag", func() {
		It("displaces the nearest unpinned particle along the motion vector", func() {
			// Particle 5 sits at (0, -1).
			target := s.ParticleAt(5).Pos
			s.applyPointer(Pointer{Pos: Vec3{X: -0.3, Y: -1.1}})
			s.applyPointer(Pointer{Pos: Vec3{X: 0.1, Y: -1.1}, Primary: true})
			// Motion (0.4, 0) normalizes to +X, scaled by influence 0.5.
			Expect(s.ParticleAt(5).Pos).To(Equal(target.Add(Vec3{X: 0.5})))
		})

		It("does not move particles outside the pick radius", func() {
			before := make([]Vec3, s.NumParticles())
			for i := range before {
				before[i] = s.ParticleAt(i).Pos
			}
			s.applyPointer(Pointer{Pos: Vec3{X: 50, Y: -1}})
			s.applyPointer(Pointer{Pos: Vec3{X: 51, Y: -1}, Primary: true})
			for i := range before {
				Expect(s.ParticleAt(i).Pos).To(Equal(before[i]))
			}
		})

		It("ignores drags whose nearest particle is pinned", func() {
			// Particle 1 at (0, 0) is pinned.
			s.applyPointer(Pointer{Pos: Vec3{X: -0.2, Y: 0.2}})
			s.applyPointer(Pointer{Pos: Vec3{X: 0.1, Y: 0.2}, Primary: true})
			Expect(s.ParticleAt(1).Pos).To(Equal(Vec3{}))
		})

		It("ignores a held button with no motion", func() {
			s.applyPointer(Pointer{Pos: Vec3{X: 0.1, Y: -1}})
			before := s.ParticleAt(5).Pos
			s.applyPointer(Pointer{Pos: Vec3{X: 0.1, Y: -1}, Primary: true})
			Expect(s.ParticleAt(5).Pos).To(Equal(before))
		})

		It("tracks the pointer while released so the first drag sees no stale delta", func() {
			s.applyPointer(Pointer{Pos: Vec3{X: 40, Y: 40}})
			Expect(s.prevPointer).To(Equal(Vec3{X: 40, Y: 40}))
			s.applyPointer(Pointer{Pos: Vec3{X: 0.1, Y: -1.1}})
			Expect(s.prevPointer).To(Equal(Vec3{X: 0.1, Y: -1.1}))
		})
	})

	Describe("cut", func() {
		It("disables all and only the constraints touching the nearest particle", func() {
			// Particle 5 at (0, -1), an interior particle of the 4x3 grid.
			s.applyPointer(Pointer{Pos: Vec3{X: 0.1, Y: -1.05}, Secondary: true})
			for i := 0; i < s.NumConstraints(); i++ {
				c := s.ConstraintAt(i)
				touches := c.A == 5 || c.B == 5
				Expect(c.Enabled).To(Equal(!touches), "constraint %d (%d,%d)", i, c.A, c.B)
			}
		})

		It("is a no-op beyond the pick radius", func() {
			s.applyPointer(Pointer{Pos: Vec3{X: 50, Y: 50}, Secondary: true})
			Expect(s.Intact()).To(Equal(s.NumConstraints()))
		})
	})
})
