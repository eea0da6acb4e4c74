package particle

import (
	"testing"

	"github.com/gonewx/festfx/pkg/render"
)

// fakeParticle 存活固定帧数，可选在指定帧爆炸
type fakeParticle struct {
	life        int
	explodeAt   int // 0 表示不爆炸
	children    int
	frames      int
	exploded    bool
	draws       int
	explodeHits int
}

func (p *fakeParticle) Update() bool {
	p.frames++
	return p.frames <= p.life
}

func (p *fakeParticle) Draw(c render.Canvas) {
	p.draws++
	c.FillCircle(0, 0, 1, nil)
}

func (p *fakeParticle) ShouldExplode() bool {
	if p.exploded || p.explodeAt == 0 || p.frames < p.explodeAt {
		return false
	}
	p.exploded = true
	p.explodeHits++
	return true
}

func (p *fakeParticle) SecondaryExplosion() []Particle {
	out := make([]Particle, p.children)
	for i := range out {
		out[i] = &fakeParticle{life: 2}
	}
	return out
}

func TestCollection_RemovesDeadParticles(t *testing.T) {
	short := &fakeParticle{life: 1}
	long := &fakeParticle{life: 3}
	c := NewCollection(short, long)
	rec := render.NewRecorder(10, 10)

	c.Step(rec)
	if c.Len() != 2 {
		t.Fatalf("after frame 1: len = %d, want 2", c.Len())
	}

	c.Step(rec)
	if c.Len() != 1 {
		t.Fatalf("after frame 2: len = %d, want 1", c.Len())
	}
	if short.draws != 1 {
		t.Errorf("dead particle must not be drawn: draws = %d", short.draws)
	}

	c.Step(rec)
	c.Step(rec)
	if !c.Empty() {
		t.Errorf("collection should be empty, len = %d", c.Len())
	}
	if long.draws != 3 {
		t.Errorf("long draws = %d, want 3", long.draws)
	}
}

func TestCollection_SecondaryExplosionOnce(t *testing.T) {
	p := &fakeParticle{life: 10, explodeAt: 2, children: 4}
	c := NewCollection(p)

	if n := c.Step(nil); n != 0 {
		t.Fatalf("frame 1 spawned %d, want 0", n)
	}
	if n := c.Step(nil); n != 4 {
		t.Fatalf("frame 2 spawned %d, want 4", n)
	}
	if c.Len() != 5 {
		t.Fatalf("len = %d, want 5", c.Len())
	}

	for i := 0; i < 5; i++ {
		c.Step(nil)
	}
	if p.explodeHits != 1 {
		t.Errorf("explosion fired %d times, want 1", p.explodeHits)
	}
}

func TestCollection_ChildrenStartNextFrame(t *testing.T) {
	p := &fakeParticle{life: 5, explodeAt: 1, children: 2}
	c := NewCollection(p)

	c.Step(nil)
	for _, child := range c.Particles()[1:] {
		if f := child.(*fakeParticle).frames; f != 0 {
			t.Errorf("child updated in its spawn frame: frames = %d", f)
		}
	}

	c.Step(nil)
	for _, child := range c.Particles()[1:] {
		if f := child.(*fakeParticle).frames; f != 1 {
			t.Errorf("child frames = %d, want 1", f)
		}
	}
}

func TestCollection_DyingParticleDoesNotExplode(t *testing.T) {
	p := &fakeParticle{life: 1, explodeAt: 2, children: 3}
	c := NewCollection(p)
	c.Step(nil)
	c.Step(nil)
	if p.explodeHits != 0 {
		t.Error("particle that died must not explode")
	}
	if !c.Empty() {
		t.Errorf("len = %d, want 0", c.Len())
	}
}

func TestCollection_Clear(t *testing.T) {
	c := NewCollection(&fakeParticle{life: 9}, &fakeParticle{life: 9})
	c.Clear()
	if !c.Empty() {
		t.Fatal("Clear should empty the collection")
	}
	c.Add(&fakeParticle{life: 1})
	if c.Len() != 1 {
		t.Fatalf("len = %d", c.Len())
	}
}

func TestTrail(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 5; i++ {
		tr.Push(float64(i), 0)
	}
	pts := tr.Points()
	if len(pts) != 3 || pts[0].X != 2 || pts[2].X != 4 {
		t.Errorf("trail = %v, want x 2..4", pts)
	}

	rec := render.NewRecorder(10, 10)
	tr.Draw(rec, 5, 0, 1, render.HSL(0, 1, 0.5), 1)
	if rec.Count("StrokeLine") != 3 {
		t.Errorf("trail segments = %d, want 3", rec.Count("StrokeLine"))
	}

	none := NewTrail(0)
	none.Push(1, 1)
	if none.Len() != 0 {
		t.Error("zero-capacity trail should not record")
	}
}
