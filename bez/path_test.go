package bez

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestPathKindSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.bez")
	defer teardown()
	//
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.QuadTo(Pt(10, 10), Pt(0, 10))
	p.CurveTo(Pt(-5, 10), Pt(-5, 0), Pt(0, 0))
	p.ClosePath()
	if seq := p.KindSequence(); seq != "MLQCZ" {
		t.Errorf("expected kind sequence MLQCZ, have %s", seq)
	}
	if p.Len() != 5 {
		t.Errorf("expected 5 elements, have %d", p.Len())
	}
	if end, ok := p.Elements()[3].EndPoint(); !ok || end != Pt(0, 0) {
		t.Errorf("expected curve to end at origin, is %v", end)
	}
	if _, ok := p.Elements()[4].EndPoint(); ok {
		t.Errorf("close path should not have an end point of its own")
	}
}

func TestAffineRectBbox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.bez")
	defer teardown()
	//
	r := Rect{X0: 0, Y0: 0, X1: 10, Y1: 20}
	rot := Affine{0, 1, -1, 0, 100, 0} // rotate 90° and move right
	bbox := rot.TransformRectBbox(r)
	expected := Rect{X0: 80, Y0: 0, X1: 100, Y1: 10}
	if bbox != expected {
		t.Errorf("expected rotated bbox %v, have %v", expected, bbox)
	}
	moved := Translate(5, 5).Then(Scale(2, 2))
	if p := moved.Apply(Pt(1, 1)); p != Pt(12, 12) {
		t.Errorf("expected translate-then-scale to map (1,1) to (12,12), have %v", p)
	}
}

func TestPathTransformKeepsKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.bez")
	defer teardown()
	//
	p := NewPath(Move(Pt(0, 0)), Quad(Pt(1, 1), Pt(2, 0)), Close())
	q := p.Transform(Translate(10, 0))
	if q.KindSequence() != p.KindSequence() {
		t.Errorf("transform changed path structure: %s vs %s", q, p)
	}
	if end, _ := q.Elements()[1].EndPoint(); end != Pt(12, 0) {
		t.Errorf("expected transformed end point (12,0), have %v", end)
	}
}
