package material

import (
	"math/rand"
	"testing"

	"github.com/ciechowoj/haste-go/pkg/core"
)

func TestPhong_ScatterStaysAboveSurface(t *testing.T) {
	p := NewPhong(core.NewVec3(0.6, 0.6, 0.6), core.NewVec3(0.3, 0.3, 0.3), 20)
	normal := core.NewVec3(0, 1, 0)
	hit := core.HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
	rayIn := core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(11)))

	for i := 0; i < 200; i++ {
		scatter, ok := p.Scatter(rayIn, hit, sampler)
		if !ok {
			continue
		}
		if scatter.Scattered.Direction.Dot(normal) <= 0 {
			t.Errorf("scattered direction %v below surface for normal %v", scatter.Scattered.Direction, normal)
		}
		if scatter.PDF <= 0 {
			t.Errorf("expected positive pdf for a non-delta lobe, got %f", scatter.PDF)
		}
	}
}

func TestPhong_PDFMatchesKDiffuseSplit(t *testing.T) {
	p := NewPhong(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), 20)
	if p.kDiffuse != 1.0 {
		t.Errorf("expected an all-diffuse Phong to select the diffuse lobe with probability 1, got %f", p.kDiffuse)
	}

	normal := core.NewVec3(0, 1, 0)
	incoming := core.NewVec3(0, 1, 0)
	outgoing := core.NewVec3(0, 1, 0)
	pdf, isDelta := p.PDF(incoming, outgoing, normal)
	if isDelta {
		t.Error("Phong never reports a delta lobe")
	}
	if pdf <= 0 {
		t.Errorf("expected positive pdf straight up the normal, got %f", pdf)
	}
}

func TestPhong_EvaluateBRDFNonNegative(t *testing.T) {
	p := NewPhong(core.NewVec3(0.5, 0.2, 0.1), core.NewVec3(0.4, 0.4, 0.4), 50)
	normal := core.NewVec3(0, 1, 0)
	incoming := core.NewVec3(0, 1, 0)
	outgoing := core.NewVec3(0.1, 0.95, 0).Normalize()

	value := p.EvaluateBRDF(incoming, outgoing, normal)
	if value.X < 0 || value.Y < 0 || value.Z < 0 {
		t.Errorf("BRDF value must stay non-negative, got %v", value)
	}
}
